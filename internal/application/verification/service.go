package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/go-email-otp/internal/domain"
	"github.com/go-email-otp/internal/infrastructure/smtp"
	"github.com/go-email-otp/internal/pkg/clock"
	"github.com/go-email-otp/internal/pkg/otp"
	"github.com/go-email-otp/internal/pkg/validate"
)

const mailSubject = "Raizian Email Verification"

const mailBody = `Hello,

Thank you for signing up with Raizian Studio.

Your verification code is: %s

This code will expire in %d minute(s).

If you did not request this, please ignore this email.

— Raizian Team`

type SendCodeRequest struct {
	Email string `json:"email" validate:"required"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type Service interface {
	// SendCode issues a fresh code for the address, replacing any pending one,
	// and emails it. The code stays stored even when the email fails.
	SendCode(ctx context.Context, req SendCodeRequest) error
	// VerifyCode checks a submitted code. A wrong code leaves the pending
	// code in place; success or expiry removes it.
	VerifyCode(ctx context.Context, req VerifyCodeRequest) error
}

// CodeStore is the minimal interface the service requires from a pending-code store.
type CodeStore interface {
	Put(ctx context.Context, p *domain.PendingCode) error
	Get(ctx context.Context, address string) (*domain.PendingCode, error)
	Delete(ctx context.Context, address string) error
}

// ServiceDeps holds the collaborators of the verification service.
// Clock, Generate and Logger are optional.
type ServiceDeps struct {
	Store    CodeStore
	Mailer   smtp.Mailer
	Clock    clock.Clocker
	Generate func() (string, error)
	Logger   *slog.Logger
}

type service struct {
	// mu serialises store mutations so a verify's check-then-delete is atomic.
	mu       sync.Mutex
	store    CodeStore
	mailer   smtp.Mailer
	clock    clock.Clocker
	generate func() (string, error)
	log      *slog.Logger
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		store:    deps.Store,
		mailer:   deps.Mailer,
		clock:    deps.Clock,
		generate: deps.Generate,
		log:      deps.Logger,
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.generate == nil {
		s.generate = otp.Generate
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

func (s *service) SendCode(ctx context.Context, req SendCodeRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	code, err := s.generate()
	if err != nil {
		return err
	}
	p := &domain.PendingCode{
		Address:   req.Email,
		Code:      code,
		ExpiresAt: s.clock.Now().Add(domain.CodeTTL),
	}

	s.mu.Lock()
	err = s.store.Put(ctx, p)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("store pending code: %w", err)
	}

	body := fmt.Sprintf(mailBody, code, ttlMinutes())
	if err := s.mailer.SendEmail(ctx, req.Email, mailSubject, body); err != nil {
		s.log.Error("verification_email_failed", slog.String("to", req.Email), slog.String("reason", err.Error()))
		return fmt.Errorf("send verification email: %w: %w", domain.ErrDelivery, err)
	}
	s.log.Info("verification_email_sent", slog.String("to", req.Email))
	return nil
}

func (s *service) VerifyCode(ctx context.Context, req VerifyCodeRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.Get(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no pending code for %s: %w", req.Email, domain.ErrNotFound)
		}
		return err
	}

	if p.Expired(s.clock.Now()) {
		if err := s.store.Delete(ctx, req.Email); err != nil {
			s.log.Warn("failed to delete expired code", "to", req.Email, "err", err)
		}
		return fmt.Errorf("code for %s expired at %s: %w", req.Email, p.ExpiresAt.Format("15:04:05"), domain.ErrExpired)
	}

	if p.Code != req.Code {
		return fmt.Errorf("invalid code for %s: %w", req.Email, domain.ErrMismatch)
	}

	if err := s.store.Delete(ctx, req.Email); err != nil {
		return fmt.Errorf("consume pending code: %w", err)
	}
	s.log.Info("email_verified", slog.String("to", req.Email))
	return nil
}

func ttlMinutes() int {
	return int(math.Round(domain.CodeTTL.Minutes()))
}
