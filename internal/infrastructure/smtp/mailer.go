package smtp

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-email-otp/internal/config"
	gomail "gopkg.in/mail.v2"
)

// ErrNoSender is returned when no sender account is configured.
var ErrNoSender = errors.New("smtp sender account not configured")

// Mailer sends emails.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// dialer is satisfied by *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailer struct {
	from     string
	fromName string
	dialer   dialer
}

// NewMailer returns a Mailer that authenticates against the configured SMTP
// server (Gmail by default) with the account's app password.
func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		from:     cfg.GmailUser,
		fromName: cfg.MailSenderName,
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.GmailUser, cfg.GmailAppPassword),
	}
}

func (m *mailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.from == "" {
		return ErrNoSender
	}
	if err := m.dialer.DialAndSend(m.message(to, subject, body)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (m *mailer) message(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}
