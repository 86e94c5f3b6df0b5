package http

import (
	"log/slog"

	"github.com/go-email-otp/internal/application/verification"
	"github.com/go-email-otp/internal/infrastructure/smtp"
	"github.com/go-email-otp/internal/pkg/clock"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	CodeStore verification.CodeStore
	Mailer    smtp.Mailer
	Clock     clock.Clocker // optional
	Logger    *slog.Logger  // optional
}
