package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-email-otp/internal/application/verification"
	"github.com/go-email-otp/internal/domain"
)

// Client-facing messages.
const (
	msgCodeSent        = "Verification code sent successfully."
	msgEmailVerified   = "Email verified successfully!"
	msgEmailRequired   = "Email is required."
	msgFieldsRequired  = "Email and code are required."
	msgDeliveryFailed  = "Failed to send verification email."
	msgCodeNotFound    = "No verification code found. Please request a new one."
	msgCodeExpired     = "Verification code expired. Please request again."
	msgCodeInvalid     = "Invalid verification code."
	msgInternalFailure = "Internal server error."
)

// VerificationHandler serves the send-code / verify-code endpoints.
type VerificationHandler struct {
	svc verification.Service
	log *slog.Logger
}

// NewVerificationHandler falls back to slog.Default when log is nil.
func NewVerificationHandler(svc verification.Service, log *slog.Logger) *VerificationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &VerificationHandler{svc: svc, log: log}
}

func (h *VerificationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeBody(w, r, h.log, &body); err != nil {
		body.Email = ""
	}

	err := h.svc.SendCode(r.Context(), verification.SendCodeRequest{Email: body.Email})
	switch {
	case err == nil:
		writeOK(w, msgCodeSent)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, msgEmailRequired)
	case errors.Is(err, domain.ErrDelivery):
		writeError(w, msgDeliveryFailed)
	default:
		h.log.Error("send code failed", "err", err)
		writeError(w, msgInternalFailure)
	}
}

func (h *VerificationHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string      `json:"email"`
		Code  looseString `json:"code"`
	}
	if err := decodeBody(w, r, h.log, &body); err != nil {
		body.Email, body.Code = "", ""
	}

	err := h.svc.VerifyCode(r.Context(), verification.VerifyCodeRequest{
		Email: body.Email,
		Code:  string(body.Code),
	})
	switch {
	case err == nil:
		writeOK(w, msgEmailVerified)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, msgFieldsRequired)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, msgCodeNotFound)
	case errors.Is(err, domain.ErrExpired):
		writeError(w, msgCodeExpired)
	case errors.Is(err, domain.ErrMismatch):
		writeError(w, msgCodeInvalid)
	default:
		h.log.Error("verify code failed", "err", err)
		writeError(w, msgInternalFailure)
	}
}
