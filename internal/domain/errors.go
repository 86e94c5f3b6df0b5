package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these with a human-readable message so handlers can report
// the outcome without inspecting infrastructure errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrExpired    = errors.New("expired")
	ErrMismatch   = errors.New("code mismatch")
	ErrDelivery   = errors.New("delivery failed")
)
