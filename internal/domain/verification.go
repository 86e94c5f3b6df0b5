package domain

import "time"

// CodeTTL is how long an issued code stays valid.
const CodeTTL = 2 * time.Minute

// PendingCode is the code issued to an address and awaiting verification.
// At most one exists per address; a newer issuance replaces it.
type PendingCode struct {
	Address   string    `json:"address"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the code is past its expiry at now.
// A code is still valid at exactly ExpiresAt.
func (p *PendingCode) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
