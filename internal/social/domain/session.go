package domain

import "time"

// Session binds an opaque browser token to an identity. Only the token's
// fingerprint is ever stored.
type Session struct {
	TokenHash  string
	IdentityID string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
