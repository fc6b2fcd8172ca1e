package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultStateTTL bounds how long a visitor may spend on the provider's
// consent screen before the login round-trip is rejected.
const DefaultStateTTL = 10 * time.Minute

// StateClaims carry a login attempt across the provider redirect. They are
// signed, never trusted unsigned, and only live in a short-lived cookie.
type StateClaims struct {
	jwt.RegisteredClaims

	// Provider the login was started against, the callback must match it.
	Provider string `json:"prv"`

	// Nonce is echoed back by OAuth2 providers in the "state" parameter.
	Nonce string `json:"nonce"`

	// Origin is the local path to return to once the login completes.
	Origin string `json:"origin,omitempty"`

	// Secret is the provider handshake secret (OAuth1 request secret or PKCE
	// verifier). Callers seal it before it gets here.
	Secret string `json:"sec,omitempty"`
}

// NewStateClaims builds state claims valid from now until now+ttl.
func NewStateClaims(
	provider, origin, secret string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) StateClaims {
	return StateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Provider: provider,
		Nonce:    NewJTI(),
		Origin:   origin,
		Secret:   secret,
	}
}

// NewJTI returns a URL-safe random identifier.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *StateClaims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the state hasn't expired (exp) and isn't before nbf.
func (c *StateClaims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
