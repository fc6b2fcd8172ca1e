// Package session binds browser cookies to identities. Tokens are opaque and
// random; backends only ever see their SHA-256 fingerprint.
package session

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
)

var ErrNotFound = errors.New("session: not found")

// Store persists sessions keyed by token fingerprint. Get may return a
// session past its ExpiresAt; Manager judges expiry with its own clock.
type Store interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, tokenHash string) (domain.Session, error)
	Delete(ctx context.Context, tokenHash string) error
	Ping(ctx context.Context) error
}
