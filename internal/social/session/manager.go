package session

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
)

const DefaultTTL = 14 * 24 * time.Hour

// Manager issues and resolves opaque session tokens over a Store.
type Manager struct {
	Store Store
	TTL   time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

func NewManager(st Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{Store: st, TTL: ttl, Now: time.Now}
}

// Issue creates a session for identityID and returns the raw token for the
// cookie along with its expiry.
func (m *Manager) Issue(ctx context.Context, identityID string) (string, time.Time, error) {
	if identityID == "" {
		return "", time.Time{}, errors.New("session: empty identity id")
	}

	token, fp, err := cryptox.NewSessionToken()
	if err != nil {
		return "", time.Time{}, err
	}

	now := m.Now().UTC()
	s := domain.Session{
		TokenHash:  fp,
		IdentityID: identityID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.TTL),
	}
	if err := m.Store.Create(ctx, s); err != nil {
		return "", time.Time{}, err
	}
	return token, s.ExpiresAt, nil
}

// Lookup resolves a raw token. Unknown and expired tokens give ErrNotFound.
func (m *Manager) Lookup(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrNotFound
	}

	s, err := m.Store.Get(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		return domain.Session{}, err
	}
	if s.Expired(m.Now()) {
		return domain.Session{}, ErrNotFound
	}
	return s, nil
}

// Revoke deletes the session behind token, if any.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.Store.Delete(ctx, cryptox.FingerprintToken(token))
}
