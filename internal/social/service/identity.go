package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/aussiebroadwan/hellosocial/internal/social/session"
	"github.com/aussiebroadwan/hellosocial/internal/social/store"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
)

// MaxFavoriteLength bounds the favorite value in runes.
const MaxFavoriteLength = 64

type IdentityService struct {
	Store     store.Store
	Sessions  *session.Manager
	Providers *provider.Registry

	// DefaultFavorite is given to new identities. Empty means "Blue".
	DefaultFavorite string

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *IdentityService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *IdentityService) defaultFavorite() string {
	if s.DefaultFavorite != "" {
		return s.DefaultFavorite
	}
	return domain.DefaultFavoriteColor
}

// Resolve maps a session token to the identity it is bound to.
//
// An empty, unknown or expired token is anonymous: (nil, nil). A live session
// whose identity record is gone is ErrIdentityMissing, never anonymous.
func (s *IdentityService) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, nil
	}

	sess, err := s.Sessions.Lookup(ctx, token)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	ident, err := s.Store.Identities().GetByID(ctx, sess.IdentityID)
	if errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Warn("session bound to missing identity", "identity_id", sess.IdentityID)
		return nil, ErrIdentityMissing
	}
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return &ident, nil
}

// Upsert records a completed login. The identity is created with defaults on
// first sight; afterwards only the login-derived fields are refreshed. The
// whole read-modify-write runs in one transaction.
func (s *IdentityService) Upsert(ctx context.Context, payload domain.LoginPayload) (*domain.Identity, error) {
	l := slogx.FromContext(ctx)

	if payload.ProviderUID == "" || payload.Provider == "" {
		return nil, fmt.Errorf("%w: login payload without provider or uid", ErrProviderCallback)
	}

	raw, err := json.Marshal(payload.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: encode profile: %v", ErrProviderCallback, err)
	}
	if payload.Profile == nil {
		raw = []byte("{}")
	}

	id := domain.IdentityID(payload.Provider, payload.ProviderUID)
	profileLink, portraitLink := s.Providers.ProfileLinks(payload.Provider, payload.ProviderUID, payload.Profile)

	var result domain.Identity
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ident, err := tx.Identities().GetByID(ctx, id)
		created := false
		switch {
		case errors.Is(err, store.ErrNotFound):
			now := s.now()
			ident = domain.Identity{
				ID:              id,
				Provider:        payload.Provider,
				IsAdministrator: false,
				FavoriteColor:   s.defaultFavorite(),
				CreatedAt:       now,
				EditedAt:        now,
			}
			created = true
		case err != nil:
			return err
		}

		ident.Credential = payload.Credential
		ident.Profile = domain.Profile{
			Name:         payload.ProfileString("name"),
			Location:     payload.ProfileString("location"),
			Email:        payload.ProfileString("email"),
			ProfileLink:  profileLink,
			PortraitLink: portraitLink,
		}
		ident.RawProviderPayload = string(raw)

		if created {
			err = tx.Identities().Create(ctx, ident)
		} else {
			err = tx.Identities().UpdateLogin(ctx, ident)
		}
		if err != nil {
			return err
		}

		result = ident
		return nil
	})
	if err != nil {
		l.Error("identity upsert failed", "identity_id", id, "err", err)
		return nil, fmt.Errorf("%w: upsert %s: %v", ErrPersistence, id, err)
	}

	l.Info("identity logged in", "identity_id", id, "provider", payload.Provider)
	return &result, nil
}

// Login persists the identity and only then binds a new session to it. The
// returned token goes into the session cookie.
func (s *IdentityService) Login(ctx context.Context, payload domain.LoginPayload) (*domain.Identity, string, time.Time, error) {
	ident, err := s.Upsert(ctx, payload)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, expires, err := s.Sessions.Issue(ctx, ident.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("session issue failed", "identity_id", ident.ID, "err", err)
		return nil, "", time.Time{}, fmt.Errorf("%w: session: %v", ErrPersistence, err)
	}
	return ident, token, expires, nil
}

// Logout drops the session behind token. Unknown tokens are fine.
func (s *IdentityService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Revoke(ctx, token)
}

// Get returns an identity by id.
func (s *IdentityService) Get(ctx context.Context, id string) (*domain.Identity, error) {
	ident, err := s.Store.Identities().GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrIdentityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

// List returns every identity, newest first.
func (s *IdentityService) List(ctx context.Context) ([]domain.Identity, error) {
	return s.Store.Identities().List(ctx)
}

// UpdateFavorite changes targetID's favorite after the authorization gate.
// EditedAt moves only when the stored value actually changes.
func (s *IdentityService) UpdateFavorite(ctx context.Context, acting *domain.Identity, targetID, value string) (*domain.Identity, error) {
	if _, err := Authorize(acting, targetID); err != nil {
		return nil, err
	}

	value = strings.TrimSpace(value)
	if value == "" || utf8.RuneCountInString(value) > MaxFavoriteLength || !utf8.ValidString(value) {
		return nil, ErrInvalidFavorite
	}

	var result domain.Identity
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ident, err := tx.Identities().GetByID(ctx, targetID)
		if err != nil {
			return err
		}

		if ident.FavoriteColor != value {
			now := s.now()
			if err := tx.Identities().UpdateFavorite(ctx, targetID, value, now); err != nil {
				return err
			}
			ident.FavoriteColor = value
			ident.EditedAt = now
		}

		result = ident
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrIdentityNotFound
	}
	if err != nil {
		slogx.FromContext(ctx).Error("favorite update failed", "identity_id", targetID, "err", err)
		return nil, fmt.Errorf("%w: update favorite: %v", ErrPersistence, err)
	}

	slogx.FromContext(ctx).Info("favorite updated",
		"identity_id", targetID,
		"acting_id", acting.ID,
		"by_admin", acting.ID != targetID,
	)
	return &result, nil
}

// SetAdministrator grants or revokes the administrator flag. It is only
// reachable from the command line.
func (s *IdentityService) SetAdministrator(ctx context.Context, id string, admin bool) error {
	err := s.Store.Identities().SetAdministrator(ctx, id, admin)
	if errors.Is(err, store.ErrNotFound) {
		return ErrIdentityNotFound
	}
	return err
}
