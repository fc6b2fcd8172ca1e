package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories so a transaction-scoped Store offers exactly the same
// surface as the root one.
type Store interface {
	Identities() Identities
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil
	// and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Identities interface {
	// GetByID returns ErrNotFound when no identity has this id.
	GetByID(ctx context.Context, id string) (domain.Identity, error)

	// List returns every identity, newest first.
	List(ctx context.Context) ([]domain.Identity, error)

	// Create inserts a new identity. ErrAlreadyExists on a duplicate id.
	Create(ctx context.Context, ident domain.Identity) error

	// UpdateLogin overwrites the fields refreshed on every login: profile,
	// credential and raw provider payload.
	UpdateLogin(ctx context.Context, ident domain.Identity) error

	// UpdateFavorite sets favorite_color and edited_at.
	UpdateFavorite(ctx context.Context, id, value string, editedAt time.Time) error

	// SetAdministrator flips the administrator flag.
	SetAdministrator(ctx context.Context, id string, admin bool) error
}

type Sessions interface {
	Create(ctx context.Context, s domain.Session) error

	// GetByTokenHash returns ErrNotFound for unknown sessions. Expired rows
	// are still returned; callers compare ExpiresAt against their own clock.
	GetByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// Delete is a no-op for unknown hashes.
	Delete(ctx context.Context, tokenHash string) error

	// DeleteExpired removes sessions that expired before now and reports how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
