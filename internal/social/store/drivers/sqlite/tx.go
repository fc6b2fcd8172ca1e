package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/hellosocial/internal/social/store"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/uptrace/bun"
)

type txStore struct {
	tx     bun.Tx
	sealer *cryptox.Sealer
}

func newTx(tx bun.Tx, sealer *cryptox.Sealer) *txStore {
	return &txStore{tx: tx, sealer: sealer}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op, the transaction already holds a live connection.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Identities() store.Identities { return &identitiesRepo{db: t.tx, sealer: t.sealer} }
func (t *txStore) Sessions() store.Sessions     { return &sessionsRepo{db: t.tx} }

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }
