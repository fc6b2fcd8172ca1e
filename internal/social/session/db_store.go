package session

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/store"
)

// DBStore keeps sessions in the application database. Expired rows are
// removed by the housekeeping worker.
type DBStore struct {
	Store store.Store
}

func NewDBStore(st store.Store) *DBStore {
	return &DBStore{Store: st}
}

func (d *DBStore) Create(ctx context.Context, s domain.Session) error {
	return d.Store.Sessions().Create(ctx, s)
}

func (d *DBStore) Get(ctx context.Context, tokenHash string) (domain.Session, error) {
	s, err := d.Store.Sessions().GetByTokenHash(ctx, tokenHash)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrNotFound
	}
	return s, err
}

func (d *DBStore) Delete(ctx context.Context, tokenHash string) error {
	return d.Store.Sessions().Delete(ctx, tokenHash)
}

func (d *DBStore) Ping(ctx context.Context) error {
	return d.Store.Ping(ctx)
}
