package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/uptrace/bun"
)

type sessionsRepo struct {
	db bun.IDB
}

func (r *sessionsRepo) Create(ctx context.Context, s domain.Session) error {
	_, err := r.db.NewInsert().
		Model(&sessionRow{
			TokenHash:  s.TokenHash,
			IdentityID: s.IdentityID,
			CreatedAt:  s.CreatedAt.UTC(),
			ExpiresAt:  s.ExpiresAt.UTC(),
		}).
		Exec(ctx)
	return mapConflict(err)
}

func (r *sessionsRepo) GetByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	row := new(sessionRow)
	err := r.db.NewSelect().
		Model(row).
		Where("token_hash = ?", tokenHash).
		Scan(ctx)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return mapSession(row), nil
}

func (r *sessionsRepo) Delete(ctx context.Context, tokenHash string) error {
	_, err := r.db.NewDelete().
		Model((*sessionRow)(nil)).
		Where("token_hash = ?", tokenHash).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*sessionRow)(nil)).
		Where("expires_at <= ?", now.UTC()).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
