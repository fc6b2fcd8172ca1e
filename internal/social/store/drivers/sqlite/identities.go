package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/uptrace/bun"
)

type identitiesRepo struct {
	db     bun.IDB
	sealer *cryptox.Sealer
}

func (r *identitiesRepo) GetByID(ctx context.Context, id string) (domain.Identity, error) {
	row := new(identityRow)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return mapIdentity(r.sealer, row), nil
}

func (r *identitiesRepo) List(ctx context.Context) ([]domain.Identity, error) {
	var rows []identityRow
	err := r.db.NewSelect().
		Model(&rows).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}

	out := make([]domain.Identity, 0, len(rows))
	for i := range rows {
		out = append(out, mapIdentity(r.sealer, &rows[i]))
	}
	return out, nil
}

func (r *identitiesRepo) Create(ctx context.Context, ident domain.Identity) error {
	row, err := toIdentityRow(r.sealer, ident)
	if err != nil {
		return err
	}

	_, err = r.db.NewInsert().
		Model(row).
		Exec(ctx)
	return mapConflict(err)
}

func (r *identitiesRepo) UpdateLogin(ctx context.Context, ident domain.Identity) error {
	row, err := toIdentityRow(r.sealer, ident)
	if err != nil {
		return err
	}

	return requireAffected(r.db.NewUpdate().
		Model(row).
		Column(
			"name", "location", "email",
			"profile_link", "portrait_link",
			"credential_token", "credential_secret",
			"raw_provider_payload",
		).
		WherePK().
		Exec(ctx))
}

func (r *identitiesRepo) UpdateFavorite(ctx context.Context, id, value string, editedAt time.Time) error {
	return requireAffected(r.db.NewUpdate().
		Model((*identityRow)(nil)).
		Set("favorite_color = ?", value).
		Set("edited_at = ?", editedAt.UTC()).
		Where("id = ?", id).
		Exec(ctx))
}

func (r *identitiesRepo) SetAdministrator(ctx context.Context, id string, admin bool) error {
	return requireAffected(r.db.NewUpdate().
		Model((*identityRow)(nil)).
		Set("is_administrator = ?", admin).
		Where("id = ?", id).
		Exec(ctx))
}
