package app

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/internal/social/store/drivers/sqlite"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
)

// OpenDatabase opens the SQLite file named in cfg and applies migrations.
func OpenDatabase(cfg Config, sealer *cryptox.Sealer) (*sqlite.Store, error) {
	db, err := sqlite.NewStore(cfg.DatabaseFile, sealer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// openForCommand opens the database for a one-shot CLI command.
func openForCommand(cfg Config) (*sqlite.Store, error) {
	sealer, err := NewSealer(cfg, NewLogger(cfg))
	if err != nil {
		return nil, err
	}
	return OpenDatabase(cfg, sealer)
}

// Migrate applies pending migrations and reports the resulting version.
func Migrate(cfg Config) (uint, error) {
	db, err := openForCommand(cfg)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	version, dirty, err := db.MigrationVersion()
	if err != nil {
		return 0, err
	}
	if dirty {
		return version, fmt.Errorf("database is at dirty migration version %d", version)
	}
	return version, nil
}

// SetAdministrator grants or revokes the administrator flag out of band.
// The web surface never changes it.
func SetAdministrator(ctx context.Context, cfg Config, id string, admin bool) error {
	db, err := openForCommand(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := &service.IdentityService{Store: db}
	return svc.SetAdministrator(ctx, id, admin)
}

// IdentitySummary is one line of `admin list`.
type IdentitySummary struct {
	ID              string
	Name            string
	FavoriteColor   string
	IsAdministrator bool
}

// ListIdentities returns every identity, newest first.
func ListIdentities(ctx context.Context, cfg Config) ([]IdentitySummary, error) {
	db, err := openForCommand(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	svc := &service.IdentityService{Store: db}
	idents, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]IdentitySummary, 0, len(idents))
	for _, i := range idents {
		out = append(out, IdentitySummary{
			ID:              i.ID,
			Name:            i.Profile.Name,
			FavoriteColor:   i.FavoriteColor,
			IsAdministrator: i.IsAdministrator,
		})
	}
	return out, nil
}
