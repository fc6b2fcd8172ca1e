package sqlite

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/uptrace/bun"
)

type identityRow struct {
	bun.BaseModel `bun:"table:identities,alias:i"`

	ID                 string    `bun:"id,pk"`
	Provider           string    `bun:"provider,notnull"`
	Name               string    `bun:"name,notnull"`
	Location           string    `bun:"location,notnull"`
	Email              string    `bun:"email,notnull"`
	ProfileLink        string    `bun:"profile_link,notnull"`
	PortraitLink       string    `bun:"portrait_link,notnull"`
	CredentialToken    []byte    `bun:"credential_token"`    // AES-GCM sealed
	CredentialSecret   []byte    `bun:"credential_secret"`   // AES-GCM sealed
	RawProviderPayload string    `bun:"raw_provider_payload,notnull"`
	IsAdministrator    bool      `bun:"is_administrator,notnull"`
	FavoriteColor      string    `bun:"favorite_color,notnull"`
	CreatedAt          time.Time `bun:"created_at,notnull"`
	EditedAt           time.Time `bun:"edited_at,notnull"`
}

type sessionRow struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	TokenHash  string    `bun:"token_hash,pk"`
	IdentityID string    `bun:"identity_id,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
	ExpiresAt  time.Time `bun:"expires_at,notnull"`
}

func toIdentityRow(sealer *cryptox.Sealer, ident domain.Identity) (*identityRow, error) {
	token, err := sealer.SealString(ident.Credential.Token)
	if err != nil {
		return nil, fmt.Errorf("seal credential token: %w", err)
	}
	secret, err := sealer.SealString(ident.Credential.Secret)
	if err != nil {
		return nil, fmt.Errorf("seal credential secret: %w", err)
	}

	return &identityRow{
		ID:                 ident.ID,
		Provider:           string(ident.Provider),
		Name:               ident.Profile.Name,
		Location:           ident.Profile.Location,
		Email:              ident.Profile.Email,
		ProfileLink:        ident.Profile.ProfileLink,
		PortraitLink:       ident.Profile.PortraitLink,
		CredentialToken:    token,
		CredentialSecret:   secret,
		RawProviderPayload: ident.RawProviderPayload,
		IsAdministrator:    ident.IsAdministrator,
		FavoriteColor:      ident.FavoriteColor,
		CreatedAt:          ident.CreatedAt.UTC(),
		EditedAt:           ident.EditedAt.UTC(),
	}, nil
}

// mapIdentity never fails on the credential. A row sealed under another
// master key comes back with an empty Credential; the next login overwrites it.
func mapIdentity(sealer *cryptox.Sealer, row *identityRow) domain.Identity {
	return domain.Identity{
		ID:       row.ID,
		Provider: domain.ProviderName(row.Provider),
		Profile: domain.Profile{
			Name:         row.Name,
			Location:     row.Location,
			Email:        row.Email,
			ProfileLink:  row.ProfileLink,
			PortraitLink: row.PortraitLink,
		},
		Credential:         openCredential(sealer, row),
		RawProviderPayload: row.RawProviderPayload,
		IsAdministrator:    row.IsAdministrator,
		FavoriteColor:      row.FavoriteColor,
		CreatedAt:          row.CreatedAt.UTC(),
		EditedAt:           row.EditedAt.UTC(),
	}
}

func openCredential(sealer *cryptox.Sealer, row *identityRow) domain.Credential {
	token, err := sealer.OpenString(row.CredentialToken)
	if err != nil {
		return domain.Credential{}
	}
	secret, err := sealer.OpenString(row.CredentialSecret)
	if err != nil {
		return domain.Credential{}
	}
	return domain.Credential{Token: token, Secret: secret}
}

func mapSession(row *sessionRow) domain.Session {
	return domain.Session{
		TokenHash:  row.TokenHash,
		IdentityID: row.IdentityID,
		CreatedAt:  row.CreatedAt.UTC(),
		ExpiresAt:  row.ExpiresAt.UTC(),
	}
}
