package sqlite_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/store"
	"github.com/aussiebroadwan/hellosocial/internal/social/store/drivers/sqlite"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newSealer(t *testing.T, key string) *cryptox.Sealer {
	t.Helper()
	s, err := cryptox.NewSealer([]byte(key))
	require.NoError(t, err)
	return s
}

func openStore(t *testing.T, dsn, key string) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(dsn, newSealer(t, key))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	return openStore(t, ":memory:", "sqlite-store-test-master-key")
}

func TestNewStore_RequiresSealer(t *testing.T) {
	_, err := sqlite.NewStore(":memory:", nil)
	require.Error(t, err)
}

func sampleIdentity(now time.Time) domain.Identity {
	return domain.Identity{
		ID:       "42@twitter",
		Provider: domain.ProviderTwitter,
		Profile: domain.Profile{
			Name:         "Ada",
			Location:     "London",
			ProfileLink:  "https://twitter.com/ada",
			PortraitLink: "https://pbs.example/ada.png",
		},
		Credential:         domain.Credential{Token: "tok", Secret: "sec"},
		RawProviderPayload: `{"name":"Ada"}`,
		FavoriteColor:      domain.DefaultFavoriteColor,
		CreatedAt:          now,
		EditedAt:           now,
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.ApplyMigrations())

	version, dirty, err := st.MigrationVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 2, version)
}

func TestIdentities(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	ident := sampleIdentity(now)
	require.NoError(t, st.Identities().Create(ctx, ident))

	t.Run("get round trip", func(t *testing.T) {
		got, err := st.Identities().GetByID(ctx, ident.ID)
		require.NoError(t, err)
		require.Equal(t, ident.Profile, got.Profile)
		require.Equal(t, ident.Credential, got.Credential)
		require.Equal(t, ident.FavoriteColor, got.FavoriteColor)
		require.False(t, got.IsAdministrator)
		require.WithinDuration(t, now, got.CreatedAt, time.Millisecond)
	})

	t.Run("duplicate create", func(t *testing.T) {
		err := st.Identities().Create(ctx, ident)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := st.Identities().GetByID(ctx, "nope@twitter")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update login leaves favorite alone", func(t *testing.T) {
		require.NoError(t, st.Identities().UpdateFavorite(ctx, ident.ID, "Green", now.Add(time.Minute)))

		changed := ident
		changed.Profile.Name = "Ada L."
		changed.Credential = domain.Credential{Token: "tok2", Secret: "sec2"}
		changed.FavoriteColor = "ignored"
		require.NoError(t, st.Identities().UpdateLogin(ctx, changed))

		got, err := st.Identities().GetByID(ctx, ident.ID)
		require.NoError(t, err)
		require.Equal(t, "Ada L.", got.Profile.Name)
		require.Equal(t, "tok2", got.Credential.Token)
		require.Equal(t, "Green", got.FavoriteColor)
		require.WithinDuration(t, now.Add(time.Minute), got.EditedAt, time.Millisecond)
	})

	t.Run("update missing", func(t *testing.T) {
		other := sampleIdentity(now)
		other.ID = "missing@twitter"
		require.ErrorIs(t, st.Identities().UpdateLogin(ctx, other), store.ErrNotFound)
		require.ErrorIs(t, st.Identities().UpdateFavorite(ctx, other.ID, "Red", now), store.ErrNotFound)
		require.ErrorIs(t, st.Identities().SetAdministrator(ctx, other.ID, true), store.ErrNotFound)
	})

	t.Run("administrator flag", func(t *testing.T) {
		require.NoError(t, st.Identities().SetAdministrator(ctx, ident.ID, true))
		got, err := st.Identities().GetByID(ctx, ident.ID)
		require.NoError(t, err)
		require.True(t, got.IsAdministrator)

		list, err := st.Identities().List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})
}

func TestCredentialsEncryptedAtRest(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "hellosocial.db")
	st := openStore(t, dsn, "first-master-key")

	ident := sampleIdentity(time.Now().UTC())
	ident.Credential = domain.Credential{Token: "plain-oauth-token", Secret: "plain-oauth-secret"}
	require.NoError(t, st.Identities().Create(ctx, ident))
	require.NoError(t, st.Close())

	raw, err := os.ReadFile(dsn)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "plain-oauth-token")

	t.Run("same key reads the credential", func(t *testing.T) {
		got, err := openStore(t, dsn, "first-master-key").Identities().GetByID(ctx, ident.ID)
		require.NoError(t, err)
		require.Equal(t, ident.Credential, got.Credential)
	})

	t.Run("rotated key still reads the identity", func(t *testing.T) {
		rekeyed := openStore(t, dsn, "rotated-master-key")

		got, err := rekeyed.Identities().GetByID(ctx, ident.ID)
		require.NoError(t, err)
		require.Equal(t, ident.Profile, got.Profile)
		require.Equal(t, ident.FavoriteColor, got.FavoriteColor)
		require.True(t, got.Credential.IsZero())

		list, err := rekeyed.Identities().List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)

		// The next login reseals under the new key.
		got.Credential = domain.Credential{Token: "fresh-token", Secret: "fresh-secret"}
		require.NoError(t, rekeyed.Identities().UpdateLogin(ctx, got))

		again, err := rekeyed.Identities().GetByID(ctx, ident.ID)
		require.NoError(t, err)
		require.Equal(t, "fresh-token", again.Credential.Token)
	})
}

func TestWithTx_Rollback(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Identities().Create(ctx, sampleIdentity(time.Now())); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Identities().GetByID(ctx, "42@twitter")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	now := time.Now().UTC()

	live := domain.Session{TokenHash: "live", IdentityID: "42@twitter", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	dead := domain.Session{TokenHash: "dead", IdentityID: "42@twitter", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, st.Sessions().Create(ctx, live))
	require.NoError(t, st.Sessions().Create(ctx, dead))

	got, err := st.Sessions().GetByTokenHash(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, "42@twitter", got.IdentityID)

	// Expiry is judged by the caller's clock, not the database's.
	got, err = st.Sessions().GetByTokenHash(ctx, "dead")
	require.NoError(t, err)
	require.True(t, got.Expired(now))

	n, err := st.Sessions().DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = st.Sessions().GetByTokenHash(ctx, "dead")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Sessions().Delete(ctx, "live"))
	require.NoError(t, st.Sessions().Delete(ctx, "live"))
	_, err = st.Sessions().GetByTokenHash(ctx, "live")
	require.ErrorIs(t, err, store.ErrNotFound)
}
