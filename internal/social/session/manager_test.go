package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/session"
	"github.com/aussiebroadwan/hellosocial/internal/social/store/drivers/sqlite"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newDBStore(t *testing.T) *session.DBStore {
	t.Helper()

	sealer, err := cryptox.NewSealer([]byte("session-test-master-key"))
	require.NoError(t, err)
	st, err := sqlite.NewStore(":memory:", sealer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return session.NewDBStore(st)
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(newDBStore(t), time.Hour)

	token, expires, err := m.Issue(ctx, "42@twitter")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	t.Run("lookup", func(t *testing.T) {
		s, err := m.Lookup(ctx, token)
		require.NoError(t, err)
		require.Equal(t, "42@twitter", s.IdentityID)
		require.Equal(t, cryptox.FingerprintToken(token), s.TokenHash)
	})

	t.Run("empty and unknown tokens", func(t *testing.T) {
		_, err := m.Lookup(ctx, "")
		require.ErrorIs(t, err, session.ErrNotFound)

		_, err = m.Lookup(ctx, "not-a-real-token")
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("store never sees the raw token", func(t *testing.T) {
		_, err := m.Store.Get(ctx, token)
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("revoke", func(t *testing.T) {
		require.NoError(t, m.Revoke(ctx, token))
		_, err := m.Lookup(ctx, token)
		require.ErrorIs(t, err, session.ErrNotFound)

		require.NoError(t, m.Revoke(ctx, ""))
	})
}

func TestManager_Expired(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(newDBStore(t), time.Minute)

	issuedAt := time.Now().Add(-time.Hour)
	m.Now = func() time.Time { return issuedAt }

	token, _, err := m.Issue(ctx, "42@twitter")
	require.NoError(t, err)

	m.Now = time.Now
	_, err = m.Lookup(ctx, token)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestManager_UsesItsOwnClock(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(newDBStore(t), time.Hour)

	// Well in the past by the wall clock, but live for the manager.
	frozen := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	m.Now = func() time.Time { return frozen }

	token, expires, err := m.Issue(ctx, "42@twitter")
	require.NoError(t, err)
	require.Equal(t, frozen.Add(time.Hour), expires)

	s, err := m.Lookup(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "42@twitter", s.IdentityID)

	m.Now = func() time.Time { return frozen.Add(2 * time.Hour) }
	_, err = m.Lookup(ctx, token)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestManager_RejectsEmptyIdentity(t *testing.T) {
	m := session.NewManager(newDBStore(t), 0)
	require.Equal(t, session.DefaultTTL, m.TTL)

	_, _, err := m.Issue(context.Background(), "")
	require.Error(t, err)
}

func TestCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	session.SetCookie(rec, "tok", time.Now().Add(time.Hour), session.CookieOptions{Secure: true})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.Equal(t, session.CookieName, c.Name)
	require.True(t, c.HttpOnly)
	require.True(t, c.Secure)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.Equal(t, "/", c.Path)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	require.Equal(t, "tok", session.TokenFromRequest(req))
	require.Empty(t, session.TokenFromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))

	rec = httptest.NewRecorder()
	session.ClearCookie(rec, session.CookieOptions{})
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Empty(t, cleared[0].Value)
	require.Less(t, cleared[0].MaxAge, 0)
}
