package session_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/session"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a throwaway Redis and returns its address.
func setupRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container test skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRedisStore(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	client, err := session.NewRedisClient(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	st := session.NewRedisStore(client)
	require.NoError(t, st.Ping(ctx))

	now := time.Now().UTC()
	s := domain.Session{TokenHash: "fp-1", IdentityID: "42@facebook", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, st.Create(ctx, s))

		got, err := st.Get(ctx, "fp-1")
		require.NoError(t, err)
		require.Equal(t, "42@facebook", got.IdentityID)
		require.Equal(t, "fp-1", got.TokenHash)

		ttl, err := client.TTL(ctx, "hellosocial:session:fp-1").Result()
		require.NoError(t, err)
		require.Greater(t, ttl, time.Duration(0))
	})

	t.Run("rejects already expired", func(t *testing.T) {
		expired := s
		expired.TokenHash = "fp-2"
		expired.ExpiresAt = now.Add(-time.Second)
		require.Error(t, st.Create(ctx, expired))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := st.Get(ctx, "nope")
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Delete(ctx, "fp-1"))
		_, err := st.Get(ctx, "fp-1")
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("works behind the manager", func(t *testing.T) {
		m := session.NewManager(st, time.Minute)
		token, _, err := m.Issue(ctx, "7@twitter")
		require.NoError(t, err)

		got, err := m.Lookup(ctx, token)
		require.NoError(t, err)
		require.Equal(t, "7@twitter", got.IdentityID)
	})
}
