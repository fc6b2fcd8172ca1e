package social_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/app"
	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/internal/social/session"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
	"github.com/aussiebroadwan/hellosocial/pkg/socialsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * End-to-end helpers: the whole application is wired from a Config exactly
 * as `hellosocial serve` does, then served from an httptest server.
 */

const testMasterKey = "e2e-test-master-key"

// baseConfig returns a configuration with a throwaway database and no
// identity providers.
func baseConfig(t *testing.T) app.Config {
	t.Helper()
	return app.Config{
		BaseURL:              "http://localhost:8080/",
		DatabaseFile:         filepath.Join(t.TempDir(), "hellosocial.db"),
		SessionBackend:       app.SessionBackendSQL,
		SessionTTL:           time.Hour,
		DefaultFavoriteColor: "Blue",
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "json",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

// startApp builds the application and serves it. Everything is torn down
// when the test ends.
func startApp(t *testing.T, cfg app.Config) string {
	t.Helper()

	t.Setenv(cryptox.MasterKeyEnv, testMasterKey)

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		if err := application.Close(); err != nil {
			t.Logf("failed to close application: %v", err)
		}
	})

	return srv.URL
}

// setupRedis starts a Redis container and returns its address.
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

// noRedirectClient reports redirects instead of following them.
func noRedirectClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := noRedirectClient().Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// seedSession signs in a twitter identity directly against the database the
// application uses and returns an SDK session for it.
func seedSession(t *testing.T, cfg app.Config, client *socialsdk.SDKClient, uid string) (*socialsdk.Session, string) {
	t.Helper()

	// Same master key as the running application, read from the environment.
	sealer, err := app.NewSealer(cfg, slogx.Discard())
	require.NoError(t, err)
	db, err := app.OpenDatabase(cfg, sealer)
	require.NoError(t, err)
	defer db.Close()

	svc := &service.IdentityService{
		Store:           db,
		Sessions:        session.NewManager(session.NewDBStore(db), time.Hour),
		DefaultFavorite: cfg.DefaultFavoriteColor,
	}
	ident, token, _, err := svc.Login(t.Context(), domain.LoginPayload{
		Provider:    domain.ProviderTwitter,
		ProviderUID: uid,
		Credential:  domain.Credential{Token: "tok-" + uid, Secret: "sec-" + uid},
		Profile:     map[string]any{"name": "User " + uid},
	})
	require.NoError(t, err)

	return client.NewSession(token), ident.ID
}

// assertHealthy verifies a health response is ok.
func assertHealthy(t *testing.T, health *socialsdk.HealthResponse, err error) {
	t.Helper()

	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, app.BuildVersion, health.Version)
}
