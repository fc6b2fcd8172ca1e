package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/hellosocial/internal/social/http"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/internal/social/session"
	"github.com/aussiebroadwan/hellosocial/internal/social/store"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/aussiebroadwan/hellosocial/pkg/jwtx"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the site with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db           store.Store
	sessionStore session.Store
	redisClient  *redis.Client // nil unless SESSION_BACKEND=redis
	providers    *provider.Registry
	stateSigner  *jwtx.StateSigner
	sealer       *cryptox.Sealer

	// Services
	identityService     *service.IdentityService
	shareService        *service.ShareService
	housekeepingService *service.HousekeepingService // nil unless SESSION_BACKEND=sql

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "hellosocial",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	sealer, err := NewSealer(app.cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.sealer = sealer

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.initSessions(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	providers, err := InitProviders(ctx, app.cfg, app.logger)
	if err != nil {
		app.closeStores()
		return nil, fmt.Errorf("failed to initialize identity providers: %w", err)
	}
	app.providers = providers

	signer, err := InitStateSigner(app.cfg, app.sealer, app.logger)
	if err != nil {
		app.closeStores()
		return nil, err
	}
	app.stateSigner = signer

	app.initServices()
	if err := app.initHTTP(); err != nil {
		app.closeStores()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	if app.housekeepingService != nil {
		app.housekeepingService.Start()
	}

	app.logger.Info("hellosocial starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"base_url", app.cfg.BaseURL,
		"session_backend", app.cfg.SessionBackend,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down hellosocial...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingService != nil {
		app.housekeepingService.Stop()
	}

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("hellosocial stopped")
	return nil
}

func (app *Application) closeStores() error {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	db, err := OpenDatabase(app.cfg, app.sealer)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSessions picks the session store for SESSION_BACKEND.
func (app *Application) initSessions(ctx context.Context) error {
	switch app.cfg.SessionBackend {
	case SessionBackendRedis:
		client, err := session.NewRedisClient(ctx, app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.redisClient = client
		app.sessionStore = session.NewRedisStore(client)
		app.logger.Info("redis session store ready", "addr", app.cfg.RedisAddr, "db", app.cfg.RedisDB)
	default:
		app.sessionStore = session.NewDBStore(app.db)
		app.logger.Info("sql session store ready")
	}
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.identityService = &service.IdentityService{
		Store:           app.db,
		Sessions:        session.NewManager(app.sessionStore, app.cfg.SessionTTL),
		Providers:       app.providers,
		DefaultFavorite: app.cfg.DefaultFavoriteColor,
	}

	app.shareService = &service.ShareService{
		Providers: app.providers,
		BaseURL:   app.cfg.BaseURL,
	}

	// Redis expires keys on its own.
	if app.cfg.SessionBackend == SessionBackendSQL {
		app.housekeepingService = service.NewHousekeepingService(
			app.db,
			app.logger,
			app.cfg.HousekeepingInterval,
		)
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() error {
	pages, err := httpapi.LoadPages()
	if err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}

	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.sessionStore,
		app.logger,
	)

	router.Providers = app.providers
	router.IdentityService = app.identityService
	router.ShareService = app.shareService
	router.Pages = pages
	router.StateSigner = app.stateSigner
	router.Sealer = app.sealer
	router.StateIssuer = app.cfg.BaseURL
	router.StateTTL = jwtx.DefaultStateTTL
	router.Cookies = session.CookieOptions{Secure: app.cfg.SecureCookies()}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}

// Handler exposes the routed handler without starting a listener.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Close releases the stores of an application that was never Run.
func (app *Application) Close() error {
	return app.closeStores()
}
