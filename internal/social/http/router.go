package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/internal/social/session"
	"github.com/aussiebroadwan/hellosocial/internal/social/store"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/aussiebroadwan/hellosocial/pkg/httpx"
	"github.com/aussiebroadwan/hellosocial/pkg/jwtx"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"

	_ "github.com/aussiebroadwan/hellosocial/api/social" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	sessions session.Store

	Providers       *provider.Registry
	IdentityService *service.IdentityService
	ShareService    *service.ShareService
	Pages           *Pages

	StateSigner *jwtx.StateSigner
	Sealer      *cryptox.Sealer
	StateIssuer string
	StateTTL    time.Duration
	Cookies     session.CookieOptions
}

func NewRouter(
	buildVersion string,
	st store.Store,
	sessions session.Store,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		sessions:     sessions,
	}
}

// ApplyRoutes registers every route and builds the global middleware chain.
// Services must be set before calling it.
func (r *Router) ApplyRoutes() {
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		CrossOriginMiddleware(),
		SessionMiddleware(r.IdentityService, r.Cookies),
	}

	r.registerPages()
	r.registerAuth()
	r.registerAPI()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Hello Social World API
//	@version		0.1.0
//	@description	Sign in with Twitter, Facebook or Google, keep a favorite color and share it.
//	@description
//	@description	The API uses the same session cookie as the HTML pages.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/hellosocial
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerPages() {
	home := &HomeHandler{Providers: r.Providers, Shares: r.ShareService, Pages: r.Pages}
	edit := &EditHandler{Identities: r.IdentityService, Pages: r.Pages}
	share := &ShareHandler{Shares: r.ShareService, Pages: r.Pages}

	r.Mux.Handle("GET /{$}", home)
	r.Mux.HandleFunc("GET /edit/{id}", edit.HandleGet)
	r.Mux.HandleFunc("POST /edit/{id}", edit.HandlePost)
	r.Mux.Handle("POST /share/{provider}", share)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{
		Providers:  r.Providers,
		Identities: r.IdentityService,
		Signer:     r.StateSigner,
		Sealer:     r.Sealer,
		Issuer:     r.StateIssuer,
		StateTTL:   r.StateTTL,
		Cookies:    r.Cookies,
		Pages:      r.Pages,
	}

	// Literal segments win over {provider}, so these never reach HandleBegin.
	r.Mux.HandleFunc("GET /auth/failure", h.HandleFailure)
	r.Mux.HandleFunc("GET /auth/logout", h.HandleLogout)
	r.Mux.HandleFunc("POST /auth/logout", h.HandleLogout)

	r.Mux.HandleFunc("GET /auth/{provider}", h.HandleBegin)
	r.Mux.HandleFunc("GET /auth/{provider}/callback", h.HandleCallback)
}

func (r *Router) registerAPI() {
	h := &APIHandler{Identities: r.IdentityService, Shares: r.ShareService}

	r.Mux.HandleFunc("GET /v1/me", h.HandleMe)
	r.Mux.HandleFunc("PUT /v1/identities/{id}/favorite", h.HandleUpdateFavorite)
	r.Mux.HandleFunc("POST /v1/share/{provider}", h.HandleShare)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.sessions))
}
