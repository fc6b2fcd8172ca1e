package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/internal/social/session"
	"github.com/aussiebroadwan/hellosocial/pkg/httpx"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
)

const (
	failurePath = "/auth/failure"
	apiPrefix   = "/v1/"
)

// SessionMiddleware resolves the session cookie into an identity and stores
// it on the request context. Stale cookies are cleared. A session whose
// identity has vanished is sent to the failure page, or revoked on the spot
// for JSON API calls.
func SessionMiddleware(identities *service.IdentityService, cookies session.CookieOptions) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)

			ident, err := identities.Resolve(r.Context(), token)
			switch {
			case errors.Is(err, service.ErrIdentityMissing) && strings.HasPrefix(r.URL.Path, apiPrefix):
				if err := identities.Logout(r.Context(), token); err != nil {
					slogx.FromContext(r.Context()).Warn("revoke orphaned session", "err", err)
				}
				session.ClearCookie(w, cookies)
				apiError(service.ErrUnauthenticated).WriteError(w)
				return
			case errors.Is(err, service.ErrIdentityMissing):
				if r.URL.Path != failurePath {
					http.Redirect(w, r, failurePath, http.StatusSeeOther)
					return
				}
			case err != nil:
				slogx.FromContext(r.Context()).Error("session resolve failed", "err", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			case ident == nil && token != "":
				session.ClearCookie(w, cookies)
			}

			ctx := r.Context()
			if ident != nil {
				ctx = slogx.With(withIdentity(ctx, ident), "identity_id", ident.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CrossOriginMiddleware rejects cross-origin unsafe requests. Provider
// callbacks are exempt since they arrive from the provider's site.
func CrossOriginMiddleware() httpx.Middleware {
	cop := http.NewCrossOriginProtection()
	cop.AddInsecureBypassPattern("/auth/{provider}/callback")
	cop.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slogx.FromContext(r.Context()).Warn("cross-origin request rejected",
			"origin", r.Header.Get("Origin"),
			"path", r.URL.Path,
		)
		http.Error(w, "Cross-origin request rejected", http.StatusForbidden)
	}))
	return cop.Handler
}
