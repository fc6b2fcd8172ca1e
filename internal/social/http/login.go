package http

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/internal/social/session"
	"github.com/aussiebroadwan/hellosocial/pkg/cryptox"
	"github.com/aussiebroadwan/hellosocial/pkg/httpx"
	"github.com/aussiebroadwan/hellosocial/pkg/jwtx"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
)

// stateCookieName holds the signed login state between BeginLogin and the
// provider callback.
const stateCookieName = "hellosocial_login"

// LoginHandler drives the provider round-trip and the session lifecycle.
type LoginHandler struct {
	Providers  *provider.Registry
	Identities *service.IdentityService
	Signer     *jwtx.StateSigner
	Sealer     *cryptox.Sealer
	Issuer     string
	StateTTL   time.Duration
	Cookies    session.CookieOptions
	Pages      *Pages

	// Now is overridable in tests.
	Now func() time.Time
}

func (h *LoginHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *LoginHandler) stateTTL() time.Duration {
	if h.StateTTL > 0 {
		return h.StateTTL
	}
	return jwtx.DefaultStateTTL
}

// HandleBegin redirects the visitor to the provider's consent page.
// The optional origin query parameter is where the visitor lands afterwards.
func (h *LoginHandler) HandleBegin(w http.ResponseWriter, r *http.Request) {
	name := domain.ProviderName(r.PathValue("provider"))
	l := slogx.FromContext(r.Context()).With("provider", name)

	p, ok := h.Providers.Lookup(name)
	if !ok {
		h.Pages.Message(w, r, http.StatusNotFound, "Unknown sign-in provider")
		return
	}

	origin := httpx.SafeRedirectPath(r.URL.Query().Get("origin"), "/")
	claims := jwtx.NewStateClaims(string(name), origin, "", h.stateTTL(), h.Issuer, h.now())

	req, err := p.BeginLogin(r.Context(), claims.Nonce)
	if err != nil {
		l.Error("begin login failed", "err", err)
		h.fail(w, r)
		return
	}

	sealed, err := h.Sealer.SealString(req.Secret)
	if err != nil {
		l.Error("seal login secret", "err", err)
		h.fail(w, r)
		return
	}
	claims.Secret = base64.RawURLEncoding.EncodeToString(sealed)

	raw, err := h.Signer.Sign(claims)
	if err != nil {
		l.Error("sign login state", "err", err)
		h.fail(w, r)
		return
	}

	h.setStateCookie(w, raw, claims.ExpiresAt.Time)
	l.Debug("login started", "origin", origin)
	http.Redirect(w, r, req.RedirectURL, http.StatusFound)
}

// HandleCallback completes the provider handshake, persists the identity and
// only then binds a fresh session to it.
func (h *LoginHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	name := domain.ProviderName(r.PathValue("provider"))
	l := slogx.FromContext(r.Context()).With("provider", name)

	p, ok := h.Providers.Lookup(name)
	if !ok {
		h.Pages.Message(w, r, http.StatusNotFound, "Unknown sign-in provider")
		return
	}

	c, err := r.Cookie(stateCookieName)
	h.clearStateCookie(w)
	if err != nil {
		l.Warn("callback without login state")
		h.fail(w, r)
		return
	}

	claims, err := h.Signer.Verify(c.Value)
	if err != nil {
		l.Warn("login state rejected", "err", err)
		h.fail(w, r)
		return
	}
	if claims.Provider != string(name) {
		l.Warn("login state for another provider", "state_provider", claims.Provider)
		h.fail(w, r)
		return
	}

	payload, err := h.completeLogin(r.Context(), p, r.URL.Query(), claims)
	if err != nil {
		l.Warn("login callback rejected", "err", err)
		h.fail(w, r)
		return
	}

	ident, token, expires, err := h.Identities.Login(r.Context(), *payload)
	if err != nil {
		// Already logged by the service. No session is bound.
		h.fail(w, r)
		return
	}

	if old := session.TokenFromRequest(r); old != "" {
		if err := h.Identities.Logout(r.Context(), old); err != nil {
			l.Warn("revoke previous session", "err", err)
		}
	}

	session.SetCookie(w, token, expires, h.Cookies)
	l.Info("login completed", "identity_id", ident.ID)
	http.Redirect(w, r, httpx.SafeRedirectPath(claims.Origin, "/"), http.StatusFound)
}

// HandleFailure tears down any session and shows the generic failure page.
func (h *LoginHandler) HandleFailure(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	h.Pages.Render(w, r, http.StatusOK, pageFailure, nil)
}

// HandleLogout ends the session and goes home.
func (h *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *LoginHandler) endSession(w http.ResponseWriter, r *http.Request) {
	if token := session.TokenFromRequest(r); token != "" {
		if err := h.Identities.Logout(r.Context(), token); err != nil {
			slogx.FromContext(r.Context()).Warn("revoke session", "err", err)
		}
	}
	session.ClearCookie(w, h.Cookies)
}

func (h *LoginHandler) fail(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, failurePath, http.StatusSeeOther)
}

func (h *LoginHandler) setStateCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    value,
		Path:     "/auth/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *LoginHandler) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// completeLogin runs the provider half of the callback. Every failure is a
// service.ErrProviderCallback.
func (h *LoginHandler) completeLogin(ctx context.Context, p provider.Provider, query url.Values, claims jwtx.StateClaims) (*domain.LoginPayload, error) {
	secret, err := h.openSecret(claims.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: login secret unreadable: %v", service.ErrProviderCallback, err)
	}

	payload, err := p.CompleteLogin(ctx, provider.Callback{
		Query:  query,
		State:  claims.Nonce,
		Secret: secret,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrProviderCallback, err)
	}
	return payload, nil
}

func (h *LoginHandler) openSecret(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return h.Sealer.OpenString(sealed)
}
