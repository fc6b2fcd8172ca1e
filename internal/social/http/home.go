package http

import (
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/aussiebroadwan/hellosocial/internal/social/service"
)

type providerLink struct {
	Title string
	URL   string
}

type homePage struct {
	Identity     *domain.Identity
	Providers    []providerLink
	CanShare     bool
	ShareMessage string
}

// HomeHandler shows sign-in links to anonymous visitors and the identity
// summary to signed-in ones.
type HomeHandler struct {
	Providers *provider.Registry
	Shares    *service.ShareService
	Pages     *Pages
}

func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromContext(r.Context())

	page := homePage{Identity: ident}
	if ident == nil {
		for _, name := range h.Providers.Names() {
			page.Providers = append(page.Providers, providerLink{
				Title: name.Title(),
				URL:   "/auth/" + url.PathEscape(string(name)),
			})
		}
	} else {
		page.CanShare = h.Shares.CanShare(ident)
		page.ShareMessage = h.Shares.DefaultMessage(ident)
	}

	h.Pages.Render(w, r, http.StatusOK, pageHome, page)
}
