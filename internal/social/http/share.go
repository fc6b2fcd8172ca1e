package http

import (
	"net/http"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
)

type sharedPage struct {
	Provider domain.ProviderName
	Result   *domain.PublishResult
}

// ShareHandler posts the submitted message to the visitor's own network.
type ShareHandler struct {
	Shares *service.ShareService
	Pages  *Pages
}

func (h *ShareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := domain.ProviderName(r.PathValue("provider"))

	if err := r.ParseForm(); err != nil {
		h.Pages.Message(w, r, http.StatusBadRequest, "Malformed form")
		return
	}

	res, err := h.Shares.Share(r.Context(), IdentityFromContext(r.Context()), requested, r.PostFormValue("message"))
	if err != nil {
		e := apiError(err)
		if e.StatusCode >= http.StatusInternalServerError {
			slogx.FromContext(r.Context()).Error("share failed", "err", err)
		}
		h.Pages.Message(w, r, e.StatusCode, e.Description)
		return
	}

	h.Pages.Render(w, r, http.StatusOK, pageShared, sharedPage{Provider: requested, Result: res})
}
