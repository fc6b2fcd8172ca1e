package http

import (
	"net/http"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
)

type editPage struct {
	Target    *domain.Identity
	MaxLength int
}

// EditHandler serves the favorite color form for one identity. Only the
// owner or an administrator gets past the gate.
type EditHandler struct {
	Identities *service.IdentityService
	Pages      *Pages
}

func (h *EditHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")

	if _, err := service.Authorize(IdentityFromContext(r.Context()), targetID); err != nil {
		h.reject(w, r, err)
		return
	}

	target, err := h.Identities.Get(r.Context(), targetID)
	if err != nil {
		h.reject(w, r, err)
		return
	}

	h.Pages.Render(w, r, http.StatusOK, pageEdit, editPage{Target: target, MaxLength: service.MaxFavoriteLength})
}

func (h *EditHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		h.Pages.Message(w, r, http.StatusBadRequest, "Malformed form")
		return
	}

	target, err := h.Identities.UpdateFavorite(r.Context(), IdentityFromContext(r.Context()), targetID, r.PostFormValue("favorite"))
	if err != nil {
		h.reject(w, r, err)
		return
	}

	h.Pages.Render(w, r, http.StatusOK, pageEdited, editPage{Target: target})
}

func (h *EditHandler) reject(w http.ResponseWriter, r *http.Request, err error) {
	e := apiError(err)
	if e.StatusCode >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("edit failed", "err", err)
	}
	h.Pages.Message(w, r, e.StatusCode, e.Description)
}
