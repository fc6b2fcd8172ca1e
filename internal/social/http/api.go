package http

import (
	"net/http"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/pkg/httpx"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
	"github.com/aussiebroadwan/hellosocial/pkg/socialsdk"
)

func newIdentityResponse(i *domain.Identity) socialsdk.Identity {
	return socialsdk.Identity{
		ID:              i.ID,
		Provider:        string(i.Provider),
		Name:            i.Profile.Name,
		Location:        i.Profile.Location,
		Email:           i.Profile.Email,
		ProfileLink:     i.Profile.ProfileLink,
		PortraitLink:    i.Profile.PortraitLink,
		FavoriteColor:   i.FavoriteColor,
		IsAdministrator: i.IsAdministrator,
		CreatedAt:       i.CreatedAt,
		EditedAt:        i.EditedAt,
	}
}

// APIHandler is the JSON mirror of the HTML pages. It authenticates with the
// same session cookie.
type APIHandler struct {
	Identities *service.IdentityService
	Shares     *service.ShareService
}

// HandleMe godoc
//
//	@Summary		Current identity
//	@Description	Returns the identity bound to the session cookie.
//	@Tags			Identity
//	@Produce		json
//	@Success		200	{object}	socialsdk.Identity
//	@Failure		403	{object}	httpx.Error	"not signed in"
//	@Router			/v1/me [get]
func (h *APIHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromContext(r.Context())
	if ident == nil {
		apiError(service.ErrUnauthenticated).WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newIdentityResponse(ident))
}

// HandleUpdateFavorite godoc
//
//	@Summary		Update favorite color
//	@Description	Sets the favorite color of an identity. Only the owner or an administrator may do this.
//	@Description	edited_at only moves when the value actually changes.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Identity id, <uid>@<provider>"	example(42@twitter)
//	@Param			request	body		socialsdk.FavoriteRequest	true	"New value"
//	@Success		200		{object}	socialsdk.Identity
//	@Failure		400		{object}	httpx.Error	"invalid value"
//	@Failure		403		{object}	httpx.Error	"not signed in or not permitted"
//	@Failure		404		{object}	httpx.Error	"no such identity"
//	@Router			/v1/identities/{id}/favorite [put]
func (h *APIHandler) HandleUpdateFavorite(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.FavoriteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}

	ident, err := h.Identities.UpdateFavorite(r.Context(), IdentityFromContext(r.Context()), r.PathValue("id"), req.Favorite)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newIdentityResponse(ident))
}

// HandleShare godoc
//
//	@Summary		Share to the social feed
//	@Description	Posts a message with the stored credential. The provider must be the one the visitor signed in with.
//	@Tags			Share
//	@Accept			json
//	@Produce		json
//	@Param			provider	path		string			true	"Provider name"	Enums(twitter, facebook, google)
//	@Param			request		body		socialsdk.ShareRequest	true	"Message to post"
//	@Success		201			{object}	socialsdk.ShareResponse
//	@Failure		400			{object}	httpx.Error	"provider mismatch, unsupported or empty message"
//	@Failure		401			{object}	httpx.Error	"credential unavailable, sign in again"
//	@Failure		403			{object}	httpx.Error	"not signed in"
//	@Failure		502			{object}	httpx.Error	"provider rejected the post"
//	@Router			/v1/share/{provider} [post]
func (h *APIHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.ShareRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}

	res, err := h.Shares.Share(r.Context(), IdentityFromContext(r.Context()), domain.ProviderName(r.PathValue("provider")), req.Message)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, socialsdk.ShareResponse{PostID: res.PostID, URL: res.URL})
}

func (h *APIHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := apiError(err)
	if e.StatusCode >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("api request failed", "err", err)
	}
	e.WriteError(w)
}
