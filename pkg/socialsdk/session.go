package socialsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// SessionCookieName must match the cookie the server issues.
const SessionCookieName = "hellosocial_session"

// Session performs requests on behalf of one signed-in identity.
type Session struct {
	client *SDKClient
	token  string
}

// Me returns the identity the session is bound to.
func (s *Session) Me(ctx context.Context) (*Identity, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil)
	if err != nil {
		return nil, err
	}

	var ident Identity
	if err := decodeJSON(resp, &ident, http.StatusOK); err != nil {
		return nil, err
	}
	return &ident, nil
}

// UpdateFavorite sets the favorite color of identity id. Only the owner or an
// administrator may do this.
func (s *Session) UpdateFavorite(ctx context.Context, id, favorite string) (*Identity, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPut, "/v1/identities/"+url.PathEscape(id)+"/favorite", FavoriteRequest{Favorite: favorite})
	if err != nil {
		return nil, err
	}

	var ident Identity
	if err := decodeJSON(resp, &ident, http.StatusOK); err != nil {
		return nil, err
	}
	return &ident, nil
}

// Share posts message to provider, which must be the network the session
// signed in with.
func (s *Session) Share(ctx context.Context, provider, message string) (*ShareResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/share/"+url.PathEscape(provider), ShareRequest{Message: message})
	if err != nil {
		return nil, err
	}

	var out ShareResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) doAuthJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return s.doAuthRequest(ctx, method, path, bytes.NewReader(b))
}
