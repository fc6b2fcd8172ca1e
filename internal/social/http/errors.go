package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hellosocial/internal/social/service"
	"github.com/aussiebroadwan/hellosocial/pkg/httpx"
)

const (
	msgLoginRequired = "You need to be logged in to do this"
	msgNoPermission  = "You don't have permission to do this"
	msgSignInAgain   = "Please sign in again to share"
)

// apiError maps a service error onto the response the caller sees. HTML
// pages show the Description as plain text.
func apiError(err error) *httpx.Error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return &httpx.Error{StatusCode: http.StatusForbidden, Code: httpx.ErrorCodeUnauthenticated, Description: msgLoginRequired}
	case errors.Is(err, service.ErrForbidden):
		return &httpx.Error{StatusCode: http.StatusForbidden, Code: httpx.ErrorCodeForbidden, Description: msgNoPermission}
	case errors.Is(err, service.ErrProviderMismatch):
		return &httpx.Error{StatusCode: http.StatusBadRequest, Code: httpx.ErrorCodeProviderMismatch, Description: "You can only share to the network you signed in with"}
	case errors.Is(err, service.ErrIdentityNotFound):
		return httpx.ErrNotFound.WithDescription("No such identity")
	case errors.Is(err, service.ErrUnknownProvider):
		return httpx.ErrNotFound.WithDescription("No such provider")
	case errors.Is(err, service.ErrShareUnsupported):
		return &httpx.Error{StatusCode: http.StatusBadRequest, Code: httpx.ErrorCodeUnsupported, Description: "Sharing is not supported for this network"}
	case errors.Is(err, service.ErrCredentialUnavailable):
		return &httpx.Error{StatusCode: http.StatusUnauthorized, Code: httpx.ErrorCodeReauthenticate, Description: msgSignInAgain}
	case errors.Is(err, service.ErrInvalidFavorite):
		return httpx.ErrInvalidRequest.WithDescription("Favorite color must be between 1 and 64 characters")
	case errors.Is(err, service.ErrEmptyMessage):
		return httpx.ErrInvalidRequest.WithDescription("Message must not be empty")
	case errors.Is(err, service.ErrPublishFailed):
		return &httpx.Error{StatusCode: http.StatusBadGateway, Code: httpx.ErrorCodeUpstream, Description: "The social network rejected the post"}
	default:
		return httpx.ErrServerError.WithDescription("Something went wrong")
	}
}
