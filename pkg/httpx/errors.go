package httpx

import (
	"fmt"
	"net/http"
)

const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeUnauthenticated  = "unauthenticated"
	ErrorCodeReauthenticate   = "reauthenticate"
	ErrorCodeForbidden        = "forbidden"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeProviderMismatch = "provider_mismatch"
	ErrorCodeUnsupported      = "unsupported"
	ErrorCodeUpstream         = "upstream_error"
	ErrorCodeServerError      = "server_error"
)

// Error is the JSON error body returned by the API.
type Error struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as a JSON response.
func (e *Error) WriteError(w http.ResponseWriter) {
	WriteJSON(w, e.StatusCode, e)
}

// WithDescription returns a copy of e with a different description.
func (e *Error) WithDescription(desc string) *Error {
	c := *e
	c.Description = desc
	return &c
}

var (
	ErrInvalidRequest = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	ErrServerError = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "the server encountered an unexpected condition",
	}
)
