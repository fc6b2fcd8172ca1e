package socialsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/hellosocial/pkg/httpx"
)

// parseErrorResponse turns a non-success response into *httpx.Error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &httpx.Error{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Health endpoints answer 503 with a HealthResponse, not an error body.
	var health HealthResponse
	if err := json.Unmarshal(body, &health); err == nil && health.Status != "" {
		return &httpx.Error{
			StatusCode:  resp.StatusCode,
			Code:        httpx.ErrorCodeServerError,
			Description: "service " + health.Status,
		}
	}

	return &httpx.Error{
		StatusCode:  resp.StatusCode,
		Code:        httpx.ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

func hasCode(err error, code string) bool {
	var e *httpx.Error
	return errors.As(err, &e) && e.Code == code
}

// IsUnauthenticated reports whether the session is missing or expired.
func IsUnauthenticated(err error) bool { return hasCode(err, httpx.ErrorCodeUnauthenticated) }

// IsForbidden reports whether the identity may not touch the target.
func IsForbidden(err error) bool { return hasCode(err, httpx.ErrorCodeForbidden) }

// IsProviderMismatch reports a share to a network other than the one signed
// in with.
func IsProviderMismatch(err error) bool { return hasCode(err, httpx.ErrorCodeProviderMismatch) }

// IsNotFound reports an unknown identity or provider.
func IsNotFound(err error) bool { return hasCode(err, httpx.ErrorCodeNotFound) }

// IsReauthenticate reports that the stored provider credential can no longer
// be used and the visitor has to sign in again before sharing.
func IsReauthenticate(err error) bool { return hasCode(err, httpx.ErrorCodeReauthenticate) }
