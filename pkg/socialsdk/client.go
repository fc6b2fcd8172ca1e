package socialsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the hellosocial API.
// It provides access to unauthenticated operations and can wrap a session
// cookie into a Session.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with a 10 second timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// NewSession wraps the value of a hellosocial_session cookie obtained from
// the browser sign-in flow.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}
