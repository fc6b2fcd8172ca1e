// Package provider defines the capabilities a federated identity provider
// offers. Implementations return identity facts only; they never create
// identities or sessions.
package provider

import (
	"context"
	"errors"
	"net/url"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
)

var (
	ErrDenied        = errors.New("provider: user denied authorization")
	ErrStateMismatch = errors.New("provider: state mismatch")
	ErrMissingParam  = errors.New("provider: missing callback parameter")
	ErrBadResponse   = errors.New("provider: unexpected response")
)

// LoginRequest is where to send the visitor to log in, plus a handshake
// secret the caller must keep (sealed) until the callback arrives.
type LoginRequest struct {
	RedirectURL string
	Secret      string
}

// Callback carries what came back on the callback URL together with the
// state issued at BeginLogin.
type Callback struct {
	Query  url.Values
	State  string
	Secret string
}

// Provider is the login capability every provider has.
type Provider interface {
	Name() domain.ProviderName

	// BeginLogin starts the handshake. state is echoed back by OAuth2
	// providers and must be checked in CompleteLogin.
	BeginLogin(ctx context.Context, state string) (LoginRequest, error)

	// CompleteLogin finishes the handshake and fetches the user's profile.
	CompleteLogin(ctx context.Context, cb Callback) (*domain.LoginPayload, error)

	// ProfileLinks derives the public profile page and portrait image for a
	// provider account. Either may be empty.
	ProfileLinks(uid string, profile map[string]any) (profileLink, portraitLink string)
}

// Publisher is implemented by providers that can post to the user's feed.
type Publisher interface {
	Publish(ctx context.Context, cred domain.Credential, message string) (*domain.PublishResult, error)
}

// CheckState compares the state echoed on an OAuth2 callback with the one
// issued, and surfaces provider-side denial first.
func CheckState(cb Callback) error {
	if e := cb.Query.Get("error"); e != "" {
		return errors.Join(ErrDenied, errors.New(e+": "+cb.Query.Get("error_description")))
	}
	if cb.State == "" || cb.Query.Get("state") != cb.State {
		return ErrStateMismatch
	}
	return nil
}

// String returns profile[key] when it is a string, else "".
func String(profile map[string]any, key string) string {
	s, _ := profile[key].(string)
	return s
}
