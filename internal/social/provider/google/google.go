// Package google logs visitors in with OpenID Connect. Google has no feed to
// publish to, so the provider only implements the login capability.
package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const DefaultIssuer = "https://accounts.google.com"

type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string

	// Issuer defaults to Google's; discovery runs against it in New.
	Issuer string
}

type Provider struct {
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

var _ provider.Provider = (*Provider)(nil)

// New runs OIDC discovery against the issuer, so it needs network access.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.CallbackURL == "" {
		return nil, errors.New("google: client id, secret and callback url are required")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}

	op, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("google oidc discovery: %w", err)
	}

	return NewWithVerifier(cfg, op.Endpoint(), op.Verifier(&oidc.Config{ClientID: cfg.ClientID})), nil
}

// NewWithVerifier skips discovery. Useful when the endpoint and keys are
// already known.
func NewWithVerifier(cfg Config, endpoint oauth2.Endpoint, verifier *oidc.IDTokenVerifier) *Provider {
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     endpoint,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: verifier,
	}
}

func (p *Provider) Name() domain.ProviderName { return domain.ProviderGoogle }

// BeginLogin returns the consent URL. The PKCE verifier travels back to us
// as the handshake secret.
func (p *Provider) BeginLogin(_ context.Context, state string) (provider.LoginRequest, error) {
	verifier := oauth2.GenerateVerifier()
	return provider.LoginRequest{
		RedirectURL: p.oauth.AuthCodeURL(state,
			oauth2.AccessTypeOnline,
			oauth2.S256ChallengeOption(verifier),
			oidc.Nonce(state),
		),
		Secret: verifier,
	}, nil
}

func (p *Provider) CompleteLogin(ctx context.Context, cb provider.Callback) (*domain.LoginPayload, error) {
	if err := provider.CheckState(cb); err != nil {
		return nil, err
	}

	code := cb.Query.Get("code")
	if code == "" {
		return nil, fmt.Errorf("%w: code", provider.ErrMissingParam)
	}
	if cb.Secret == "" {
		return nil, fmt.Errorf("%w: pkce verifier", provider.ErrMissingParam)
	}

	token, err := p.oauth.Exchange(ctx, code, oauth2.VerifierOption(cb.Secret))
	if err != nil {
		return nil, fmt.Errorf("google token exchange: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: no id_token", provider.ErrBadResponse)
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("google id_token verification: %w", err)
	}
	if idToken.Nonce != cb.State {
		return nil, provider.ErrStateMismatch
	}

	var claims struct {
		Subject       string `json:"sub"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Picture       string `json:"picture"`
		Locale        string `json:"locale"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("google id_token claims: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: id_token without sub", provider.ErrBadResponse)
	}

	return &domain.LoginPayload{
		Provider:    domain.ProviderGoogle,
		ProviderUID: claims.Subject,
		Credential:  domain.Credential{Token: token.AccessToken},
		Profile: map[string]any{
			"name":           claims.Name,
			"email":          claims.Email,
			"email_verified": claims.EmailVerified,
			"image":          claims.Picture,
			"locale":         claims.Locale,
		},
	}, nil
}

// ProfileLinks has no public profile page to offer, only the picture.
func (p *Provider) ProfileLinks(_ string, profile map[string]any) (string, string) {
	return "", provider.String(profile, "image")
}
