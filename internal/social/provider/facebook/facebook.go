// Package facebook logs visitors in with OAuth 2.0 and posts to their feed
// through the Graph API.
package facebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"golang.org/x/oauth2"
	fbendpoint "golang.org/x/oauth2/facebook"
)

const (
	DefaultGraphURL = "https://graph.facebook.com/v19.0"
	DefaultSiteURL  = "https://www.facebook.com"
	pictureURL      = "https://graph.facebook.com/%s/picture"
)

// DefaultScopes asks for the profile, email and the right to post.
var DefaultScopes = []string{"public_profile", "email", "publish_actions"}

type Config struct {
	AppID       string
	AppSecret   string
	CallbackURL string
	Scopes      []string

	// Endpoint, GraphURL and SiteURL default to the public Facebook hosts.
	Endpoint oauth2.Endpoint
	GraphURL string
	SiteURL  string
}

type Provider struct {
	oauth    *oauth2.Config
	graphURL string
	siteURL  string
}

var (
	_ provider.Provider  = (*Provider)(nil)
	_ provider.Publisher = (*Provider)(nil)
)

func New(cfg Config) (*Provider, error) {
	if cfg.AppID == "" || cfg.AppSecret == "" || cfg.CallbackURL == "" {
		return nil, errors.New("facebook: app id, secret and callback url are required")
	}
	if cfg.Endpoint.TokenURL == "" {
		cfg.Endpoint = fbendpoint.Endpoint
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}
	if cfg.GraphURL == "" {
		cfg.GraphURL = DefaultGraphURL
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = DefaultSiteURL
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.AppSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     cfg.Endpoint,
			Scopes:       cfg.Scopes,
		},
		graphURL: strings.TrimRight(cfg.GraphURL, "/"),
		siteURL:  strings.TrimRight(cfg.SiteURL, "/"),
	}, nil
}

func (p *Provider) Name() domain.ProviderName { return domain.ProviderFacebook }

func (p *Provider) BeginLogin(_ context.Context, state string) (provider.LoginRequest, error) {
	return provider.LoginRequest{
		RedirectURL: p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline),
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

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("facebook token exchange: %w", err)
	}

	var me me
	q := url.Values{"fields": {"id,name,email,location,link,picture"}}
	if err := p.graph(ctx, token.AccessToken, http.MethodGet, "/me", q, &me); err != nil {
		return nil, err
	}
	if me.ID == "" {
		return nil, fmt.Errorf("%w: /me without id", provider.ErrBadResponse)
	}

	return &domain.LoginPayload{
		Provider:    domain.ProviderFacebook,
		ProviderUID: me.ID,
		Credential:  domain.Credential{Token: token.AccessToken},
		Profile:     me.profile(),
	}, nil
}

// ProfileLinks uses the profile URL Facebook reported and the Graph picture
// redirect for the uid.
func (p *Provider) ProfileLinks(uid string, profile map[string]any) (string, string) {
	var portrait string
	if uid != "" {
		portrait = fmt.Sprintf(pictureURL, url.PathEscape(uid))
	}
	return provider.String(profile, "link"), portrait
}

// Publish posts message to the user's feed.
func (p *Provider) Publish(ctx context.Context, cred domain.Credential, message string) (*domain.PublishResult, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := p.graph(ctx, cred.Token, http.MethodPost, "/me/feed", url.Values{"message": {message}}, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: feed post without id", provider.ErrBadResponse)
	}

	return &domain.PublishResult{
		PostID: out.ID,
		URL:    p.siteURL + "/" + url.PathEscape(out.ID),
	}, nil
}

func (p *Provider) graph(ctx context.Context, accessToken, method, path string, params url.Values, out any) error {
	client := p.oauth.Client(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	var (
		req *http.Request
		err error
	)
	endpoint := p.graphURL + path
	if method == http.MethodGet {
		req, err = http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
		if req != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("facebook %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("facebook %s: %w", path, err)
	}
	if resp.StatusCode/100 != 2 {
		var ge graphError
		_ = json.Unmarshal(body, &ge)
		return fmt.Errorf("%w: facebook %s returned %d: %s", provider.ErrBadResponse, path, resp.StatusCode, ge.Error.Message)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: facebook %s: %v", provider.ErrBadResponse, path, err)
	}
	return nil
}

type me struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Link     string `json:"link"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

func (m me) profile() map[string]any {
	return map[string]any{
		"name":     m.Name,
		"email":    m.Email,
		"location": m.Location.Name,
		"link":     m.Link,
		"image":    m.Picture.Data.URL,
		"urls":     map[string]any{"Facebook": m.Link},
	}
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}
