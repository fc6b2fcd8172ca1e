// Package twitter logs visitors in with OAuth 1.0a and posts tweets on their
// behalf through the v1.1 REST API.
package twitter

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
	"github.com/dghubble/oauth1"
)

const (
	DefaultAPIURL  = "https://api.twitter.com"
	DefaultSiteURL = "https://twitter.com"
)

// Config configures the provider. APIURL and SiteURL default to the public
// Twitter hosts.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string

	APIURL  string
	SiteURL string
}

type Provider struct {
	oauth   *oauth1.Config
	apiURL  string
	siteURL string
}

var (
	_ provider.Provider  = (*Provider)(nil)
	_ provider.Publisher = (*Provider)(nil)
)

func New(cfg Config) (*Provider, error) {
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" || cfg.CallbackURL == "" {
		return nil, errors.New("twitter: consumer key, secret and callback url are required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = DefaultSiteURL
	}
	api := strings.TrimRight(cfg.APIURL, "/")

	return &Provider{
		oauth: &oauth1.Config{
			ConsumerKey:    cfg.ConsumerKey,
			ConsumerSecret: cfg.ConsumerSecret,
			CallbackURL:    cfg.CallbackURL,
			Endpoint: oauth1.Endpoint{
				RequestTokenURL: api + "/oauth/request_token",
				AuthorizeURL:    api + "/oauth/authenticate",
				AccessTokenURL:  api + "/oauth/access_token",
			},
		},
		apiURL:  api,
		siteURL: strings.TrimRight(cfg.SiteURL, "/"),
	}, nil
}

func (p *Provider) Name() domain.ProviderName { return domain.ProviderTwitter }

// BeginLogin fetches a request token. OAuth 1.0a has no state parameter, the
// request secret returned here plays that role.
func (p *Provider) BeginLogin(ctx context.Context, _ string) (provider.LoginRequest, error) {
	requestToken, requestSecret, err := p.oauth.RequestToken()
	if err != nil {
		return provider.LoginRequest{}, fmt.Errorf("twitter request token: %w", err)
	}

	authURL, err := p.oauth.AuthorizationURL(requestToken)
	if err != nil {
		return provider.LoginRequest{}, fmt.Errorf("twitter authorization url: %w", err)
	}

	return provider.LoginRequest{
		RedirectURL: authURL.String(),
		Secret:      requestSecret,
	}, nil
}

func (p *Provider) CompleteLogin(ctx context.Context, cb provider.Callback) (*domain.LoginPayload, error) {
	if cb.Query.Get("denied") != "" {
		return nil, provider.ErrDenied
	}

	requestToken := cb.Query.Get("oauth_token")
	verifier := cb.Query.Get("oauth_verifier")
	if requestToken == "" || verifier == "" {
		return nil, fmt.Errorf("%w: oauth_token/oauth_verifier", provider.ErrMissingParam)
	}
	if cb.Secret == "" {
		return nil, provider.ErrStateMismatch
	}

	accessToken, accessSecret, err := p.oauth.AccessToken(requestToken, cb.Secret, verifier)
	if err != nil {
		return nil, fmt.Errorf("twitter access token: %w", err)
	}
	cred := domain.Credential{Token: accessToken, Secret: accessSecret}

	var u user
	if err := p.call(ctx, cred, http.MethodGet, "/1.1/account/verify_credentials.json",
		url.Values{"include_email": {"true"}, "skip_status": {"true"}}, &u); err != nil {
		return nil, err
	}
	if u.IDStr == "" {
		return nil, fmt.Errorf("%w: verify_credentials without id_str", provider.ErrBadResponse)
	}

	return &domain.LoginPayload{
		Provider:    domain.ProviderTwitter,
		ProviderUID: u.IDStr,
		Credential:  cred,
		Profile:     u.profile(),
	}, nil
}

// ProfileLinks points at the public profile for the screen name and the
// avatar image. No screen name, no profile link.
func (p *Provider) ProfileLinks(_ string, profile map[string]any) (string, string) {
	var profileLink string
	if nick := provider.String(profile, "nickname"); nick != "" {
		profileLink = p.siteURL + "/" + url.PathEscape(nick)
	}
	return profileLink, provider.String(profile, "image")
}

// Publish posts message as a tweet.
func (p *Provider) Publish(ctx context.Context, cred domain.Credential, message string) (*domain.PublishResult, error) {
	var s status
	if err := p.call(ctx, cred, http.MethodPost, "/1.1/statuses/update.json",
		url.Values{"status": {message}}, &s); err != nil {
		return nil, err
	}
	if s.IDStr == "" || s.User.ScreenName == "" {
		return nil, fmt.Errorf("%w: status update without id_str or screen_name", provider.ErrBadResponse)
	}

	return &domain.PublishResult{
		PostID: s.IDStr,
		URL:    p.siteURL + "/" + url.PathEscape(s.User.ScreenName) + "/status/" + url.PathEscape(s.IDStr),
	}, nil
}

func (p *Provider) call(ctx context.Context, cred domain.Credential, method, path string, params url.Values, out any) error {
	client := p.oauth.Client(ctx, oauth1.NewToken(cred.Token, cred.Secret))

	var (
		req *http.Request
		err error
	)
	endpoint := p.apiURL + path
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
		return fmt.Errorf("twitter %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("twitter %s: %w", path, err)
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: twitter %s returned %d: %s", provider.ErrBadResponse, path, resp.StatusCode, truncate(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: twitter %s: %v", provider.ErrBadResponse, path, err)
	}
	return nil
}

type user struct {
	IDStr           string `json:"id_str"`
	Name            string `json:"name"`
	ScreenName      string `json:"screen_name"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profile_image_url_https"`
	URL             string `json:"url"`
}

func (u user) profile() map[string]any {
	return map[string]any{
		"name":        u.Name,
		"nickname":    u.ScreenName,
		"location":    u.Location,
		"email":       u.Email,
		"image":       u.ProfileImageURL,
		"description": u.Description,
		"urls":        map[string]any{"Website": u.URL},
	}
}

type status struct {
	IDStr string `json:"id_str"`
	User  struct {
		ScreenName string `json:"screen_name"`
	} `json:"user"`
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
