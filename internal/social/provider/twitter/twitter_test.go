package twitter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider/twitter"
	"github.com/stretchr/testify/require"
)

// fakeTwitter answers the handful of OAuth 1.0a and REST endpoints we use.
func fakeTwitter(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var tweets []string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/request_token", func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.Header.Get("Authorization"), `oauth_consumer_key="ck"`)
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		_, _ = w.Write([]byte("oauth_token=req-token&oauth_token_secret=req-secret&oauth_callback_confirmed=true"))
	})
	mux.HandleFunc("POST /oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		require.Contains(t, auth, `oauth_token="req-token"`)
		require.Contains(t, auth, `oauth_verifier="the-verifier"`)
		_, _ = w.Write([]byte("oauth_token=access-token&oauth_token_secret=access-secret&user_id=42&screen_name=ada"))
	})
	mux.HandleFunc("GET /1.1/account/verify_credentials.json", func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.Header.Get("Authorization"), `oauth_token="access-token"`)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id_str":                  "42",
			"name":                    "Ada Lovelace",
			"screen_name":             "ada",
			"location":                "London",
			"profile_image_url_https": "https://pbs.example/ada.png",
		})
	})
	mux.HandleFunc("POST /1.1/statuses/update.json", func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.Header.Get("Authorization"), `oauth_token="access-token"`)
		require.NoError(t, r.ParseForm())
		status := r.PostForm.Get("status")
		if strings.Contains(status, "fail") {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errors":[{"code":187,"message":"Status is a duplicate."}]}`))
			return
		}
		tweets = append(tweets, status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id_str": "1001",
			"user":   map[string]any{"screen_name": "ada"},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &tweets
}

func newProvider(t *testing.T, srv *httptest.Server) *twitter.Provider {
	t.Helper()
	p, err := twitter.New(twitter.Config{
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		CallbackURL:    "http://localhost/auth/twitter/callback",
		APIURL:         srv.URL,
	})
	require.NoError(t, err)
	return p
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := twitter.New(twitter.Config{ConsumerKey: "ck"})
	require.Error(t, err)
}

func TestLoginRoundTrip(t *testing.T) {
	srv, _ := fakeTwitter(t)
	p := newProvider(t, srv)
	ctx := context.Background()

	req, err := p.BeginLogin(ctx, "ignored")
	require.NoError(t, err)
	require.Equal(t, "req-secret", req.Secret)

	u, err := url.Parse(req.RedirectURL)
	require.NoError(t, err)
	require.Equal(t, "/oauth/authenticate", u.Path)
	require.Equal(t, "req-token", u.Query().Get("oauth_token"))

	payload, err := p.CompleteLogin(ctx, provider.Callback{
		Query:  url.Values{"oauth_token": {"req-token"}, "oauth_verifier": {"the-verifier"}},
		Secret: req.Secret,
	})
	require.NoError(t, err)
	require.Equal(t, domain.ProviderTwitter, payload.Provider)
	require.Equal(t, "42", payload.ProviderUID)
	require.Equal(t, domain.Credential{Token: "access-token", Secret: "access-secret"}, payload.Credential)
	require.Equal(t, "Ada Lovelace", payload.ProfileString("name"))
	require.Equal(t, "ada", payload.ProfileString("nickname"))
	require.Equal(t, "London", payload.ProfileString("location"))
}

func TestCompleteLogin_Rejects(t *testing.T) {
	srv, _ := fakeTwitter(t)
	p := newProvider(t, srv)
	ctx := context.Background()

	t.Run("denied", func(t *testing.T) {
		_, err := p.CompleteLogin(ctx, provider.Callback{Query: url.Values{"denied": {"req-token"}}})
		require.ErrorIs(t, err, provider.ErrDenied)
	})

	t.Run("missing verifier", func(t *testing.T) {
		_, err := p.CompleteLogin(ctx, provider.Callback{Query: url.Values{"oauth_token": {"req-token"}}, Secret: "s"})
		require.ErrorIs(t, err, provider.ErrMissingParam)
	})

	t.Run("missing request secret", func(t *testing.T) {
		_, err := p.CompleteLogin(ctx, provider.Callback{
			Query: url.Values{"oauth_token": {"req-token"}, "oauth_verifier": {"the-verifier"}},
		})
		require.ErrorIs(t, err, provider.ErrStateMismatch)
	})
}

func TestProfileLinks(t *testing.T) {
	p, err := twitter.New(twitter.Config{ConsumerKey: "ck", ConsumerSecret: "cs", CallbackURL: "http://x/cb"})
	require.NoError(t, err)

	profile, portrait := p.ProfileLinks("42", map[string]any{"nickname": "ada", "image": "https://pbs.example/ada.png"})
	require.Equal(t, "https://twitter.com/ada", profile)
	require.Equal(t, "https://pbs.example/ada.png", portrait)

	profile, portrait = p.ProfileLinks("42", map[string]any{})
	require.Empty(t, profile)
	require.Empty(t, portrait)
}

func TestPublish(t *testing.T) {
	srv, tweets := fakeTwitter(t)
	p := newProvider(t, srv)
	cred := domain.Credential{Token: "access-token", Secret: "access-secret"}

	res, err := p.Publish(context.Background(), cred, "My favorite color is Blue!")
	require.NoError(t, err)
	require.Equal(t, "1001", res.PostID)
	require.Equal(t, "https://twitter.com/ada/status/1001", res.URL)
	require.Equal(t, []string{"My favorite color is Blue!"}, *tweets)

	_, err = p.Publish(context.Background(), cred, "please fail")
	require.ErrorIs(t, err, provider.ErrBadResponse)
}
