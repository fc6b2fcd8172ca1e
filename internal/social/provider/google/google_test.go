package google_test

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider/google"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	clientID = "client-123"
	issuer   = "https://accounts.example"
)

type fakeIdP struct {
	srv      *httptest.Server
	key      *rsa.PrivateKey
	nonce    string
	verifier string
}

func newFakeIdP(t *testing.T) *fakeIdP {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	idp := &fakeIdP{key: key}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		idp.verifier = r.PostForm.Get("code_verifier")

		idToken := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
			"iss":     issuer,
			"aud":     clientID,
			"sub":     "10769150350006150715113082367",
			"exp":     time.Now().Add(time.Hour).Unix(),
			"iat":     time.Now().Unix(),
			"nonce":   idp.nonce,
			"name":    "Jane Doe",
			"email":   "jane@example.com",
			"picture": "https://lh3.example/jane.jpg",
		})
		signed, err := idToken.SignedString(idp.key)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "g-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     signed,
		})
	})

	idp.srv = httptest.NewServer(mux)
	t.Cleanup(idp.srv.Close)
	return idp
}

func (idp *fakeIdP) provider() *google.Provider {
	keys := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&idp.key.PublicKey}}
	verifier := oidc.NewVerifier(issuer, keys, &oidc.Config{ClientID: clientID})

	return google.NewWithVerifier(google.Config{
		ClientID:     clientID,
		ClientSecret: "secret",
		CallbackURL:  "http://localhost/auth/google/callback",
	}, oauth2.Endpoint{
		AuthURL:   idp.srv.URL + "/auth",
		TokenURL:  idp.srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}, verifier)
}

func TestLoginRoundTrip(t *testing.T) {
	idp := newFakeIdP(t)
	p := idp.provider()
	ctx := context.Background()

	req, err := p.BeginLogin(ctx, "nonce-xyz")
	require.NoError(t, err)
	require.NotEmpty(t, req.Secret, "pkce verifier should be returned")

	u, err := url.Parse(req.RedirectURL)
	require.NoError(t, err)
	require.Equal(t, "S256", u.Query().Get("code_challenge_method"))
	require.Equal(t, "nonce-xyz", u.Query().Get("nonce"))

	idp.nonce = "nonce-xyz"
	payload, err := p.CompleteLogin(ctx, provider.Callback{
		Query:  url.Values{"code": {"abc"}, "state": {"nonce-xyz"}},
		State:  "nonce-xyz",
		Secret: req.Secret,
	})
	require.NoError(t, err)
	require.Equal(t, req.Secret, idp.verifier)
	require.Equal(t, domain.ProviderGoogle, payload.Provider)
	require.Equal(t, "10769150350006150715113082367", payload.ProviderUID)
	require.Equal(t, "Jane Doe", payload.ProfileString("name"))
	require.Equal(t, "g-token", payload.Credential.Token)

	profileLink, portrait := p.ProfileLinks(payload.ProviderUID, payload.Profile)
	require.Empty(t, profileLink)
	require.Equal(t, "https://lh3.example/jane.jpg", portrait)
}

func TestCompleteLogin_NonceMismatch(t *testing.T) {
	idp := newFakeIdP(t)
	p := idp.provider()

	idp.nonce = "someone-elses-nonce"
	_, err := p.CompleteLogin(context.Background(), provider.Callback{
		Query:  url.Values{"code": {"abc"}, "state": {"nonce-xyz"}},
		State:  "nonce-xyz",
		Secret: "verifier",
	})
	require.ErrorIs(t, err, provider.ErrStateMismatch)
}

func TestCompleteLogin_MissingVerifier(t *testing.T) {
	p := newFakeIdP(t).provider()

	_, err := p.CompleteLogin(context.Background(), provider.Callback{
		Query: url.Values{"code": {"abc"}, "state": {"s"}},
		State: "s",
	})
	require.ErrorIs(t, err, provider.ErrMissingParam)
}

func TestIsNotPublisher(t *testing.T) {
	var p provider.Provider = newFakeIdP(t).provider()
	_, ok := p.(provider.Publisher)
	require.False(t, ok)
}
