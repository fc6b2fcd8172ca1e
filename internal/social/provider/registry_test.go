package provider_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{ name domain.ProviderName }

func (s stubProvider) Name() domain.ProviderName { return s.name }
func (s stubProvider) BeginLogin(context.Context, string) (provider.LoginRequest, error) {
	return provider.LoginRequest{}, nil
}
func (s stubProvider) CompleteLogin(context.Context, provider.Callback) (*domain.LoginPayload, error) {
	return nil, nil
}
func (s stubProvider) ProfileLinks(uid string, _ map[string]any) (string, string) {
	return "profile/" + uid, "portrait/" + uid
}

func TestRegistry(t *testing.T) {
	reg := provider.NewRegistry(stubProvider{domain.ProviderFacebook}, stubProvider{domain.ProviderTwitter})

	require.Equal(t, []domain.ProviderName{domain.ProviderTwitter, domain.ProviderFacebook}, reg.Names())

	_, ok := reg.Lookup(domain.ProviderGoogle)
	require.False(t, ok)

	profile, portrait := reg.ProfileLinks(domain.ProviderTwitter, "1", nil)
	require.Equal(t, "profile/1", profile)
	require.Equal(t, "portrait/1", portrait)

	profile, portrait = reg.ProfileLinks("myspace", "1", nil)
	require.Empty(t, profile)
	require.Empty(t, portrait)

	var nilReg *provider.Registry
	_, ok = nilReg.Lookup(domain.ProviderTwitter)
	require.False(t, ok)
}

func TestCheckState(t *testing.T) {
	require.NoError(t, provider.CheckState(provider.Callback{Query: url.Values{"state": {"a"}}, State: "a"}))
	require.ErrorIs(t, provider.CheckState(provider.Callback{Query: url.Values{"state": {"a"}}, State: "b"}), provider.ErrStateMismatch)
	require.ErrorIs(t, provider.CheckState(provider.Callback{Query: url.Values{}, State: ""}), provider.ErrStateMismatch)
	require.ErrorIs(t, provider.CheckState(provider.Callback{Query: url.Values{"error": {"access_denied"}}, State: "a"}), provider.ErrDenied)
}
