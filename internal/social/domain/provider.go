package domain

// ProviderName identifies a federated identity provider. The set is closed.
type ProviderName string

const (
	ProviderTwitter  ProviderName = "twitter"
	ProviderFacebook ProviderName = "facebook"
	ProviderGoogle   ProviderName = "google"
)

// Providers lists every known provider in display order.
var Providers = []ProviderName{ProviderTwitter, ProviderFacebook, ProviderGoogle}

// Valid reports whether p is one of the known providers.
func (p ProviderName) Valid() bool {
	switch p {
	case ProviderTwitter, ProviderFacebook, ProviderGoogle:
		return true
	}
	return false
}

func (p ProviderName) String() string { return string(p) }

// Title is the human name shown on pages.
func (p ProviderName) Title() string {
	switch p {
	case ProviderTwitter:
		return "Twitter"
	case ProviderFacebook:
		return "Facebook"
	case ProviderGoogle:
		return "Google"
	}
	return string(p)
}

// Credential is the provider-issued token pair. Secret is empty for OAuth2
// providers.
type Credential struct {
	Token  string
	Secret string
}

// IsZero reports a credential that cannot be used to publish, either never
// stored or unreadable under the current master key.
func (c Credential) IsZero() bool { return c.Token == "" }

// LoginPayload is what a provider hands back after a successful callback.
type LoginPayload struct {
	Provider    ProviderName
	ProviderUID string
	Credential  Credential

	// Profile is the provider's user info with at least the keys name,
	// location, email, nickname and image when the provider knows them.
	Profile map[string]any
}

// ProfileString returns Profile[key] if it is a non-empty string.
func (p LoginPayload) ProfileString(key string) string {
	if p.Profile == nil {
		return ""
	}
	s, _ := p.Profile[key].(string)
	return s
}

// PublishResult describes a post made on a social feed.
type PublishResult struct {
	PostID string
	URL    string
}
