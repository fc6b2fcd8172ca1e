package domain

import (
	"strings"
	"time"
)

// DefaultFavoriteColor is assigned to every new identity.
const DefaultFavoriteColor = "Blue"

// Profile holds the display attributes refreshed on each login. Empty means
// unset.
type Profile struct {
	Name         string
	Location     string
	Email        string
	ProfileLink  string
	PortraitLink string
}

// Identity is a visitor known through exactly one provider account.
type Identity struct {
	ID                 string // "<provider_uid>@<provider>"
	Provider           ProviderName
	Profile            Profile
	Credential         Credential
	RawProviderPayload string
	IsAdministrator    bool
	FavoriteColor      string
	CreatedAt          time.Time
	EditedAt           time.Time
}

// IdentityID composes the stable identity key for a provider account.
func IdentityID(provider ProviderName, uid string) string {
	return uid + "@" + string(provider)
}

// SplitIdentityID is the inverse of IdentityID. The provider is taken after
// the last '@' so uids containing '@' survive.
func SplitIdentityID(id string) (uid string, provider ProviderName, ok bool) {
	i := strings.LastIndexByte(id, '@')
	if i <= 0 || i == len(id)-1 {
		return "", "", false
	}
	return id[:i], ProviderName(id[i+1:]), true
}

// CanEdit reports whether i may mutate the identity targetID.
func (i *Identity) CanEdit(targetID string) bool {
	return i != nil && (i.ID == targetID || i.IsAdministrator)
}

// DisplayName falls back to the id when the provider gave no name.
func (i *Identity) DisplayName() string {
	if i.Profile.Name != "" {
		return i.Profile.Name
	}
	return i.ID
}
