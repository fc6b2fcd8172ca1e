package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/provider"
	"github.com/aussiebroadwan/hellosocial/pkg/slogx"
)

// ShareService posts to the social feed of the provider an identity logged
// in with.
type ShareService struct {
	Providers *provider.Registry

	// BaseURL is appended to the suggested message.
	BaseURL string
}

// DefaultMessage is the text the share form is pre-filled with.
func (s *ShareService) DefaultMessage(ident *domain.Identity) string {
	if ident == nil {
		return ""
	}
	return fmt.Sprintf("My favorite color is %s! Thanks %s", ident.FavoriteColor, s.BaseURL)
}

// CanShare reports whether ident's own provider can publish.
func (s *ShareService) CanShare(ident *domain.Identity) bool {
	if ident == nil {
		return false
	}
	p, ok := s.Providers.Lookup(ident.Provider)
	if !ok {
		return false
	}
	_, ok = p.(provider.Publisher)
	return ok
}

// Share publishes message with ident's stored credential. The requested
// provider must be the one ident logged in with.
func (s *ShareService) Share(ctx context.Context, ident *domain.Identity, requested domain.ProviderName, message string) (*domain.PublishResult, error) {
	if ident == nil {
		return nil, ErrUnauthenticated
	}
	if requested != ident.Provider {
		return nil, ErrProviderMismatch
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	p, ok := s.Providers.Lookup(requested)
	if !ok {
		return nil, ErrUnknownProvider
	}
	pub, ok := p.(provider.Publisher)
	if !ok {
		return nil, ErrShareUnsupported
	}
	if ident.Credential.IsZero() {
		return nil, ErrCredentialUnavailable
	}

	l := slogx.FromContext(ctx).With("identity_id", ident.ID, "provider", requested)

	res, err := pub.Publish(ctx, ident.Credential, message)
	if err != nil {
		l.Warn("share failed", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	l.Info("shared", "post_id", res.PostID)
	return res, nil
}
