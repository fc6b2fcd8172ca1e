package http

import (
	"context"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
)

type identityKey struct{}

func withIdentity(ctx context.Context, ident *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromContext returns the identity resolved for this request, or nil
// for anonymous visitors.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	ident, _ := ctx.Value(identityKey{}).(*domain.Identity)
	return ident
}
