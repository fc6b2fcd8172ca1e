package service

import "github.com/aussiebroadwan/hellosocial/internal/social/domain"

// Authorize lets acting mutate targetID when it owns it or is an
// administrator. It performs no I/O.
func Authorize(acting *domain.Identity, targetID string) (*domain.Identity, error) {
	if acting == nil {
		return nil, ErrUnauthenticated
	}
	if !acting.CanEdit(targetID) {
		return nil, ErrForbidden
	}
	return acting, nil
}
