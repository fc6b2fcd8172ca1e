package service

import "errors"

var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrProviderMismatch = errors.New("provider mismatch")
	ErrPersistence      = errors.New("persistence failure")
	ErrProviderCallback = errors.New("provider callback failed")

	// ErrIdentityMissing means a live session points at an identity that no
	// longer exists. The session must be torn down.
	ErrIdentityMissing  = errors.New("session identity missing")
	ErrIdentityNotFound = errors.New("identity not found")

	ErrUnknownProvider  = errors.New("unknown provider")
	ErrShareUnsupported = errors.New("provider does not support sharing")
	ErrPublishFailed    = errors.New("publish failed")

	// ErrCredentialUnavailable means the stored provider credential cannot
	// be used, typically after a master key change. Signing in again
	// replaces it.
	ErrCredentialUnavailable = errors.New("provider credential unavailable")

	ErrEmptyMessage     = errors.New("message is empty")
	ErrInvalidFavorite  = errors.New("invalid favorite")
)
