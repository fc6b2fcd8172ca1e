package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// SessionTokenSize is the number of random bytes behind a session cookie
// (256 bits, 43 chars base64url).
const SessionTokenSize = 32

// GenerateToken returns size random bytes encoded as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewSessionToken generates an opaque session token together with the
// fingerprint under which it is stored. Only the fingerprint is persisted.
func NewSessionToken() (token, fingerprint string, err error) {
	token, err = GenerateToken(SessionTokenSize)
	if err != nil {
		return "", "", err
	}
	return token, FingerprintToken(token), nil
}

// FingerprintToken returns the base64url SHA-256 digest of token (43 chars).
// Session stores are keyed by this value so a leaked store does not leak
// usable cookies.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// EqualFingerprint compares a raw token against a stored fingerprint in
// constant time.
func EqualFingerprint(token, fingerprint string) bool {
	return subtle.ConstantTimeCompare([]byte(FingerprintToken(token)), []byte(fingerprint)) == 1
}
