package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the smallest HMAC secret we accept for state tokens.
const MinSecretSize = 32

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrWeakSecret  = errors.New("jwtx: secret too short")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// StateSigner signs and verifies login state tokens with HS256. The secret
// never leaves the process, so a symmetric algorithm is enough.
type StateSigner struct {
	secret []byte
	issuer string
}

// NewStateSigner creates a signer for the given secret and issuer.
func NewStateSigner(secret []byte, issuer string) (*StateSigner, error) {
	if len(secret) < MinSecretSize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrWeakSecret, MinSecretSize, len(secret))
	}

	return &StateSigner{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
	}, nil
}

// Sign serialises claims into a compact JWS.
func (s *StateSigner) Sign(c StateClaims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(s.secret)
}

// Verify parses raw, checks the signature, issuer and time window and returns
// the claims.
func (s *StateSigner) Verify(raw string) (StateClaims, error) {
	var claims StateClaims

	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrAlgMismatch
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return StateClaims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return StateClaims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return StateClaims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return StateClaims{}, ErrAlgMismatch
		default:
			return StateClaims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	if err := claims.ValidateIssuer(s.issuer); err != nil {
		return StateClaims{}, err
	}

	return claims, nil
}
