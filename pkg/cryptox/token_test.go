package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name string
		size int
		len  int
	}{
		{"session token", SessionTokenSize, 43},
		{"short token", 16, 22},
		{"odd size", 24, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.len)

			token2, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestNewSessionToken(t *testing.T) {
	token, fp, err := NewSessionToken()
	require.NoError(t, err)
	require.NotEqual(t, token, fp)
	require.Equal(t, FingerprintToken(token), fp)
	require.True(t, EqualFingerprint(token, fp))
	require.False(t, EqualFingerprint(token+"x", fp))
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("session-1")
	fp1b := FingerprintToken("session-1")
	fp2 := FingerprintToken("session-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}
