package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/hkdf"
)

// MasterKeyEnv is read when no master key file has been configured.
const MasterKeyEnv = "HELLOSOCIAL_MASTER_KEY"

// Derivation labels. Each purpose gets its own subkey.
const (
	purposeCredential = "hellosocial/credential/v1"
	purposeState      = "hellosocial/state/v1"
)

var (
	ErrCiphertextTooShort = errors.New("cryptox: ciphertext too short")
	ErrEmptyMasterKey     = errors.New("cryptox: empty master key")
)

// LoadMasterKey reads raw key material from, in order:
// 1. the file at path, when path is set
// 2. the HELLOSOCIAL_MASTER_KEY environment variable
// 3. a random ephemeral key (development only, lost on restart)
//
// ephemeral reports whether the third case was taken.
func LoadMasterKey(path string) (key []byte, ephemeral bool, err error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read master key file: %w", err)
		}
		return data, false, nil
	}

	if env := os.Getenv(MasterKeyEnv); env != "" {
		return []byte(env), false, nil
	}

	material := make([]byte, 32)
	if _, err := rand.Read(material); err != nil {
		return nil, false, fmt.Errorf("failed to generate ephemeral master key: %w", err)
	}
	return material, true, nil
}

// Sealer encrypts provider credentials at rest and derives the login state
// secret. Every subkey is expanded from a single master key with HKDF.
type Sealer struct {
	aead        cipher.AEAD
	stateSecret []byte
}

// NewSealer derives the subkeys for master.
func NewSealer(master []byte) (*Sealer, error) {
	if len(master) == 0 {
		return nil, ErrEmptyMasterKey
	}

	credKey, err := deriveKey(master, purposeCredential)
	if err != nil {
		return nil, err
	}
	stateKey, err := deriveKey(master, purposeState)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(credKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: gcm, stateSecret: stateKey}, nil
}

// deriveKey expands master into a 32-byte subkey for purpose.
func deriveKey(master []byte, purpose string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(purpose)), key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// StateSecret returns the HMAC secret used for login state tokens when none
// is configured explicitly.
func (s *Sealer) StateSecret() []byte {
	out := make([]byte, len(s.stateSecret))
	copy(out, s.stateSecret)
	return out
}

// Seal encrypts plaintext with AES-256-GCM.
// Output layout: [12-byte nonce][ciphertext][16-byte tag].
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// SealString is Seal for text values. The empty string stays empty so unset
// credential halves don't produce ciphertext.
func (s *Sealer) SealString(v string) ([]byte, error) {
	if v == "" {
		return nil, nil
	}
	return s.Seal([]byte(v))
}

// OpenString reverses SealString.
func (s *Sealer) OpenString(sealed []byte) (string, error) {
	if len(sealed) == 0 {
		return "", nil
	}
	plaintext, err := s.Open(sealed)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
