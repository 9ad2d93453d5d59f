// Package backup seals ledger exports with a symmetric fernet key.
package backup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"
)

// Sealer encrypts and authenticates exported ledgers.
// A Sealer without a key passes data through unchanged.
type Sealer struct {
	key *fernet.Key
}

// NewSealer creates a Sealer from a base64 fernet key. An empty key disables sealing.
func NewSealer(encodedKey string) (*Sealer, error) {
	encodedKey = strings.TrimSpace(encodedKey)
	if encodedKey == "" {
		return &Sealer{}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid backup key: %w", err)
	}
	return &Sealer{key: key}, nil
}

// Enabled reports whether a key is configured.
func (s *Sealer) Enabled() bool {
	return s != nil && s.key != nil
}

// Seal returns a fernet token of data, or data itself when no key is configured.
func (s *Sealer) Seal(data []byte) ([]byte, error) {
	if !s.Enabled() {
		return data, nil
	}

	token, err := fernet.EncryptAndSign(data, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to seal backup: %w", err)
	}
	return token, nil
}

// Open verifies and decrypts a token produced by Seal. Tokens never expire.
func (s *Sealer) Open(token []byte) ([]byte, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("no backup key configured")
	}

	data := fernet.VerifyAndDecrypt(bytes.TrimSpace(token), 0, []*fernet.Key{s.key})
	if data == nil {
		return nil, fmt.Errorf("backup token is invalid or was sealed with another key")
	}
	return data, nil
}

// GenerateKey returns a new random key in its base64 form.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return key.Encode(), nil
}
