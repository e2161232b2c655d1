package nfe

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

var errSecretCorrupt = errors.New("segredo armazenado corrompido")

// sealSecret encrypts a secret with nacl/secretbox and returns
// base64(nonce || ciphertext).
func sealSecret(key *[32]byte, plaintext string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("gerar nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// openSecret reverses sealSecret.
func openSecret(key *[32]byte, encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errSecretCorrupt
	}
	if len(raw) < 24 {
		return "", errSecretCorrupt
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plaintext, ok := secretbox.Open(nil, raw[24:], &nonce, key)
	if !ok {
		return "", errSecretCorrupt
	}
	return string(plaintext), nil
}
