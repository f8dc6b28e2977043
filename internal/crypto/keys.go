// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// KeyDerivation selects how the configured secret becomes an AES key.
type KeyDerivation string

const (
	// KeyDerivationLegacy right-pads the secret with NUL bytes or truncates
	// it to KeySize. This is what the backend does, so it is the only mode
	// that stays wire-compatible with it.
	KeyDerivationLegacy KeyDerivation = "legacy"

	// KeyDerivationHKDF expands the secret with HKDF-SHA256. Ciphertext
	// produced in this mode cannot be read by a backend using the legacy key.
	KeyDerivationHKDF KeyDerivation = "hkdf"
)

const hkdfInfo = "campus-archive field encryption v1"

// DeriveKey normalises secret to exactly KeySize bytes: shorter secrets are
// right-padded with NUL bytes, longer ones truncated.
func DeriveKey(secret string) []byte {
	key := make([]byte, KeySize)
	copy(key, secret)
	return key
}

// deriveKey returns the key for secret under the given derivation mode.
// An empty mode means legacy.
func deriveKey(secret string, derivation KeyDerivation) ([]byte, error) {
	switch derivation {
	case "", KeyDerivationLegacy:
		return DeriveKey(secret), nil
	case KeyDerivationHKDF:
		key := make([]byte, KeySize)
		r := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, fmt.Errorf("hkdf expand: %w", err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyDerivation, derivation)
	}
}
