// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"maps"
	"sync"
	"unicode/utf8"

	"github.com/MKhiriev/campus-archive/internal/logger"
)

// AESFieldCipher is the AES-256-CBC implementation of FieldCipher.
//
// The key is derived from the secret on first use and cached for the
// lifetime of the value; AESFieldCipher is safe for concurrent use.
type AESFieldCipher struct {
	secret     string
	derivation KeyDerivation
	random     io.Reader
	logger     *logger.Logger

	once   sync.Once
	key    []byte
	keyErr error
}

// NewFieldCipher returns a FieldCipher for secret. An empty derivation is
// treated as KeyDerivationLegacy. Key derivation errors surface on the
// first Encrypt or Decrypt call.
func NewFieldCipher(secret string, derivation KeyDerivation, log *logger.Logger) *AESFieldCipher {
	if log == nil {
		log = logger.Nop()
	}
	return &AESFieldCipher{
		secret:     secret,
		derivation: derivation,
		random:     rand.Reader,
		logger:     log,
	}
}

func (c *AESFieldCipher) block() (cipher.Block, error) {
	c.once.Do(func() {
		c.key, c.keyErr = deriveKey(c.secret, c.derivation)
	})
	if c.keyErr != nil {
		return nil, c.keyErr
	}
	return aes.NewCipher(c.key)
}

// Encrypt implements FieldCipher.
func (c *AESFieldCipher) Encrypt(plaintext string) (string, error) {
	block, err := c.block()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryption, err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	blob := make([]byte, aes.BlockSize+len(padded))
	iv := blob[:aes.BlockSize]
	if _, err = io.ReadFull(c.random, iv); err != nil {
		return "", fmt.Errorf("%w: generate iv: %w", ErrEncryption, err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(blob[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements FieldCipher.
func (c *AESFieldCipher) Decrypt(token string) (string, error) {
	block, err := c.block()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	blob, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %w", ErrDecryption, err)
	}
	if len(blob) < 2*aes.BlockSize || len(blob)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext has invalid length %d", ErrDecryption, len(blob))
	}

	iv, ct := blob[:aes.BlockSize], blob[aes.BlockSize:]
	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: plaintext is not valid utf-8", ErrDecryption)
	}

	return string(plain), nil
}

// EncryptFields implements FieldCipher. Empty strings are left as they are.
func (c *AESFieldCipher) EncryptFields(obj map[string]any, fieldNames []string) (map[string]any, error) {
	out := maps.Clone(obj)
	for _, name := range fieldNames {
		value, ok := out[name].(string)
		if !ok || value == "" {
			continue
		}

		encrypted, err := c.Encrypt(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = encrypted
	}

	return out, nil
}

// DecryptFields implements FieldCipher.
func (c *AESFieldCipher) DecryptFields(obj map[string]any, fieldNames []string) map[string]any {
	out := maps.Clone(obj)
	for _, name := range fieldNames {
		value, ok := out[name].(string)
		if !ok || value == "" {
			continue
		}

		decrypted, err := c.Decrypt(value)
		if err != nil {
			c.logger.Warn().Err(err).Str("field", name).Msg("keeping field value as received")
			continue
		}
		out[name] = decrypted
	}

	return out
}
