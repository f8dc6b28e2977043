package crypto

import "errors"

var (
	// ErrEncryption is returned when a value could not be encrypted. The
	// enclosing request must not be sent.
	ErrEncryption = errors.New("field encryption failed")

	// ErrDecryption is returned for tokens that are not valid ciphertext
	// under the configured key.
	ErrDecryption = errors.New("field decryption failed")

	// ErrUnknownKeyDerivation is returned for a key derivation mode other
	// than "legacy" or "hkdf".
	ErrUnknownKeyDerivation = errors.New("unknown key derivation")
)
