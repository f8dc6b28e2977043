// Package crypto implements the reversible field-level encryption applied to
// sensitive request fields before they leave the client.
//
// Values are encrypted with AES-256 in CBC mode with PKCS7 padding under a
// key derived from a pre-shared secret. Every call uses a fresh random IV;
// the wire form is base64(IV || ciphertext), which is what the campus archive
// backend decrypts.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/field_cipher_mock.go -package=mock

// DefaultSensitiveFields is the Sensitive Field Set used when configuration
// does not name one.
var DefaultSensitiveFields = []string{"password", "student_id", "phone"}

// FieldCipher encrypts and decrypts individual string values and the named
// top-level fields of JSON objects.
type FieldCipher interface {
	// Encrypt returns base64(IV || AES-CBC(PKCS7(plaintext))) under a fresh
	// random IV. Two calls with the same plaintext never return the same
	// token. Failures wrap [ErrEncryption].
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. Malformed tokens (not base64, truncated,
	// bad padding, invalid UTF-8) fail with [ErrDecryption]; callers should
	// treat that as "value was not encrypted".
	Decrypt(token string) (string, error)

	// EncryptFields returns a shallow copy of obj in which every field named
	// in fieldNames that holds a non-empty string is replaced by its
	// encrypted form. obj is never mutated. Any failure aborts the whole
	// call so that no field meant to be encrypted is sent in clear.
	EncryptFields(obj map[string]any, fieldNames []string) (map[string]any, error)

	// DecryptFields mirrors EncryptFields. A field that fails to decrypt
	// keeps its original value and the remaining fields are still
	// processed; no error is returned.
	DecryptFields(obj map[string]any, fieldNames []string) map[string]any
}
