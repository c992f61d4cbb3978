// Package secure encrypts saved report payloads at rest. Realized gains
// expose a user's full trading history, so they are never stored in
// plaintext.
package secure

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrDecryptFailed indicates a stored payload could not be verified and
// decrypted, usually because the encryption key changed.
var ErrDecryptFailed = errors.New("payload could not be decrypted")

// Codec encrypts and decrypts payloads with a fernet key.
type Codec struct {
	keys []*fernet.Key
}

// NewCodec builds a codec from a base64-encoded fernet key. An empty key
// generates an ephemeral one, which keeps the server usable but makes
// previously stored payloads unreadable after a restart.
func NewCodec(encodedKey string) (*Codec, error) {
	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate encryption key: %w", err)
		}
		return &Codec{keys: []*fernet.Key{&key}}, nil
	}

	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	return &Codec{keys: keys}, nil
}

// Encrypt signs and encrypts plain, returning an opaque token.
func (c *Codec) Encrypt(plain []byte) (string, error) {
	token, err := fernet.EncryptAndSign(plain, c.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt payload: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a token produced by Encrypt. Tokens do
// not expire; retention is handled separately.
func (c *Codec) Decrypt(token string) ([]byte, error) {
	plain := fernet.VerifyAndDecrypt([]byte(token), 0, c.keys)
	if plain == nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
