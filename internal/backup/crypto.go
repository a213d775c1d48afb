package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize          = 32 // AES-256
	nonceSize        = 12 // GCM standard nonce size
	saltSize         = 16
	pbkdf2Iterations = 100000
)

// ErrBadPassphrase is returned when an encrypted backup cannot be opened
// with the given passphrase.
var ErrBadPassphrase = errors.New("wrong passphrase or corrupted backup")

// envelope is the on-disk form of an encrypted backup.
type envelope struct {
	Encrypted string `json:"gleamEncrypted"`
	Salt      string `json:"salt"`
	Data      string `json:"data"`
}

// IsEncrypted reports whether data looks like an encrypted backup envelope.
func IsEncrypted(data []byte) bool {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}
	return env.Encrypted != ""
}

func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keySize, sha256.New)
}

// Seal encrypts snapshot bytes with a passphrase-derived key
// (PBKDF2-SHA256 + AES-256-GCM) and wraps them in the envelope format.
func Seal(plaintext []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Seal prepends the nonce to the ciphertext
	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)

	return json.MarshalIndent(envelope{
		Encrypted: Version,
		Salt:      base64.StdEncoding.EncodeToString(salt),
		Data:      base64.StdEncoding.EncodeToString(ciphertext),
	}, "", "  ")
}

// Unseal decrypts an envelope produced by Seal.
func Unseal(data []byte, passphrase string) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Encrypted == "" {
		return nil, fmt.Errorf("%w: not an encrypted backup", ErrInvalidSnapshot)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: bad salt", ErrInvalidSnapshot)
	}
	raw, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil || len(raw) < nonceSize {
		return nil, fmt.Errorf("%w: bad payload", ErrInvalidSnapshot)
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return nil, ErrBadPassphrase
	}
	return plaintext, nil
}
