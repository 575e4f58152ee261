// Package crypto seals data at rest with AES-256-GCM.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/illmade-knight/hot-prospects/internal/fsutil"
)

// KeySize is the length in bytes of a sealing key (AES-256).
const KeySize = 32

// Sealer encrypts and authenticates blobs with a fixed symmetric key.
type Sealer struct {
	gcm cipher.AEAD
}

// GenerateKey returns a new random key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("could not generate key: %w", err)
	}
	return key, nil
}

// NewSealer creates a Sealer for a KeySize-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("could not create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("could not create GCM: %w", err)
	}
	return &Sealer{gcm: gcm}, nil
}

// LoadSealer reads a hex-encoded key from path. If the file does not exist a
// new key is generated and written there atomically with mode 0600, creating
// the parent directory (0700) if needed.
func LoadSealer(path string) (*Sealer, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		key, genErr := GenerateKey()
		if genErr != nil {
			return nil, genErr
		}
		if err := fsutil.WriteFileAtomic(path, []byte(hex.EncodeToString(key)+"\n"), 0o700, 0o600); err != nil {
			return nil, fmt.Errorf("could not write key file: %w", err)
		}
		return NewSealer(key)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read key file: %w", err)
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("key file is not hex encoded: %w", err)
	}
	return NewSealer(key)
}

// Seal encrypts data. The nonce is prepended to the ciphertext and aad is
// authenticated but not encrypted.
func (s *Sealer) Seal(data, aad []byte) ([]byte, error) {
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("could not create nonce: %w", err)
	}
	return s.gcm.Seal(nonce, nonce, data, aad), nil
}

// Open reverses Seal. It fails if the data or aad were tampered with.
func (s *Sealer) Open(sealed, aad []byte) ([]byte, error) {
	nonceSize := s.gcm.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("could not decrypt or verify data (tampering detected): %w", err)
	}
	return plaintext, nil
}
