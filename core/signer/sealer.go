package signer

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Sealer encrypts payloads with XChaCha20-Poly1305.
// It is immutable after construction and safe for concurrent use.
type Sealer struct {
	aeads []cipher.AEAD
}

// NewSealer creates a Sealer. The first secret seals, all secrets open.
func NewSealer(secrets []string) (*Sealer, error) {
	secrets, err := validateSecrets(secrets)
	if err != nil {
		return nil, err
	}

	keys, err := deriveKeys(secrets, purposeEncrypt, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}

	aeads := make([]cipher.AEAD, 0, len(keys))
	for _, key := range keys {
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("init cipher: %w", err)
		}
		aeads = append(aeads, aead)
	}

	return &Sealer{aeads: aeads}, nil
}

// Seal encrypts plaintext. The random nonce is prepended to the ciphertext,
// so sealing the same plaintext twice yields different output.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	aead := s.aeads[0]

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal with any configured secret.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		return nil, errors.Join(ErrDecryptionFailed, errShortCiphertext)
	}

	nonce, ciphertext := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	for _, aead := range s.aeads {
		if plaintext, err := aead.Open(nil, nonce, ciphertext, nil); err == nil {
			return plaintext, nil
		}
	}

	return nil, ErrDecryptionFailed
}

var errShortCiphertext = errors.New("ciphertext too short")
