package signer

import (
	"crypto/sha256"
	"fmt"
	"io"
	"slices"

	"golang.org/x/crypto/hkdf"
)

// MinSecretLength is the minimum length of every secret in bytes.
const MinSecretLength = 32

const (
	purposeSign    = "cookiestore/sign"
	purposeEncrypt = "cookiestore/encrypt"
)

// validateSecrets drops empty entries and checks the remaining lengths.
func validateSecrets(secrets []string) ([]string, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i, s := range secrets {
		if len(s) < MinSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d bytes, need at least %d",
				ErrSecretTooShort, i, len(s), MinSecretLength)
		}
	}

	return secrets, nil
}

// deriveKeys expands every secret into a size-byte key bound to purpose.
func deriveKeys(secrets []string, purpose string, size int) ([][]byte, error) {
	keys := make([][]byte, 0, len(secrets))
	for _, s := range secrets {
		key := make([]byte, size)
		r := hkdf.New(sha256.New, []byte(s), nil, []byte(purpose))
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, fmt.Errorf("derive %s key: %w", purpose, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
