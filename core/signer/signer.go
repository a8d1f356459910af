package signer

import (
	"crypto/hmac"
	"crypto/sha256"
)

// SignatureSize is the length of a signature in bytes.
const SignatureSize = sha256.Size

// Signer produces and checks HMAC-SHA256 signatures.
// It is immutable after construction and safe for concurrent use.
type Signer struct {
	keys [][]byte
}

// New creates a Signer. The first secret signs, all secrets verify.
func New(secrets []string) (*Signer, error) {
	secrets, err := validateSecrets(secrets)
	if err != nil {
		return nil, err
	}

	keys, err := deriveKeys(secrets, purposeSign, sha256.Size)
	if err != nil {
		return nil, err
	}

	return &Signer{keys: keys}, nil
}

// Sign returns the signature of payload under the current key.
func (s *Signer) Sign(payload []byte) []byte {
	return mac(s.keys[0], payload)
}

// Verify reports whether signature is a valid signature of payload under any configured key.
func (s *Signer) Verify(payload, signature []byte) bool {
	if len(signature) != SignatureSize {
		return false
	}

	valid := false
	// Check every key so the time taken does not reveal which one matched.
	for _, key := range s.keys {
		if hmac.Equal(mac(key, payload), signature) {
			valid = true
		}
	}
	return valid
}

func mac(key, payload []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(payload)
	return h.Sum(nil)
}
