package signer

import "errors"

var (
	// ErrNoSecret indicates no secret was provided.
	ErrNoSecret = errors.New("no secret provided")

	// ErrSecretTooShort indicates a secret shorter than MinSecretLength.
	ErrSecretTooShort = errors.New("secret is too short")

	// ErrDecryptionFailed indicates the sealed payload could not be opened
	// with any configured secret.
	ErrDecryptionFailed = errors.New("failed to decrypt payload")
)
