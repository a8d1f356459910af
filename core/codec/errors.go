package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrEncode is wrapped by every encoding failure.
	ErrEncode = errors.New("session encode failed")
	// ErrDecode is wrapped by every decoding failure.
	ErrDecode = errors.New("session decode failed")

	errEmptyInput    = errors.New("empty input")
	errUnknownFormat = errors.New("unknown format marker")
	errNotObject     = errors.New("top-level value is not an object")
	errTrailingData  = errors.New("trailing data after object")
	errTooLarge      = errors.New("decoded payload exceeds size limit")
)

// EncodeError describes why a session mapping could not be encoded.
type EncodeError struct {
	Key string // top-level session key, empty when not key-specific
	Err error
}

func (e *EncodeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: key %q: %v", ErrEncode, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrEncode, e.Err)
}

func (e *EncodeError) Unwrap() []error {
	return []error{ErrEncode, e.Err}
}

// DecodeError describes why bytes could not be decoded into a session mapping.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
