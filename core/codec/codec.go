package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/s2"

	"github.com/dmitrymomot/cookiestore/core/value"
)

const (
	formatJSON byte = 'j'
	formatS2   byte = 's'

	// MaxDecodedSize caps the decompressed body so a forged payload cannot
	// expand into an arbitrarily large allocation.
	MaxDecodedSize = 64 << 10
)

// Codec encodes and decodes session mappings. It is immutable and safe for concurrent use.
type Codec struct {
	compressMin int
}

// Option configures a Codec.
type Option func(*Codec)

// WithCompression enables S2 compression for JSON bodies of at least minSize bytes.
// A non-positive minSize compresses every body.
func WithCompression(minSize int) Option {
	return func(c *Codec) {
		if minSize < 1 {
			minSize = 1
		}
		c.compressMin = minSize
	}
}

// New creates a Codec. Without options it produces plain JSON bodies.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode serializes m. A nil map encodes the same as an empty one.
func (c *Codec) Encode(m map[string]value.Value) ([]byte, error) {
	for k, v := range m {
		if !utf8.ValidString(k) {
			return nil, &EncodeError{Key: k, Err: value.ErrInvalidUTF8}
		}
		if err := v.Validate(); err != nil {
			return nil, &EncodeError{Key: k, Err: err}
		}
	}

	if m == nil {
		m = map[string]value.Value{}
	}

	body, err := json.Marshal(m)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	if c.compressMin > 0 && len(body) >= c.compressMin {
		compressed := s2.Encode(nil, body)
		if len(compressed) < len(body) {
			return append([]byte{formatS2}, compressed...), nil
		}
	}

	return append([]byte{formatJSON}, body...), nil
}

// Decode parses data produced by Encode. Decoding does not depend on the
// Codec's own compression setting.
func (c *Codec) Decode(data []byte) (map[string]value.Value, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Err: errEmptyInput}
	}

	var body []byte
	switch data[0] {
	case formatJSON:
		body = data[1:]
	case formatS2:
		n, err := s2.DecodedLen(data[1:])
		if err != nil {
			return nil, &DecodeError{Err: err}
		}
		if n > MaxDecodedSize {
			return nil, &DecodeError{Err: errTooLarge}
		}
		body, err = s2.Decode(nil, data[1:])
		if err != nil {
			return nil, &DecodeError{Err: err}
		}
	default:
		return nil, &DecodeError{Err: errUnknownFormat}
	}

	dec := json.NewDecoder(bytes.NewReader(body))

	var m map[string]value.Value
	if err := dec.Decode(&m); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if m == nil {
		return nil, &DecodeError{Err: errNotObject}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Err: errTrailingData}
	}

	return m, nil
}
