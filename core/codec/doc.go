// Package codec serializes session mappings into compact bytes and back.
//
// The encoded form starts with a one-byte format marker followed by the body:
//
//	'j' + JSON object
//	's' + S2-compressed JSON object
//
// Compression is opt-in and only used when it actually shrinks the body.
// Encoding is deterministic: map keys are sorted, so equal mappings always
// produce identical bytes.
//
//	c := codec.New(codec.WithCompression(256))
//	data, err := c.Encode(map[string]value.Value{"user_id": value.Int(42)})
//	m, err := c.Decode(data)
//
// Encode fails with *EncodeError for values that cannot be represented
// (non-finite floats, nesting deeper than value.MaxDepth). Decode fails with
// *DecodeError for anything malformed. Both wrap ErrEncode / ErrDecode.
package codec
