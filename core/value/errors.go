package value

import "errors"

var (
	// ErrUnsupportedType is returned when a Go value has no Value representation.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrTooDeep is returned when nesting exceeds MaxDepth. Self-referencing
	// maps and slices always end up here.
	ErrTooDeep = errors.New("value nesting too deep or cyclic")

	// ErrNotFinite is returned for NaN and infinite floats.
	ErrNotFinite = errors.New("float value is not finite")

	// ErrIntOverflow is returned for unsigned integers that do not fit int64.
	ErrIntOverflow = errors.New("integer overflows int64")

	// ErrInvalidUTF8 is returned for strings and map keys that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("string is not valid UTF-8")

	// ErrInvalidKind is returned for values with an unknown kind tag.
	ErrInvalidKind = errors.New("invalid value kind")
)
