// Package value provides the tagged-variant value type stored in cookie sessions.
//
// A Value is one of: null, string, integer, float, boolean, list of values or
// map of string keys to values. The closed set of kinds keeps session encoding
// total: every Value that passes Validate can be encoded and decoded back to an
// equal Value.
//
// # Constructing Values
//
//	v := value.Map(map[string]value.Value{
//		"user_id": value.Int(42),
//		"roles":   value.List(value.String("admin"), value.String("editor")),
//	})
//
// Native Go values can be converted with From, which rejects unsupported types
// and structures nested deeper than MaxDepth (including self-referencing maps):
//
//	v, err := value.From(map[string]any{"theme": "dark", "count": 3})
//	if errors.Is(err, value.ErrUnsupportedType) {
//		// the input contained a type that cannot be stored in a session
//	}
//
// # Reading Values
//
//	if id, ok := v.AsInt(); ok {
//		fmt.Println("user", id)
//	}
//
// Constructors copy the slices and maps they are given, so a Value is never
// aliased with caller-owned containers and cannot become cyclic.
//
// # JSON
//
// Value implements json.Marshaler and json.Unmarshaler. Integers and floats are
// kept apart on the wire: floats are always written with a fraction or exponent
// (1.0, 2.5e+21), integers never are.
package value
