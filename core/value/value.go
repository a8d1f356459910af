package value

import (
	"maps"
	"math"
	"slices"
	"unicode/utf8"
)

// MaxDepth is the maximum nesting level of lists and maps.
const MaxDepth = 32

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
	KindMap
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is an immutable tagged variant. The zero Value is null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	list []Value
	m    map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a float value. Non-finite floats can be constructed but fail Validate.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// List returns a list value holding a copy of items.
func List(items ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// Map returns a map value holding a copy of m.
func Map(m map[string]Value) Value {
	c := maps.Clone(m)
	if c == nil {
		c = map[string]Value{}
	}
	return Value{kind: KindMap, m: c}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsString returns the string and true if v is a string.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsInt returns the integer and true if v is an integer.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat returns the float and true if v is a float.
func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsBool returns the boolean and true if v is a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsList returns a copy of the list items and true if v is a list.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// AsMap returns a copy of the map and true if v is a map.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return maps.Clone(v.m), true
}

// Len returns the number of items in a list or map, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Validate checks that v can be encoded: known kinds, finite floats, valid
// UTF-8 in strings and map keys, and nesting within MaxDepth.
func (v Value) Validate() error {
	return v.validate(0)
}

func (v Value) validate(depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}

	switch v.kind {
	case KindNull, KindInt, KindBool:
		return nil
	case KindString:
		if !utf8.ValidString(v.s) {
			return ErrInvalidUTF8
		}
		return nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return ErrNotFinite
		}
		return nil
	case KindList:
		for _, item := range v.list {
			if err := item.validate(depth + 1); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		for k, item := range v.m {
			if !utf8.ValidString(k) {
				return ErrInvalidUTF8
			}
			if err := item.validate(depth + 1); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrInvalidKind
	}
}

// Equal reports whether a and b hold the same variant with structurally equal contents.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.s == b.s
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindBool:
		return a.b == b.b
	case KindList:
		return slices.EqualFunc(a.list, b.list, Equal)
	case KindMap:
		return maps.EqualFunc(a.m, b.m, Equal)
	default:
		return false
	}
}

// EqualMaps reports whether two session mappings are equal.
func EqualMaps(a, b map[string]Value) bool {
	return maps.EqualFunc(a, b, Equal)
}
