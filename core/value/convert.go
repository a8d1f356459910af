package value

import (
	"fmt"
	"math"
)

// From converts a native Go value into a Value.
//
// Supported inputs: nil, Value, string, bool, all integer kinds, float32,
// float64, []Value, []any, []string, []int, []int64, map[string]Value,
// map[string]any and map[string]string. Anything else fails with
// ErrUnsupportedType.
func From(v any) (Value, error) {
	return from(v, 0)
}

// MustFrom is like From but panics on error. Intended for literals in tests and setup code.
func MustFrom(v any) Value {
	out, err := From(v)
	if err != nil {
		panic(err)
	}
	return out
}

func from(v any, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, ErrTooDeep
	}

	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		if err := x.validate(depth); err != nil {
			return Value{}, err
		}
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x)
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case []Value:
		return fromSlice(x, depth, func(item Value) any { return item })
	case []any:
		return fromSlice(x, depth, func(item any) any { return item })
	case []string:
		return fromSlice(x, depth, func(item string) any { return item })
	case []int:
		return fromSlice(x, depth, func(item int) any { return item })
	case []int64:
		return fromSlice(x, depth, func(item int64) any { return item })
	case map[string]Value:
		return fromMap(x, depth, func(item Value) any { return item })
	case map[string]any:
		return fromMap(x, depth, func(item any) any { return item })
	case map[string]string:
		return fromMap(x, depth, func(item string) any { return item })
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, ErrIntOverflow
	}
	return Int(int64(u)), nil
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, ErrNotFinite
	}
	return Float(f), nil
}

func fromSlice[T any](items []T, depth int, box func(T) any) (Value, error) {
	list := make([]Value, 0, len(items))
	for _, item := range items {
		v, err := from(box(item), depth+1)
		if err != nil {
			return Value{}, err
		}
		list = append(list, v)
	}
	return Value{kind: KindList, list: list}, nil
}

func fromMap[T any](items map[string]T, depth int, box func(T) any) (Value, error) {
	m := make(map[string]Value, len(items))
	for k, item := range items {
		v, err := from(box(item), depth+1)
		if err != nil {
			return Value{}, err
		}
		m[k] = v
	}
	return Value{kind: KindMap, m: m}, nil
}

// Interface converts v back into plain Go values: nil, string, int64, float64,
// bool, []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, item := range v.m {
			out[k] = item.Interface()
		}
		return out
	default:
		return nil
	}
}
