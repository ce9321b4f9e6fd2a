package nbt

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var ErrUnsupportedValue = errors.New("nbt: unsupported value")

// FromNative converts a decoded JSON, TOML or YAML value into a tag.
// Integers become Int when they fit in 32 bits and Long otherwise, floats
// become Double and booleans become Byte.
func FromNative(v any) (Tag, error) {
	switch v := v.(type) {
	case Tag:
		return v.Copy(), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return fromInt64(int64(v)), nil
	case int8:
		return fromInt64(int64(v)), nil
	case int16:
		return fromInt64(int64(v)), nil
	case int32:
		return Int(v), nil
	case int64:
		return fromInt64(v), nil
	case uint:
		return fromUint64(uint64(v))
	case uint8:
		return fromInt64(int64(v)), nil
	case uint16:
		return fromInt64(int64(v)), nil
	case uint32:
		return fromInt64(int64(v)), nil
	case uint64:
		return fromUint64(v)
	case float32:
		return Double(v), nil
	case float64:
		return Double(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return fromInt64(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q: %w", ErrUnsupportedValue, v.String(), err)
		}
		return Double(f), nil
	case time.Time:
		return String(v.Format(time.RFC3339Nano)), nil
	case fmt.Stringer:
		// go-toml local dates and times
		return String(v.String()), nil
	case []any:
		l := &List{}
		for i, e := range v {
			t, err := FromNative(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			if err := l.Append(t); err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
		}
		return l, nil
	case []map[string]any:
		l := &List{}
		for i, e := range v {
			t, err := FromNative(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			if err := l.Append(t); err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
		}
		return l, nil
	case map[string]any:
		c := NewCompound()
		for _, k := range sortedKeys(v) {
			t, err := FromNative(v[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			c.Put(k, t)
		}
		return c, nil
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = e
		}
		return FromNative(m)
	case nil:
		return nil, fmt.Errorf("%w: null", ErrUnsupportedValue)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// CompoundFromNative converts a decoded document map into a compound.
func CompoundFromNative(m map[string]any) (*Compound, error) {
	t, err := FromNative(m)
	if err != nil {
		return nil, err
	}
	return t.(*Compound), nil
}

func fromInt64(i int64) Tag {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return Int(i)
	}
	return Long(i)
}

func fromUint64(u uint64) (Tag, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows long", ErrUnsupportedValue, u)
	}
	return fromInt64(int64(u)), nil
}

// sortedKeys gives map-sourced compounds a stable key order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToNative converts a tag into plain Go values suitable for the JSON, TOML
// and YAML encoders: int64, float64, string, []any and map[string]any.
func ToNative(t Tag) any {
	switch t := t.(type) {
	case Byte:
		return int64(t)
	case Short:
		return int64(t)
	case Int:
		return int64(t)
	case Long:
		return int64(t)
	case Float:
		return float64(t)
	case Double:
		return float64(t)
	case String:
		return string(t)
	case ByteArray:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = int64(e)
		}
		return out
	case IntArray:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = int64(e)
		}
		return out
	case LongArray:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case *List:
		out := make([]any, t.Len())
		for i := range out {
			out[i] = ToNative(t.At(i))
		}
		return out
	case *Compound:
		out := make(map[string]any, t.Len())
		for k, v := range t.All() {
			out[k] = ToNative(v)
		}
		return out
	default:
		return nil
	}
}
