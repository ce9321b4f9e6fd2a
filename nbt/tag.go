// Package nbt implements the named binary tag value model used by item data:
// a closed set of scalar, array and container tags plus an insertion-ordered
// compound map.
package nbt

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind is the NBT type id of a tag.
type Kind byte

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

var kindNames = [...]string{
	KindEnd:       "end",
	KindByte:      "byte",
	KindShort:     "short",
	KindInt:       "int",
	KindLong:      "long",
	KindFloat:     "float",
	KindDouble:    "double",
	KindByteArray: "byte_array",
	KindString:    "string",
	KindList:      "list",
	KindCompound:  "compound",
	KindIntArray:  "int_array",
	KindLongArray: "long_array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// Tag is a single NBT value. The set of implementations is closed.
type Tag interface {
	Kind() Kind
	// Copy returns a deep copy. Scalars return themselves.
	Copy() Tag
	// String renders the tag as SNBT.
	String() string

	tag()
}

type (
	Byte   int8
	Short  int16
	Int    int32
	Long   int64
	Float  float32
	Double float64
	String string

	ByteArray []int8
	IntArray  []int32
	LongArray []int64
)

// Bool returns the tag a boolean is stored as: a byte of 1 or 0.
func Bool(v bool) Tag {
	if v {
		return Byte(1)
	}
	return Byte(0)
}

func (Byte) Kind() Kind      { return KindByte }
func (Short) Kind() Kind     { return KindShort }
func (Int) Kind() Kind       { return KindInt }
func (Long) Kind() Kind      { return KindLong }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (String) Kind() Kind    { return KindString }
func (ByteArray) Kind() Kind { return KindByteArray }
func (IntArray) Kind() Kind  { return KindIntArray }
func (LongArray) Kind() Kind { return KindLongArray }

func (v Byte) Copy() Tag   { return v }
func (v Short) Copy() Tag  { return v }
func (v Int) Copy() Tag    { return v }
func (v Long) Copy() Tag   { return v }
func (v Float) Copy() Tag  { return v }
func (v Double) Copy() Tag { return v }
func (v String) Copy() Tag { return v }

func (v ByteArray) Copy() Tag { return append(ByteArray(nil), v...) }
func (v IntArray) Copy() Tag  { return append(IntArray(nil), v...) }
func (v LongArray) Copy() Tag { return append(LongArray(nil), v...) }

func (Byte) tag()      {}
func (Short) tag()     {}
func (Int) tag()       {}
func (Long) tag()      {}
func (Float) tag()     {}
func (Double) tag()    {}
func (String) tag()    {}
func (ByteArray) tag() {}
func (IntArray) tag()  {}
func (LongArray) tag() {}

func (v Byte) String() string  { return strconv.FormatInt(int64(v), 10) + "b" }
func (v Short) String() string { return strconv.FormatInt(int64(v), 10) + "s" }
func (v Int) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Long) String() string  { return strconv.FormatInt(int64(v), 10) + "L" }
func (v Float) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
}
func (v Double) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64) + "d"
}
func (v String) String() string { return quote(string(v)) }

func (v ByteArray) String() string {
	return formatArray("B", len(v), func(i int) string { return Byte(v[i]).String() })
}

func (v IntArray) String() string {
	return formatArray("I", len(v), func(i int) string { return Int(v[i]).String() })
}

func (v LongArray) String() string {
	return formatArray("L", len(v), func(i int) string { return Long(v[i]).String() })
}

func formatArray(prefix string, n int, elem func(int) string) string {
	var sb strings.Builder
	sb.WriteString("[" + prefix + ";")
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(elem(i))
	}
	sb.WriteByte(']')
	return sb.String()
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}

// key renders a compound key, quoting it unless it is a bare SNBT word.
func key(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.', r == '+':
		default:
			return quote(s)
		}
	}
	return s
}

// Equal reports whether two tags are deeply equal. Compound key order is
// not significant; list order is.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Compound:
		bv := b.(*Compound)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.entries[k]
			if !ok || !Equal(av.entries[k], other) {
				return false
			}
		}
		return true
	case *List:
		bv := b.(*List)
		if av.Len() != bv.Len() {
			return false
		}
		for i := range av.elems {
			if !Equal(av.elems[i], bv.elems[i]) {
				return false
			}
		}
		return true
	case ByteArray:
		return slices.Equal(av, b.(ByteArray))
	case IntArray:
		return slices.Equal(av, b.(IntArray))
	case LongArray:
		return slices.Equal(av, b.(LongArray))
	default:
		return a == b
	}
}
