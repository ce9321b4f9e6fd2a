package nbt

import (
	"iter"
	"strings"
)

// Compound is a string-keyed map of tags that remembers insertion order.
// The zero value is an empty compound ready for use.
type Compound struct {
	keys    []string
	entries map[string]Tag
}

func NewCompound() *Compound {
	return &Compound{entries: make(map[string]Tag)}
}

func (*Compound) Kind() Kind { return KindCompound }
func (*Compound) tag()       {}

// Copy returns a deep copy of c.
func (c *Compound) Copy() Tag {
	return c.CopyCompound()
}

// CopyCompound is Copy with the concrete return type.
func (c *Compound) CopyCompound() *Compound {
	out := &Compound{
		keys:    make([]string, 0, c.Len()),
		entries: make(map[string]Tag, c.Len()),
	}
	if c == nil {
		return out
	}
	for _, k := range c.keys {
		out.keys = append(out.keys, k)
		out.entries[k] = c.entries[k].Copy()
	}
	return out
}

func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

func (c *Compound) IsEmpty() bool { return c.Len() == 0 }

// Keys returns the keys in insertion order. The slice is a copy.
func (c *Compound) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

// All iterates over the entries in insertion order.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		if c == nil {
			return
		}
		for _, k := range c.keys {
			if !yield(k, c.entries[k]) {
				return
			}
		}
	}
}

func (c *Compound) Get(key string) (Tag, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries[key]
	return v, ok
}

func (c *Compound) Contains(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// ContainsKind reports whether key is present and holds a tag of kind k.
func (c *Compound) ContainsKind(key string, k Kind) bool {
	v, ok := c.Get(key)
	return ok && v.Kind() == k
}

// Put sets key to v. An existing key keeps its position.
func (c *Compound) Put(key string, v Tag) {
	if v == nil {
		panic("nbt: nil tag for key " + key)
	}
	if c.entries == nil {
		c.entries = make(map[string]Tag)
	}
	if _, ok := c.entries[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = v
}

func (c *Compound) PutByte(key string, v int8)     { c.Put(key, Byte(v)) }
func (c *Compound) PutShort(key string, v int16)   { c.Put(key, Short(v)) }
func (c *Compound) PutInt(key string, v int32)     { c.Put(key, Int(v)) }
func (c *Compound) PutLong(key string, v int64)    { c.Put(key, Long(v)) }
func (c *Compound) PutFloat(key string, v float32) { c.Put(key, Float(v)) }
func (c *Compound) PutDouble(key string, v float64) {
	c.Put(key, Double(v))
}
func (c *Compound) PutString(key string, v string) { c.Put(key, String(v)) }
func (c *Compound) PutBool(key string, v bool)     { c.Put(key, Bool(v)) }

// Remove deletes key and reports whether it was present.
func (c *Compound) Remove(key string) bool {
	if c == nil {
		return false
	}
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// GetCompound returns the compound stored at key. When key is absent or
// holds another kind, a new empty compound is returned that is not attached
// to c.
func (c *Compound) GetCompound(key string) *Compound {
	if v, ok := c.Get(key); ok {
		if nested, ok := v.(*Compound); ok {
			return nested
		}
	}
	return NewCompound()
}

// GetOrCreateCompound returns the compound stored at key, attaching a new
// empty one first if key is absent. It returns nil when key holds another
// kind, which is left untouched.
func (c *Compound) GetOrCreateCompound(key string) *Compound {
	if v, ok := c.Get(key); ok {
		nested, _ := v.(*Compound)
		return nested
	}
	nested := NewCompound()
	c.Put(key, nested)
	return nested
}

func (c *Compound) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range c.Keys() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(key(k))
		sb.WriteByte(':')
		sb.WriteString(c.entries[k].String())
	}
	sb.WriteByte('}')
	return sb.String()
}
