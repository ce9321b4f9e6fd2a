// Package item models an item stack: an identifier, a count and an optional
// NBT tag compound that is only attached once something writes to it.
package item

import (
	"errors"
	"fmt"

	"github.com/rj-helpers/nbtpatch/nbt"
)

var (
	ErrMissingID = errors.New("item: missing id")
	ErrBadField  = errors.New("item: bad field")
)

type Stack struct {
	ID    string
	Count int

	tag *nbt.Compound
}

func NewStack(id string, count int) *Stack {
	return &Stack{ID: id, Count: count}
}

// Nbt returns the attached tag compound, or nil if the stack has none.
func (s *Stack) Nbt() *nbt.Compound {
	return s.tag
}

// GetOrCreateNbt returns the attached tag compound, attaching an empty one
// first if needed.
func (s *Stack) GetOrCreateNbt() *nbt.Compound {
	if s.tag == nil {
		s.tag = nbt.NewCompound()
	}
	return s.tag
}

// SetNbt attaches c, or detaches the current compound when c is nil.
func (s *Stack) SetNbt(c *nbt.Compound) {
	s.tag = c
}

func (s *Stack) Copy() *Stack {
	out := &Stack{ID: s.ID, Count: s.Count}
	if s.tag != nil {
		out.tag = s.tag.CopyCompound()
	}
	return out
}

func (s *Stack) String() string {
	if s.tag == nil {
		return fmt.Sprintf("%d %s", s.Count, s.ID)
	}
	return fmt.Sprintf("%d %s%s", s.Count, s.ID, s.tag)
}

// Decode reads an item document of the form
//
//	{"id": "minecraft:diamond_sword", "Count": 1, "tag": {...}}
//
// Count defaults to 1. A missing tag leaves the stack without a compound.
func Decode(doc map[string]any) (*Stack, error) {
	rawID, ok := doc["id"]
	if !ok {
		return nil, ErrMissingID
	}
	id, ok := rawID.(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: id must be a non-empty string, got %v", ErrBadField, rawID)
	}
	s := NewStack(id, 1)

	if rawCount, ok := doc["Count"]; ok {
		count, err := nbt.FromNative(rawCount)
		if err != nil {
			return nil, fmt.Errorf("%w: Count: %w", ErrBadField, err)
		}
		switch c := count.(type) {
		case nbt.Int:
			s.Count = int(c)
		case nbt.Long:
			s.Count = int(c)
		default:
			return nil, fmt.Errorf("%w: Count must be an integer, got %s", ErrBadField, count.Kind())
		}
	}

	if rawTag, ok := doc["tag"]; ok {
		t, err := nbt.FromNative(rawTag)
		if err != nil {
			return nil, fmt.Errorf("%w: tag: %w", ErrBadField, err)
		}
		c, ok := t.(*nbt.Compound)
		if !ok {
			return nil, fmt.Errorf("%w: tag must be a compound, got %s", ErrBadField, t.Kind())
		}
		s.tag = c
	}
	return s, nil
}

// Encode is the inverse of Decode.
func (s *Stack) Encode() map[string]any {
	doc := map[string]any{
		"id":    s.ID,
		"Count": int64(s.Count),
	}
	if s.tag != nil {
		doc["tag"] = nbt.ToNative(s.tag)
	}
	return doc
}
