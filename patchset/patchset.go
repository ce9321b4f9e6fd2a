// Package patchset describes incremental changes to an NBT tag compound: a
// set of values to write and a set of keys to delete, addressed by dotted
// paths that reach at most one compound deep.
//
// A PatchSet is immutable and safe for concurrent readers. It is made by a
// Builder, by FromDocument, or by Empty.
package patchset

import (
	"iter"
	"strings"

	"github.com/rj-helpers/nbtpatch/nbt"
)

// Host is an object that may carry an attached tag compound, such as an
// item stack.
type Host interface {
	// Nbt returns the attached compound or nil.
	Nbt() *nbt.Compound
	// GetOrCreateNbt attaches an empty compound if there is none.
	GetOrCreateNbt() *nbt.Compound
}

// KeyDescriptor supplies the path for a typed component.
type KeyDescriptor interface {
	AsPathString() string
}

type PatchSet struct {
	additions *nbt.Compound
	removals  pathSet
}

var empty = &PatchSet{additions: nbt.NewCompound()}

// Empty returns the canonical patch set with no additions or removals.
func Empty() *PatchSet {
	return empty
}

// AdditionPaths returns the paths with a pending write, in insertion order.
func (ps *PatchSet) AdditionPaths() []string {
	return ps.additions.Keys()
}

// RemovalPaths returns the paths with a pending delete, in insertion order.
func (ps *PatchSet) RemovalPaths() []string {
	return ps.removals.list()
}

// Get returns a copy of the pending value for path.
func (ps *PatchSet) Get(path string) (nbt.Tag, bool) {
	v, ok := ps.additions.Get(path)
	if !ok {
		return nil, false
	}
	return v.Copy(), true
}

func (ps *PatchSet) HasAddition(path string) bool {
	return ps.additions.Contains(path)
}

func (ps *PatchSet) HasRemoval(path string) bool {
	return ps.removals.contains(path)
}

func (ps *PatchSet) IsEmpty() bool {
	return ps.Len() == 0
}

// Len is the number of additions plus the number of removals.
func (ps *PatchSet) Len() int {
	return ps.additions.Len() + ps.removals.len()
}

// Entries iterates over copies of the additions in insertion order.
func (ps *PatchSet) Entries() iter.Seq2[string, nbt.Tag] {
	return func(yield func(string, nbt.Tag) bool) {
		for path, v := range ps.additions.All() {
			if !yield(path, v.Copy()) {
				return
			}
		}
	}
}

// ApplyTo writes the patch set into the host's compound, attaching one if
// the host has none. Applying an empty patch set never attaches.
func (ps *PatchSet) ApplyTo(host Host) {
	if ps.IsEmpty() {
		return
	}
	ps.ApplyToCompound(host.GetOrCreateNbt())
}

// ApplyToCompound writes the patch set into root.
//
// All additions are applied before any removal. A nested addition creates
// its parent compound when absent and is skipped when the parent holds a
// tag of another kind. Removing a path whose parent is absent or not a
// compound does nothing. Every stored value is a copy.
func (ps *PatchSet) ApplyToCompound(root *nbt.Compound) {
	if root == nil {
		return
	}
	for key, value := range ps.additions.All() {
		p := ParsePath(key)
		if !p.Nested() {
			root.Put(p.Parent, value.Copy())
			continue
		}
		if nested := root.GetOrCreateCompound(p.Parent); nested != nil {
			nested.Put(p.Child, value.Copy())
		}
	}
	for _, key := range ps.removals.keys {
		p := ParsePath(key)
		if !p.Nested() {
			root.Remove(p.Parent)
			continue
		}
		if root.ContainsKind(p.Parent, nbt.KindCompound) {
			root.GetCompound(p.Parent).Remove(p.Child)
		}
	}
}

// ToBuilder returns a builder seeded with the contents of ps.
func (ps *PatchSet) ToBuilder() *Builder {
	return NewBuilder().Merge(ps)
}

func (ps *PatchSet) String() string {
	return "PatchSet{additions=[" + strings.Join(ps.AdditionPaths(), ", ") +
		"], removals=[" + strings.Join(ps.RemovalPaths(), ", ") + "]}"
}

// pathSet is an insertion-ordered set of paths.
type pathSet struct {
	keys  []string
	index map[string]struct{}
}

func (s *pathSet) add(path string) {
	if s.contains(path) {
		return
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[path] = struct{}{}
	s.keys = append(s.keys, path)
}

func (s *pathSet) remove(path string) {
	if !s.contains(path) {
		return
	}
	delete(s.index, path)
	for i, k := range s.keys {
		if k == path {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return
		}
	}
}

func (s *pathSet) contains(path string) bool {
	_, ok := s.index[path]
	return ok
}

func (s *pathSet) len() int { return len(s.keys) }

func (s *pathSet) list() []string {
	return append([]string(nil), s.keys...)
}

func (s *pathSet) clone() pathSet {
	out := pathSet{
		keys:  s.list(),
		index: make(map[string]struct{}, len(s.keys)),
	}
	for _, k := range s.keys {
		out.index[k] = struct{}{}
	}
	return out
}
