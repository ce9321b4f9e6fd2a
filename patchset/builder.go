package patchset

import "github.com/rj-helpers/nbtpatch/nbt"

// Builder accumulates additions and removals. Adding a path cancels a
// pending removal of it and vice versa. A Builder is not safe for
// concurrent use.
type Builder struct {
	additions *nbt.Compound
	removals  pathSet
}

func NewBuilder() *Builder {
	return &Builder{additions: nbt.NewCompound()}
}

// Add records that path should be set to v. It panics if v is nil.
func (b *Builder) Add(path string, v nbt.Tag) *Builder {
	b.additions.Put(path, v)
	b.removals.remove(path)
	return b
}

func (b *Builder) AddComponent(k KeyDescriptor, v nbt.Tag) *Builder {
	return b.Add(k.AsPathString(), v)
}

func (b *Builder) AddInt(path string, v int32) *Builder {
	return b.Add(path, nbt.Int(v))
}

func (b *Builder) AddString(path string, v string) *Builder {
	return b.Add(path, nbt.String(v))
}

func (b *Builder) AddBool(path string, v bool) *Builder {
	return b.Add(path, nbt.Bool(v))
}

// Remove records that path should be deleted.
func (b *Builder) Remove(path string) *Builder {
	b.removals.add(path)
	b.additions.Remove(path)
	return b
}

func (b *Builder) RemoveComponent(k KeyDescriptor) *Builder {
	return b.Remove(k.AsPathString())
}

// Merge replays the additions and then the removals of ps onto b.
func (b *Builder) Merge(ps *PatchSet) *Builder {
	for path, v := range ps.additions.All() {
		b.Add(path, v.Copy())
	}
	for _, path := range ps.removals.keys {
		b.Remove(path)
	}
	return b
}

// Build returns a snapshot of the builder. Later changes to the builder, or
// to tags passed to Add, do not affect the result.
func (b *Builder) Build() *PatchSet {
	return &PatchSet{
		additions: b.additions.CopyCompound(),
		removals:  b.removals.clone(),
	}
}
