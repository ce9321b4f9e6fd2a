package patchset

import "github.com/rj-helpers/nbtpatch/nbt"

// DisplayKey is the one nested compound that FromDocument flattens.
const DisplayKey = "display"

// FromDocument snapshots the host's compound as a patch set of additions.
// Every top-level key is copied as is, and every key k of the display
// compound is also copied as "display.k". A host without a compound gives
// an empty patch set.
func FromDocument(host Host) *PatchSet {
	return FromCompound(host.Nbt())
}

// FromCompound is FromDocument for a bare compound, which may be nil.
func FromCompound(root *nbt.Compound) *PatchSet {
	additions := nbt.NewCompound()
	for key, v := range root.All() {
		additions.Put(key, v.Copy())
	}
	if root.ContainsKind(DisplayKey, nbt.KindCompound) {
		for key, v := range root.GetCompound(DisplayKey).All() {
			additions.Put(NestedPath(DisplayKey, key).String(), v.Copy())
		}
	}
	return &PatchSet{additions: additions}
}
