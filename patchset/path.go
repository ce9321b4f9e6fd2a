package patchset

import "strings"

// Separator divides the parent and child segments of a nested path.
const Separator = "."

// Path is a patch location: a top-level key, or a child key inside the
// compound at Parent. Only the first separator splits, so "a.b.c" has
// parent "a" and child "b.c".
type Path struct {
	Parent string
	Child  string

	nested bool
}

// ParsePath never fails: "", "a." and ".b" are all valid paths.
func ParsePath(s string) Path {
	parent, child, nested := strings.Cut(s, Separator)
	if !nested {
		return Path{Parent: s}
	}
	return Path{Parent: parent, Child: child, nested: true}
}

// NestedPath returns the path of child inside the compound at parent.
func NestedPath(parent, child string) Path {
	return Path{Parent: parent, Child: child, nested: true}
}

// Nested reports whether the path addresses a key inside a compound.
func (p Path) Nested() bool { return p.nested }

func (p Path) String() string {
	if !p.nested {
		return p.Parent
	}
	return p.Parent + Separator + p.Child
}
