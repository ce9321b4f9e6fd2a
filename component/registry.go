// Package component maps symbolic item component identifiers to the NBT
// paths that hold them.
package component

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicate = errors.New("component: duplicate id")
	ErrUnknown   = errors.New("component: unknown id")
)

// Type identifies a component and the dotted NBT path it is stored at.
type Type struct {
	id   string
	path string
}

func (t Type) ID() string { return t.id }

// AsPathString returns the NBT path of the component, e.g. "display.Name".
func (t Type) AsPathString() string { return t.path }

func (t Type) String() string { return t.id + "=" + t.path }

// defaultPaths are the components every registry from Defaults knows about.
var defaultPaths = map[string]string{
	// top-level keys
	"damage":              "Damage",
	"unbreakable":         "Unbreakable",
	"custom_model_data":   "CustomModelData",
	"hide_flags":          "HideFlags",
	"repair_cost":         "RepairCost",
	"enchantments":        "Enchantments",
	"attribute_modifiers": "AttributeModifiers",

	// the display compound
	"custom_name": "display.Name",
	"lore":        "display.Lore",
	"dyed_color":  "display.color",
}

// Registry is a lookup from component id to Type. It is not safe for
// concurrent registration.
type Registry struct {
	types map[string]Type
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// Defaults returns a new registry holding the well-known components.
func Defaults() *Registry {
	return FromPaths(defaultPaths)
}

// FromPaths builds a registry from an id to path mapping.
func FromPaths(paths map[string]string) *Registry {
	r := NewRegistry()
	for id, path := range paths {
		r.types[id] = Type{id: id, path: path}
	}
	return r
}

// Paths returns the registry as an id to path mapping.
func (r *Registry) Paths() map[string]string {
	out := make(map[string]string, len(r.types))
	for id, t := range r.types {
		out[id] = t.path
	}
	return out
}

func (r *Registry) Register(id, path string) (Type, error) {
	if _, ok := r.types[id]; ok {
		return Type{}, fmt.Errorf("%w: %s", ErrDuplicate, id)
	}
	t := Type{id: id, path: path}
	r.types[id] = t
	return t, nil
}

func (r *Registry) Lookup(id string) (Type, bool) {
	t, ok := r.types[id]
	return t, ok
}

// Resolve is Lookup returning ErrUnknown for missing ids.
func (r *Registry) Resolve(id string) (Type, error) {
	t, ok := r.types[id]
	if !ok {
		return Type{}, fmt.Errorf("%w: %s", ErrUnknown, id)
	}
	return t, nil
}

func (r *Registry) MustLookup(id string) Type {
	t, err := r.Resolve(id)
	if err != nil {
		panic(err)
	}
	return t
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
