// Package patchfile reads and writes patch sets as TOML, JSON or YAML
// documents.
//
// A patch document is normally a merge patch limited to one level of
// nesting:
//
//	Damage = 10            # addition of "Damage"
//	HideFlags = null       # removal of "HideFlags" (JSON and YAML only)
//	[display]
//	Name = "Sword"         # addition of "display.Name"
//
// A document holding "$set" or "$remove" is read in explicit form instead,
// where "$set" maps paths to values and "$remove" lists paths. The explicit
// form can replace a whole compound and is the only way to express
// removals in TOML, which has no null.
package patchfile

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/rj-helpers/nbtpatch/nbt"
	"github.com/rj-helpers/nbtpatch/patchset"
)

const (
	SetKey    = "$set"
	RemoveKey = "$remove"
)

var ErrInvalidPatch = errors.New("invalid patch document")

// Decode converts a patch document into a patch set.
func Decode(doc map[string]any) (*patchset.PatchSet, error) {
	_, hasSet := doc[SetKey]
	_, hasRemove := doc[RemoveKey]
	if hasSet || hasRemove {
		return decodeExplicit(doc)
	}

	b := patchset.NewBuilder()
	for _, key := range sortedKeys(doc) {
		switch value := stringKeys(doc[key]).(type) {
		case nil:
			b.Remove(key)
		case map[string]any:
			for _, child := range sortedKeys(value) {
				path := patchset.NestedPath(key, child).String()
				if value[child] == nil {
					b.Remove(path)
					continue
				}
				if err := add(b, path, value[child]); err != nil {
					return nil, err
				}
			}
		default:
			if err := add(b, key, value); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(), nil
}

func decodeExplicit(doc map[string]any) (*patchset.PatchSet, error) {
	for key := range doc {
		if key != SetKey && key != RemoveKey {
			return nil, fmt.Errorf("%w: unexpected key %q beside %s and %s", ErrInvalidPatch, key, SetKey, RemoveKey)
		}
	}

	b := patchset.NewBuilder()
	if raw, ok := doc[SetKey]; ok && raw != nil {
		set, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a map, got %T", ErrInvalidPatch, SetKey, raw)
		}
		for _, path := range sortedKeys(set) {
			if err := add(b, path, set[path]); err != nil {
				return nil, err
			}
		}
	}
	if raw, ok := doc[RemoveKey]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a list, got %T", ErrInvalidPatch, RemoveKey, raw)
		}
		for i, entry := range list {
			path, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be a string, got %T", ErrInvalidPatch, RemoveKey, i, entry)
			}
			b.Remove(path)
		}
	}
	return b.Build(), nil
}

func add(b *patchset.Builder, path string, value any) error {
	tag, err := nbt.FromNative(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPatch, path, err)
	}
	b.Add(path, tag)
	return nil
}

// Encode converts a patch set into an explicit-form patch document.
func Encode(ps *patchset.PatchSet) map[string]any {
	set := make(map[string]any)
	for path, v := range ps.Entries() {
		set[path] = nbt.ToNative(v)
	}
	doc := map[string]any{SetKey: set}
	if removals := ps.RemovalPaths(); len(removals) > 0 {
		list := make([]any, len(removals))
		for i, path := range removals {
			list[i] = path
		}
		doc[RemoveKey] = list
	}
	return doc
}

// Parse decodes data in format f into a patch set.
func Parse(data []byte, f Format) (*patchset.PatchSet, error) {
	doc, err := Unmarshal(data, f)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

// Read parses the patch file at path, choosing the format by extension.
func Read(path string) (*patchset.PatchSet, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading patch file: %w", err)
	}
	ps, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

// ReadAll reads each patch file in turn and layers them, so later files
// override earlier ones path by path.
func ReadAll(paths ...string) (*patchset.PatchSet, error) {
	b := patchset.NewBuilder()
	for _, path := range paths {
		ps, err := Read(path)
		if err != nil {
			return nil, err
		}
		b.Merge(ps)
	}
	return b.Build(), nil
}

// stringKeys converts a map[any]any, which yaml.v3 produces for mappings
// with non-string keys, to map[string]any.
func stringKeys(v any) any {
	m, ok := v.(map[any]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, e := range m {
		out[fmt.Sprint(k)] = e
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
