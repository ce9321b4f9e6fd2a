package main

import (
	"fmt"
	"os"

	"github.com/rj-helpers/nbtpatch/component"
	"github.com/rj-helpers/nbtpatch/patchfile"
)

// loadComponents layers the component files over the default registry with
// merge-patch semantics, so a file can add, repoint or (with null) drop a
// component id.
func loadComponents(files []string) (*component.Registry, error) {
	base := make(map[string]any)
	for id, path := range component.Defaults().Paths() {
		base[id] = path
	}
	var merged any = base

	for _, file := range files {
		format, err := patchfile.FormatFromPath(file)
		if err != nil {
			return nil, fmt.Errorf("components file: %w", err)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading components file: %w", err)
		}
		layer, err := patchfile.Unmarshal(data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		merged = patchfile.MergePatch(merged, layer)
	}

	paths := make(map[string]string)
	for id, raw := range merged.(map[string]any) {
		path, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("component %q: path must be a string, got %T", id, raw)
		}
		paths[id] = path
	}
	return component.FromPaths(paths), nil
}
