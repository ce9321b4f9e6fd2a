package patchfile

// MergePatch applies patch to original with JSON merge-patch semantics: maps
// merge key by key, a nil value deletes the key and anything else replaces
// what was there. Neither argument is modified.
func MergePatch(original, patch any) any {
	patchMap, patchIsMap := patch.(map[string]any)
	if !patchIsMap {
		return patch
	}
	originalMap, originalIsMap := original.(map[string]any)
	if !originalIsMap {
		originalMap = make(map[string]any)
	}
	result := make(map[string]any, len(originalMap))
	for k, v := range originalMap {
		result[k] = v
	}
	for key, patchAt := range patchMap {
		if patchAt == nil {
			delete(result, key)
		} else if originalAt, exists := result[key]; exists {
			result[key] = MergePatch(originalAt, patchAt)
		} else {
			result[key] = MergePatch(nil, patchAt)
		}
	}
	return result
}
