package cache

// cloneValue deep-clones JSON-shaped data. The cache owns its stored
// values: Put clones on the way in, Get clones on the way out, so callers
// can never mutate a cached entry through a returned reference.
//
// Scalars (string, float64, bool, nil) are immutable and returned as-is,
// as is any type outside the JSON shape.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}
