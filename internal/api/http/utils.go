package http

import (
	"maps"
	"slices"
)

// sortedKeys returns the keys of m in order, so multipart models keep a
// stable order regardless of form parsing.
func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
