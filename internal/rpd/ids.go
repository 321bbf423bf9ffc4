package rpd

import (
	"fmt"
	"sort"
	"strings"
)

const (
	idKey          = "id"
	modelsKey      = "ruleset_model_descriptions"
	idSuffixFormat = "%s~%d"
)

// Rename records one identifier changed by UniqueIDs.
type Rename struct {
	Model string
	From  string
	To    string
}

// UniqueIDs renames repeated identifiers in place so no two nodes of the
// document share one. The document is traversed with sorted map keys and
// lists in order; the first occurrence keeps its id and each later one
// becomes "<id>~<n>" with the smallest free n. References inside the model
// that owns a renamed node are rewritten when the old id was unique within
// that model.
func UniqueIDs(doc map[string]any) []Rename {
	used := map[string]bool{}
	collectIDs(doc, used)

	seen := map[string]bool{}
	var renames []Rename

	claim := func(node map[string]any, scope string, counts map[string]int, rewrite map[string]string) {
		id, ok := node[idKey].(string)
		if !ok || id == "" {
			return
		}
		if !seen[id] {
			seen[id] = true
			return
		}
		fresh := nextFree(id, used)
		used[fresh] = true
		seen[fresh] = true
		node[idKey] = fresh
		renames = append(renames, Rename{Model: scope, From: id, To: fresh})
		if rewrite != nil && counts[id] == 1 {
			rewrite[id] = fresh
		}
	}

	claim(doc, "", nil, nil)
	for key, v := range sortedEntries(doc) {
		if key == modelsKey {
			continue
		}
		walkNodes(v, func(node map[string]any) { claim(node, "", nil, nil) })
	}

	models, _ := doc[modelsKey].([]any)
	for _, item := range models {
		rmd, ok := item.(map[string]any)
		if !ok {
			continue
		}
		scope, _ := rmd[idKey].(string)
		counts := map[string]int{}
		walkNodes(rmd, func(node map[string]any) {
			if id, ok := node[idKey].(string); ok {
				counts[id]++
			}
		})
		rewrite := map[string]string{}
		walkNodes(rmd, func(node map[string]any) { claim(node, scope, counts, rewrite) })
		if len(rewrite) > 0 {
			rewriteRefs(rmd, rewrite)
		}
	}
	return renames
}

func nextFree(id string, used map[string]bool) string {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf(idSuffixFormat, id, n)
		if !used[candidate] {
			return candidate
		}
	}
}

func collectIDs(v any, used map[string]bool) {
	walkNodes(v, func(node map[string]any) {
		if id, ok := node[idKey].(string); ok {
			used[id] = true
		}
	})
}

// walkNodes calls fn for every map in v, parents before children.
func walkNodes(v any, fn func(map[string]any)) {
	switch x := v.(type) {
	case map[string]any:
		fn(x)
		for _, child := range sortedEntries(x) {
			walkNodes(child, fn)
		}
	case []any:
		for _, item := range x {
			walkNodes(item, fn)
		}
	case []map[string]any:
		for _, item := range x {
			walkNodes(item, fn)
		}
	}
}

// sortedEntries iterates m in key order.
func sortedEntries(m map[string]any) func(func(string, any) bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return func(yield func(string, any) bool) {
		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

// referenceKeys are the properties whose values name other nodes. Keys
// ending in "_schedule" are references as well.
var referenceKeys = map[string]bool{
	"adjacent_zone":       true,
	"chilled_water_loop":  true,
	"condensing_loop":     true,
	"construction":        true,
	"cooling_from_loop":   true,
	"cooling_loop":        true,
	"distribution_system": true,
	"floor_name":          true,
	"heat_recovery_loop":  true,
	"heating_from_loop":   true,
	"hot_water_loop":      true,
	"loop":                true,
	"loop_or_piping":      true,
	"primary_layers":      true,
	"served_by_heating_ventilating_air_conditioning_system": true,
}

func isReferenceKey(key string) bool {
	return referenceKeys[key] || strings.HasSuffix(key, "_schedule")
}

// rewriteRefs replaces renamed ids held by reference properties.
func rewriteRefs(v any, rewrite map[string]string) {
	switch x := v.(type) {
	case map[string]any:
		for key, val := range x {
			if isReferenceKey(key) {
				x[key] = renamed(val, rewrite)
				continue
			}
			rewriteRefs(val, rewrite)
		}
	case []any:
		for _, item := range x {
			rewriteRefs(item, rewrite)
		}
	case []map[string]any:
		for _, item := range x {
			rewriteRefs(item, rewrite)
		}
	}
}

// renamed maps a reference value, a single id or a list of ids, through
// rewrite.
func renamed(v any, rewrite map[string]string) any {
	switch x := v.(type) {
	case string:
		if to, ok := rewrite[x]; ok {
			return to
		}
	case []string:
		for i, ref := range x {
			if to, ok := rewrite[ref]; ok {
				x[i] = to
			}
		}
	case []any:
		for i, item := range x {
			if ref, ok := item.(string); ok {
				if to, ok := rewrite[ref]; ok {
					x[i] = to
				}
			}
		}
	}
	return v
}
