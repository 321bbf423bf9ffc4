package schema

import (
	"sort"
	"strings"
)

// Property is what the unit pass needs to know about one schema property.
type Property struct {
	Units string // declared unit, "" when unitless
	Ref   string // local definition the value (or each array item) follows
}

// Units indexes definition -> property -> Property for one schema document.
type Units struct {
	root string
	defs map[string]map[string]Property
}

const localRefPrefix = "#/definitions/"

// NewUnits indexes the "definitions" of doc. References into other documents
// are dropped; only local definitions can carry nested units.
func NewUnits(doc map[string]any) (*Units, error) {
	defs, ok := doc["definitions"].(map[string]any)
	if !ok || len(defs) == 0 {
		return nil, ErrNoDefinitions
	}
	u := &Units{defs: make(map[string]map[string]Property, len(defs))}
	if ref, ok := doc["$ref"].(string); ok {
		u.root = localRef(ref)
	}
	for name, raw := range defs {
		def, _ := raw.(map[string]any)
		props, _ := def["properties"].(map[string]any)
		index := make(map[string]Property, len(props))
		for pname, praw := range props {
			p, _ := praw.(map[string]any)
			if p == nil {
				continue
			}
			var prop Property
			prop.Units, _ = p["units"].(string)
			prop.Ref = refOf(p)
			if items, ok := p["items"].(map[string]any); ok {
				if prop.Ref == "" {
					prop.Ref = refOf(items)
				}
				if prop.Units == "" {
					prop.Units, _ = items["units"].(string)
				}
			}
			if prop.Units != "" || prop.Ref != "" {
				index[pname] = prop
			}
		}
		u.defs[name] = index
	}
	return u, nil
}

func refOf(m map[string]any) string {
	ref, _ := m["$ref"].(string)
	return localRef(ref)
}

func localRef(ref string) string {
	if !strings.HasPrefix(ref, localRefPrefix) {
		return ""
	}
	return strings.TrimPrefix(ref, localRefPrefix)
}

// Root returns the definition the document's top-level $ref names.
func (u *Units) Root() string { return u.root }

// Property looks up a property of a definition.
func (u *Units) Property(def, name string) (Property, bool) {
	p, ok := u.defs[def][name]
	return p, ok
}

// Has reports whether def is a known definition.
func (u *Units) Has(def string) bool {
	_, ok := u.defs[def]
	return ok
}

// Definitions returns the indexed definition names, sorted.
func (u *Units) Definitions() []string {
	out := make([]string, 0, len(u.defs))
	for name := range u.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Declared returns every distinct unit the document declares, sorted.
func (u *Units) Declared() []string {
	seen := map[string]struct{}{}
	for _, props := range u.defs {
		for _, p := range props {
			if p.Units != "" {
				seen[p.Units] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
