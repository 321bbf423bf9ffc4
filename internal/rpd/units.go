package rpd

import (
	"fmt"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/calc/units"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
)

// Overrides names the internal unit of properties that are not in the
// default internal unit of their schema unit, keyed by definition and
// property.
type Overrides map[string]map[string]string

// Converter is the final unit pass. It walks the assembled document
// alongside the schema definitions and expresses every numeric property
// that declares a unit in that unit.
type Converter struct {
	index     *schema.Units
	overrides Overrides
}

// NewConverter returns a Converter over index.
func NewConverter(index *schema.Units, overrides Overrides) *Converter {
	return &Converter{index: index, overrides: overrides}
}

// Convert rewrites doc in place starting at the schema's root definition.
func (c *Converter) Convert(doc map[string]any) error {
	return c.convertNode(doc, c.index.Root(), "")
}

func (c *Converter) convertNode(node map[string]any, def, path string) error {
	if def == "" || !c.index.Has(def) {
		return nil
	}
	for key, v := range sortedEntries(node) {
		prop, ok := c.index.Property(def, key)
		if !ok {
			continue
		}
		at := path + "/" + key
		if prop.Units != "" {
			from := c.internalUnit(def, key, prop.Units)
			converted, err := convertValue(v, from, prop.Units)
			if err != nil {
				return fmt.Errorf("rpd: %s.%s at %s: %w", def, key, at, err)
			}
			node[key] = converted
			continue
		}
		if err := c.convertChild(v, prop.Ref, at); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) convertChild(v any, def, path string) error {
	switch x := v.(type) {
	case map[string]any:
		return c.convertNode(x, def, path)
	case []any:
		for i, item := range x {
			if err := c.convertChild(item, def, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Converter) internalUnit(def, prop, declared string) string {
	if u, ok := c.overrides[def][prop]; ok {
		return u
	}
	if u, ok := units.IPEquivalent(declared); ok {
		return u
	}
	return declared
}

func convertValue(v any, from, to string) (any, error) {
	if from == to {
		return v, nil
	}
	switch x := v.(type) {
	case float64:
		return units.Convert(x, from, to)
	case int:
		return units.Convert(float64(x), from, to)
	case []float64:
		out := make([]float64, len(x))
		for i, f := range x {
			conv, err := units.Convert(f, from, to)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			conv, err := convertValue(item, from, to)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	}
	return v, nil
}
