package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/bdl"
)

// Node is the state every typed instance shares: the raw record it wraps,
// the owning model and the shaped output.
type Node struct {
	Name    string
	Command string
	Record  *bdl.Record
	RMD     *RMD

	// Omit excludes the instance, and its structural children, from output.
	Omit bool
	// Data is the shaped structure, set after Shape.
	Data map[string]any
}

// NewNode wraps rec for rmd.
func NewNode(rec *bdl.Record, rmd *RMD) Node {
	return Node{Name: rec.Name, Command: rec.Command, Record: rec, RMD: rmd}
}

// Base returns the node itself. Embedding Node gives every instance this
// method.
func (n *Node) Base() *Node { return n }

// Has reports whether keyword was declared.
func (n *Node) Has(keyword string) bool {
	if n.Record == nil {
		return false
	}
	_, ok := n.Record.Get(keyword)
	return ok
}

// Keyword returns the scalar value of keyword, or "".
func (n *Node) Keyword(keyword string) string {
	if n.Record == nil {
		return ""
	}
	v, _ := n.Record.Get(keyword)
	return v.Scalar()
}

// KeywordOr returns the value of keyword or def when absent.
func (n *Node) KeywordOr(keyword, def string) string {
	if v := n.Keyword(keyword); v != "" {
		return v
	}
	return def
}

// List returns every item of keyword. A scalar yields a one-item list.
func (n *Node) List(keyword string) []string {
	if n.Record == nil {
		return nil
	}
	v, ok := n.Record.Get(keyword)
	if !ok {
		return nil
	}
	return append([]string(nil), v.Items...)
}

// Float parses the scalar value of keyword.
func (n *Node) Float(keyword string) (float64, bool) {
	return parseFloat(n.Keyword(keyword))
}

// FloatOr returns the numeric value of keyword or def.
func (n *Node) FloatOr(keyword string, def float64) float64 {
	if v, ok := n.Float(keyword); ok {
		return v
	}
	return def
}

// Number returns the numeric value of keyword, or nil.
func (n *Node) Number(keyword string) *float64 {
	if v, ok := n.Float(keyword); ok {
		return &v
	}
	return nil
}

// Floats parses every item of keyword, skipping non-numeric items.
func (n *Node) Floats(keyword string) []float64 {
	items := n.List(keyword)
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if v, ok := parseFloat(item); ok {
			out = append(out, v)
		}
	}
	return out
}

// Int parses keyword as an integer. Values like "12.0" are accepted.
func (n *Node) Int(keyword string) (int, bool) {
	v, ok := n.Float(keyword)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

// Resolve looks up another instance of the same model by name.
func (n *Node) Resolve(name string) (Instance, bool) {
	if n.RMD == nil {
		return nil, false
	}
	return n.RMD.Resolve(name)
}

// Ref resolves the instance named by keyword.
func (n *Node) Ref(keyword string) (Instance, bool) {
	name := n.Keyword(keyword)
	if name == "" {
		return nil, false
	}
	return n.Resolve(name)
}

// Warn records a validation warning against this instance.
func (n *Node) Warn(format string, args ...any) {
	if n.RMD != nil {
		n.RMD.Diagnostics.Warn(n.Command, n.Name, format, args...)
	}
}

// Enum returns a schema enumeration member, or "" when the schema lacks it.
func (n *Node) Enum(name, member string) string {
	if n.RMD == nil || n.RMD.Enums == nil || member == "" {
		return ""
	}
	return n.RMD.Enums.Get(name, member)
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
