// Package schemaenum indexes the enumerations declared by the target JSON
// schema documents.
//
// Every object carrying an "enum" array is registered under the nearest
// enclosing definition or property name, so DraftOptions in the enumerations
// document and an inline schedule_type enum are both addressable by name.
// Members are configuration: derivation code asks the registry for them
// instead of spelling schema values itself.
package schemaenum

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ErrMissing reports enumerations or members the schema does not declare.
var ErrMissing = errors.New("schemaenum: missing enumeration members")

// structural keys never name an enumeration themselves.
var structural = map[string]bool{
	"definitions": true,
	"$defs":       true,
	"properties":  true,
	"items":       true,
	"allOf":       true,
	"anyOf":       true,
	"oneOf":       true,
}

// Enum is one schema enumeration.
type Enum struct {
	name    string
	members []string
	set     map[string]struct{}
}

func newEnum(name string, members []string) *Enum {
	e := &Enum{name: name, members: members, set: make(map[string]struct{}, len(members))}
	for _, m := range members {
		e.set[m] = struct{}{}
	}
	return e
}

// Name returns the declaring field or definition name.
func (e *Enum) Name() string { return e.name }

// Has reports whether member is declared.
func (e *Enum) Has(member string) bool {
	if e == nil {
		return false
	}
	_, ok := e.set[member]
	return ok
}

// Get returns member when declared and "" otherwise.
func (e *Enum) Get(member string) string {
	if e.Has(member) {
		return member
	}
	return ""
}

// Members returns the declared members in schema order.
func (e *Enum) Members() []string {
	if e == nil {
		return nil
	}
	return slices.Clone(e.members)
}

// Conflict records a redeclaration whose members differ from the first one.
type Conflict struct {
	Name    string
	Kept    []string
	Ignored []string
}

// Registry is immutable once built.
type Registry struct {
	enums     map[string]*Enum
	conflicts []Conflict
}

// FromDocuments scans the documents in order. Map keys are visited sorted, so
// the first declaration of a name is deterministic.
func FromDocuments(docs ...map[string]any) *Registry {
	r := &Registry{enums: make(map[string]*Enum)}
	for _, doc := range docs {
		r.walk(doc, "")
	}
	return r
}

func (r *Registry) walk(node any, key string) {
	switch n := node.(type) {
	case map[string]any:
		if raw, ok := n["enum"].([]any); ok && key != "" {
			r.add(key, raw)
		}
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if k == "enum" {
				continue
			}
			next := k
			if structural[k] {
				next = key
			}
			r.walk(n[k], next)
		}
	case []any:
		for _, item := range n {
			r.walk(item, key)
		}
	}
}

func (r *Registry) add(name string, raw []any) {
	members := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			members = append(members, s)
		}
	}
	if existing, ok := r.enums[name]; ok {
		if !slices.Equal(existing.members, members) {
			r.conflicts = append(r.conflicts, Conflict{Name: name, Kept: existing.Members(), Ignored: members})
		}
		return
	}
	r.enums[name] = newEnum(name, members)
}

// Lookup returns the enumeration declared under name.
func (r *Registry) Lookup(name string) (*Enum, bool) {
	e, ok := r.enums[name]
	return e, ok
}

// Enum returns the enumeration or nil. A nil Enum has no members.
func (r *Registry) Enum(name string) *Enum {
	return r.enums[name]
}

// Get returns member of enumeration name, or "" when either is undeclared.
func (r *Registry) Get(name, member string) string {
	return r.enums[name].Get(member)
}

// Names returns all enumeration names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of enumerations.
func (r *Registry) Len() int { return len(r.enums) }

// Conflicts returns redeclarations that were ignored.
func (r *Registry) Conflicts() []Conflict {
	return slices.Clone(r.conflicts)
}

// Require checks that every listed member is declared.
func (r *Registry) Require(required map[string][]string) error {
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		e, ok := r.enums[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: enumeration %s not declared", ErrMissing, name))
			continue
		}
		var missing []string
		for _, m := range required[name] {
			if !e.Has(m) {
				missing = append(missing, m)
			}
		}
		if len(missing) > 0 {
			errs = append(errs, fmt.Errorf("%w: %s lacks %s", ErrMissing, name, strings.Join(missing, ", ")))
		}
	}
	return errors.Join(errs...)
}
