// Package bdlenum is the registry of raw BDL token enumerations: the command
// types the converter consumes and the legal values of the keywords its
// derivation units switch on.
//
// Enumerations are registered during package initialisation and are read-only
// afterwards, so lookups need no locking.
//
// Usage:
//
//	if bdlenum.BoilerTypes.Has(kind) { ... }
//	e, ok := bdlenum.Lookup("CHILLER-TYPE")
package bdlenum

import (
	"fmt"
	"sort"
)

// Enum is a named, ordered set of raw tokens.
type Enum struct {
	name    string
	members []string
	set     map[string]struct{}
}

// Name returns the registry key of the enumeration.
func (e *Enum) Name() string { return e.name }

// Members returns the tokens in declaration order.
func (e *Enum) Members() []string {
	out := make([]string, len(e.members))
	copy(out, e.members)
	return out
}

// Has reports whether token is a member.
func (e *Enum) Has(token string) bool {
	_, ok := e.set[token]
	return ok
}

// Len returns the number of members.
func (e *Enum) Len() int { return len(e.members) }

var registry = make(map[string]*Enum)

// register adds an enumeration. Only called from package-level var
// initialisation; a duplicate name is a programming error.
func register(name string, members ...string) *Enum {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("bdlenum: duplicate enumeration %q", name))
	}
	e := &Enum{name: name, members: members, set: make(map[string]struct{}, len(members))}
	for _, m := range members {
		e.set[m] = struct{}{}
	}
	registry[name] = e
	return e
}

// Lookup returns the enumeration registered under name.
func Lookup(name string) (*Enum, bool) {
	e, ok := registry[name]
	return e, ok
}

// Names returns every registered enumeration name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
