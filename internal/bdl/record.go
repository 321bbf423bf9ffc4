package bdl

import "sort"

// Value is a keyword value as it appeared in the source text. Scalars hold a
// single item; parenthesised lists and repeated keywords hold several.
type Value struct {
	Items []string
	List  bool
}

// Scalar returns the first item, or "" for an empty value.
func (v Value) Scalar() string {
	if len(v.Items) == 0 {
		return ""
	}
	return v.Items[0]
}

// Native returns the value as a string or []string.
func (v Value) Native() any {
	if !v.List {
		return v.Scalar()
	}
	out := make([]string, len(v.Items))
	copy(out, v.Items)
	return out
}

// Record is one declared command instance with its raw keywords.
type Record struct {
	Command string
	Name    string
	// Parent names the implicit structural parent, empty for roots.
	Parent string
	// Library marks a positional LIBRARY-ENTRY record.
	Library bool
	Line    int

	order  []string
	values map[string]Value
}

func newRecord(command, name string, line int) *Record {
	return &Record{
		Command: command,
		Name:    name,
		Line:    line,
		values:  make(map[string]Value),
	}
}

// NewRecord builds a record from keyword values. Intended for tests and
// programmatic callers; the reader builds records itself.
func NewRecord(command, name string, keywords map[string]any) *Record {
	r := newRecord(command, name, 0)
	for _, kw := range sortedKeys(keywords) {
		switch v := keywords[kw].(type) {
		case string:
			r.set(kw, Value{Items: []string{v}})
		case []string:
			r.set(kw, Value{Items: append([]string(nil), v...), List: true})
		}
	}
	return r
}

// Get returns the value stored for keyword.
func (r *Record) Get(keyword string) (Value, bool) {
	v, ok := r.values[keyword]
	return v, ok
}

// Keywords returns keyword names in first-seen order.
func (r *Record) Keywords() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Map returns {keyword: string|[]string}.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for kw, v := range r.values {
		out[kw] = v.Native()
	}
	return out
}

func (r *Record) set(keyword string, v Value) {
	if _, exists := r.values[keyword]; !exists {
		r.order = append(r.order, keyword)
	}
	r.values[keyword] = v
}

// add stores v, turning a repeated keyword into an ordered list.
func (r *Record) add(keyword string, v Value) {
	prev, exists := r.values[keyword]
	if !exists {
		r.set(keyword, v)
		return
	}
	items := append(append([]string(nil), prev.Items...), v.Items...)
	r.values[keyword] = Value{Items: items, List: true}
}

// File is the result of reading one BDL text.
type File struct {
	Version string
	Records []*Record
}

// ByCommand returns the records of one command type in declaration order.
func (f *File) ByCommand(command string) []*Record {
	var out []*Record
	for _, r := range f.Records {
		if r.Command == command {
			out = append(out, r)
		}
	}
	return out
}

// Counts returns the number of instances per command type.
func (f *File) Counts() map[string]int {
	counts := make(map[string]int)
	for _, r := range f.Records {
		counts[r.Command]++
	}
	return counts
}

// Nested returns {command: {name: {keyword: string|[]string}}}.
func (f *File) Nested() map[string]map[string]map[string]any {
	out := make(map[string]map[string]map[string]any)
	for _, r := range f.Records {
		byName, ok := out[r.Command]
		if !ok {
			byName = make(map[string]map[string]any)
			out[r.Command] = byName
		}
		byName[r.Name] = r.Map()
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
