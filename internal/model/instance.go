package model

// Instance is one typed command instance.
//
// Derive reads keywords and resolved references into typed attributes. Shape
// builds the output structure from those attributes only. Attach inserts the
// shaped structure into its parent's structure or into the document.
type Instance interface {
	Base() *Node
	Derive() error
	Shape() map[string]any
	Attach(doc *Document)
}

// HasParent is implemented by instances owned by another instance.
type HasParent interface {
	Parent() Instance
	SetParent(p Instance)
}

// HasChildren is implemented by instances that own other instances.
type HasChildren interface {
	Children() []Instance
	AddChild(c Instance)
}

// ChildNode provides HasParent when embedded.
type ChildNode struct {
	parent Instance
}

// Parent returns the structural parent, or nil.
func (c *ChildNode) Parent() Instance { return c.parent }

// SetParent links the structural parent.
func (c *ChildNode) SetParent(p Instance) { c.parent = p }

// ParentNode provides HasChildren when embedded.
type ParentNode struct {
	children []Instance
}

// Children returns the structural children in declaration order.
func (p *ParentNode) Children() []Instance {
	out := make([]Instance, len(p.children))
	copy(out, p.children)
	return out
}

// AddChild appends a structural child.
func (p *ParentNode) AddChild(c Instance) { p.children = append(p.children, c) }

// Factory builds the typed instance for a node.
type Factory func(n Node) Instance

// Factories maps command types to their factories.
type Factories map[string]Factory

// OmitSentinel is the mapping-table value that excludes an instance.
const OmitSentinel = "\x00omit"

// MapToken looks token up in table. omit is true when the token maps to
// OmitSentinel; member is "" for unmapped tokens.
func MapToken(table map[string]string, token string) (member string, omit bool) {
	v, ok := table[token]
	if !ok {
		return "", false
	}
	if v == OmitSentinel {
		return "", true
	}
	return v, false
}

// ResolveAs resolves name and asserts the instance type.
func ResolveAs[T Instance](r *RMD, name string) (T, bool) {
	var zero T
	inst, ok := r.Resolve(name)
	if !ok {
		return zero, false
	}
	t, ok := inst.(T)
	return t, ok
}

// InstancesOf returns every instance of type T in declaration order.
func InstancesOf[T Instance](r *RMD) []T {
	var out []T
	for _, inst := range r.order {
		if t, ok := inst.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// ParentAs returns the structural parent of inst asserted to T.
func ParentAs[T Instance](inst Instance) (T, bool) {
	var zero T
	c, ok := inst.(HasParent)
	if !ok || c.Parent() == nil {
		return zero, false
	}
	t, ok := c.Parent().(T)
	return t, ok
}
