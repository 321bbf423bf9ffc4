package model

// Document collects the shaped output of one model.
type Document struct {
	// Project holds RPD-level properties contributed by the model, such as
	// calendar and weather.
	Project map[string]any
	// Model is the RMD root and its collections.
	Model map[string]any
	// Building and Segment are the single building and building segment
	// every model is assembled into.
	Building map[string]any
	Segment  map[string]any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Project:  map[string]any{},
		Model:    map[string]any{},
		Building: map[string]any{},
		Segment:  map[string]any{},
	}
}

// SetProject sets an RPD-level property.
func (d *Document) SetProject(key string, v any) { d.Project[key] = v }

// Append adds item to an RMD-level collection.
func (d *Document) Append(collection string, item map[string]any) {
	AppendItem(d.Model, collection, item)
}

// AppendSegment adds item to a building-segment collection.
func (d *Document) AppendSegment(collection string, item map[string]any) {
	AppendItem(d.Segment, collection, item)
}

// SetBuilding sets a building property.
func (d *Document) SetBuilding(key string, v any) { d.Building[key] = v }

// AppendItem appends item to the []any stored under key in m.
func AppendItem(m map[string]any, key string, item map[string]any) {
	if m == nil || item == nil {
		return
	}
	list, _ := m[key].([]any)
	m[key] = append(list, item)
}

// AppendTo appends item to a collection of the parent's shaped data. It is a
// no-op when the parent is missing, omitted or unshaped.
func AppendTo(parent Instance, collection string, item map[string]any) bool {
	if parent == nil {
		return false
	}
	n := parent.Base()
	if n.Omit || n.Data == nil {
		return false
	}
	AppendItem(n.Data, collection, item)
	return true
}
