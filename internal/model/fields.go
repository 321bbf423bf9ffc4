package model

import "math"

// Fields builds a shaped structure, leaving out absent values: empty
// strings, nil pointers, NaN, and empty slices or maps.
type Fields map[string]any

// Put stores v under key when v is present. Pointers are dereferenced.
func (f Fields) Put(key string, v any) Fields {
	if val, ok := present(v); ok {
		f[key] = val
	}
	return f
}

// Map returns f as a plain map, or nil when empty.
func (f Fields) Map() map[string]any {
	if len(f) == 0 {
		return nil
	}
	return map[string]any(f)
}

func present(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case string:
		return x, x != ""
	case *string:
		if x == nil || *x == "" {
			return nil, false
		}
		return *x, true
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case *float64:
		if x == nil {
			return nil, false
		}
		return present(*x)
	case int:
		return x, true
	case *int:
		if x == nil {
			return nil, false
		}
		return *x, true
	case bool:
		return x, true
	case *bool:
		if x == nil {
			return nil, false
		}
		return *x, true
	case []float64:
		return x, len(x) > 0
	case []string:
		return x, len(x) > 0
	case []any:
		return x, len(x) > 0
	case []map[string]any:
		if len(x) == 0 {
			return nil, false
		}
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = m
		}
		return out, true
	case Fields:
		return map[string]any(x), len(x) > 0
	case map[string]any:
		return x, len(x) > 0
	}
	return v, true
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
