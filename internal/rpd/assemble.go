// Package rpd assembles converted models into a Ruleset Project Description,
// makes its identifiers unique, converts it to the schema's units and writes
// it out.
package rpd

import (
	"time"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
)

// Model is one converted RMD.
type Model struct {
	ID       string
	Type     string
	Document *model.Document
}

// Project carries the RPD-level metadata.
type Project struct {
	ID            string
	Timestamp     time.Time
	DataVersion   string
	ReportingName string
	Notes         string
}

// Collections of the building segment, in output order.
var segmentCollections = []string{"zones", "heating_ventilating_air_conditioning_systems"}

// Assemble builds the RPD. Models keep the order given; the calendar and
// weather come from the first model that carries them.
func Assemble(p Project, models []Model) map[string]any {
	root := model.Fields{"id": p.ID}.
		Put("data_version", p.DataVersion).
		Put("reporting_name", p.ReportingName).
		Put("notes", p.Notes)
	if !p.Timestamp.IsZero() {
		root.Put("data_timestamp", p.Timestamp.UTC().Format(time.RFC3339))
	}

	var rmds []map[string]any
	for _, m := range models {
		if m.Document == nil {
			continue
		}
		for _, key := range []string{"calendar", "weather"} {
			if _, done := root[key]; done {
				continue
			}
			root.Put(key, m.Document.Project[key])
		}
		rmds = append(rmds, assembleModel(m))
	}
	root.Put("ruleset_model_descriptions", rmds)
	return Prune(root.Map())
}

func assembleModel(m Model) map[string]any {
	doc := m.Document

	segment := model.Fields{"id": m.ID + " Segment"}
	for _, key := range segmentCollections {
		segment.Put(key, doc.Segment[key])
	}

	building := model.Fields{"id": m.ID + " Building"}
	for key, v := range doc.Building {
		building.Put(key, v)
	}
	building.Put("building_segments", []map[string]any{segment.Map()})

	rmd := model.Fields{"id": m.ID}.
		Put("type", m.Type).
		Put("buildings", []map[string]any{building.Map()})
	for key, v := range doc.Model {
		rmd.Put(key, v)
	}
	return rmd.Map()
}

// Prune removes empty maps and lists, recursively. It returns nil when
// nothing is left.
func Prune(m map[string]any) map[string]any {
	for key, v := range m {
		if pruned, keep := pruneValue(v); keep {
			m[key] = pruned
		} else {
			delete(m, key)
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

func pruneValue(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		out := Prune(x)
		return out, out != nil
	case []any:
		kept := x[:0]
		for _, item := range x {
			if pruned, keep := pruneValue(item); keep {
				kept = append(kept, pruned)
			}
		}
		return kept, len(kept) > 0
	case []string:
		return x, len(x) > 0
	case []float64:
		return x, len(x) > 0
	case string:
		return x, x != ""
	}
	return v, true
}
