package rpd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/fsutil"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func document() *model.Document {
	doc := model.NewDocument()
	doc.SetProject("calendar", map[string]any{"is_leap_year": false})
	doc.Append("boilers", map[string]any{"id": "Boiler 1", "loop": "HW Loop"})
	doc.Append("fluid_loops", map[string]any{"id": "HW Loop"})
	doc.AppendSegment("zones", map[string]any{"id": "Zone 1"})
	return doc
}

func TestAssemble(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := Assemble(Project{ID: "Project", Timestamp: stamp, DataVersion: "1.0"}, []Model{
		{ID: "proposed.inp", Type: "PROPOSED", Document: document()},
		{ID: "empty.inp", Type: "BASELINE_0", Document: model.NewDocument()},
	})

	assert.Equal(t, "Project", out["id"])
	assert.Equal(t, "2024-03-01T12:00:00Z", out["data_timestamp"])
	assert.Equal(t, map[string]any{"is_leap_year": false}, out["calendar"])
	assert.NotContains(t, out, "weather")

	rmds := out["ruleset_model_descriptions"].([]any)
	require.Len(t, rmds, 2)

	proposed := rmds[0].(map[string]any)
	assert.Equal(t, "PROPOSED", proposed["type"])
	assert.Len(t, proposed["boilers"], 1)
	building := proposed["buildings"].([]any)[0].(map[string]any)
	assert.Equal(t, "proposed.inp Building", building["id"])
	segment := building["building_segments"].([]any)[0].(map[string]any)
	assert.Equal(t, "proposed.inp Segment", segment["id"])
	assert.Len(t, segment["zones"], 1)
	assert.NotContains(t, segment, "heating_ventilating_air_conditioning_systems")

	empty := rmds[1].(map[string]any)
	assert.NotContains(t, empty, "boilers")
}

func TestPrune(t *testing.T) {
	in := map[string]any{
		"keep":   1.0,
		"empty":  []any{},
		"blank":  "",
		"nested": map[string]any{"gone": []any{map[string]any{}}},
		"list":   []any{map[string]any{"id": "a"}, map[string]any{}},
	}
	assert.Equal(t, map[string]any{
		"keep": 1.0,
		"list": []any{map[string]any{"id": "a"}},
	}, Prune(in))
	assert.Nil(t, Prune(map[string]any{"x": nil}))
}

func TestUniqueIDs(t *testing.T) {
	doc := map[string]any{
		"id": "Project",
		"ruleset_model_descriptions": []any{
			map[string]any{
				"id":          "Model",
				"boilers":     []any{map[string]any{"id": "B", "loop": "L"}},
				"fluid_loops": []any{map[string]any{"id": "L"}},
			},
			map[string]any{
				"id":      "Model 2",
				"boilers": []any{map[string]any{"id": "B", "loop": "L"}},
				"fluid_loops": []any{
					map[string]any{"id": "L"},
					map[string]any{"id": "L~1"},
				},
				"pumps": []any{
					map[string]any{"id": "P", "loop_or_piping": "B"},
					map[string]any{"id": "P"},
				},
				"constructions": []any{map[string]any{"id": "C", "primary_layers": []any{"B", "other"}}},
			},
		},
	}

	renames := UniqueIDs(doc)

	second := doc["ruleset_model_descriptions"].([]any)[1].(map[string]any)
	boiler := second["boilers"].([]any)[0].(map[string]any)
	assert.Equal(t, "B~1", boiler["id"])
	assert.Equal(t, "L~2", boiler["loop"], "the free suffix skips ids already in use")

	loops := second["fluid_loops"].([]any)
	assert.Equal(t, "L~2", loops[0].(map[string]any)["id"])
	assert.Equal(t, "L~1", loops[1].(map[string]any)["id"])

	pumps := second["pumps"].([]any)
	assert.Equal(t, "B~1", pumps[0].(map[string]any)["loop_or_piping"])
	assert.Equal(t, "P", pumps[0].(map[string]any)["id"])
	assert.Equal(t, "P~1", pumps[1].(map[string]any)["id"])

	layers := second["constructions"].([]any)[0].(map[string]any)["primary_layers"].([]any)
	assert.Equal(t, []any{"B~1", "other"}, layers)

	assert.ElementsMatch(t, []Rename{
		{Model: "Model 2", From: "B", To: "B~1"},
		{Model: "Model 2", From: "L", To: "L~2"},
		{Model: "Model 2", From: "P", To: "P~1"},
	}, renames)

	seen := map[string]bool{}
	walkNodes(doc, func(node map[string]any) {
		id := node["id"].(string)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	})
}

func TestUniqueIDsRepeatedWithinModelKeepsReferences(t *testing.T) {
	doc := map[string]any{
		"id": "Project",
		"ruleset_model_descriptions": []any{
			map[string]any{
				"id": "Model",
				"chillers": []any{
					map[string]any{"id": "X"},
					map[string]any{"id": "X"},
				},
				"pumps": []any{map[string]any{"id": "P", "loop_or_piping": "X"}},
			},
		},
	}
	UniqueIDs(doc)
	rmd := doc["ruleset_model_descriptions"].([]any)[0].(map[string]any)
	assert.Equal(t, "X", rmd["pumps"].([]any)[0].(map[string]any)["loop_or_piping"])
	assert.Equal(t, "X~1", rmd["chillers"].([]any)[1].(map[string]any)["id"])
}

func TestUniqueIDsLeavesEnumerationValues(t *testing.T) {
	doc := map[string]any{
		"id": "Project",
		"ruleset_model_descriptions": []any{
			map[string]any{
				"id":          "Model",
				"fluid_loops": []any{map[string]any{"id": "OTHER", "type": "HEATING"}},
			},
			map[string]any{
				"id":              "Model 2",
				"fluid_loops":     []any{map[string]any{"id": "OTHER", "type": "OTHER"}},
				"heat_rejections": []any{map[string]any{"id": "Tower", "type": "OTHER", "loop": "OTHER"}},
				"zones": []any{map[string]any{
					"id":                                   "Z",
					"thermostat_cooling_setpoint_schedule": "OTHER",
				}},
			},
		},
	}
	UniqueIDs(doc)

	rmd := doc["ruleset_model_descriptions"].([]any)[1].(map[string]any)
	loop := rmd["fluid_loops"].([]any)[0].(map[string]any)
	assert.Equal(t, "OTHER~1", loop["id"])
	assert.Equal(t, "OTHER", loop["type"])

	tower := rmd["heat_rejections"].([]any)[0].(map[string]any)
	assert.Equal(t, "OTHER", tower["type"])
	assert.Equal(t, "OTHER~1", tower["loop"])

	zone := rmd["zones"].([]any)[0].(map[string]any)
	assert.Equal(t, "OTHER~1", zone["thermostat_cooling_setpoint_schedule"])
}

func testUnits(t *testing.T) *schema.Units {
	t.Helper()
	index, err := schema.NewUnits(map[string]any{
		"$ref": "#/definitions/Root",
		"definitions": map[string]any{
			"Root": map[string]any{"properties": map[string]any{
				"models": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/definitions/Model"}},
			}},
			"Model": map[string]any{"properties": map[string]any{
				"boilers": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/definitions/Boiler"}},
				"area":    map[string]any{"type": "number", "units": "m2"},
				"temps":   map[string]any{"type": "array", "items": map[string]any{"type": "number", "units": "K"}},
			}},
			"Boiler": map[string]any{"properties": map[string]any{
				"rated_capacity": map[string]any{"type": "number", "units": "W"},
				"quantity":       map[string]any{"type": "integer"},
			}},
		},
	})
	require.NoError(t, err)
	return index
}

func TestConverter(t *testing.T) {
	doc := map[string]any{
		"models": []any{map[string]any{
			"area":    100.0,
			"temps":   []any{32.0, 212.0},
			"boilers": []any{map[string]any{"rated_capacity": 1.0, "quantity": 2}},
			"ignored": 5.0,
		}},
	}
	c := NewConverter(testUnits(t), Overrides{"Boiler": {"rated_capacity": "MMBtu/hr"}})
	require.NoError(t, c.Convert(doc))

	m := doc["models"].([]any)[0].(map[string]any)
	assert.InDelta(t, 9.290304, m["area"].(float64), 1e-9)
	temps := m["temps"].([]any)
	assert.InDelta(t, 273.15, temps[0].(float64), 1e-9)
	assert.InDelta(t, 373.15, temps[1].(float64), 1e-9)
	boiler := m["boilers"].([]any)[0].(map[string]any)
	assert.InDelta(t, 293071.07, boiler["rated_capacity"].(float64), 1e-6)
	assert.Equal(t, 2, boiler["quantity"])
	assert.Equal(t, 5.0, m["ignored"])
}

func TestConverterReportsIncompatibleUnits(t *testing.T) {
	doc := map[string]any{"models": []any{map[string]any{"area": 1.0}}}
	c := NewConverter(testUnits(t), Overrides{"Model": {"area": "gpm"}})
	err := c.Convert(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Model.area")
}

func TestWrite(t *testing.T) {
	doc := map[string]any{"b": 1.0, "a": []any{"x"}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, ""))
	assert.Equal(t, "{\"a\":[\"x\"],\"b\":1}\n", buf.String())

	path := filepath.Join(t.TempDir(), "out", "rpd.json.gz")
	require.NoError(t, WriteFile(path, "", doc, DefaultIndent))

	in, err := fsutil.OpenInput(path)
	require.NoError(t, err)
	defer in.Close()
	var back map[string]any
	require.NoError(t, sonic.ConfigStd.NewDecoder(in).Decode(&back))
	assert.Equal(t, doc, back)
}
