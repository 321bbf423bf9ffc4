package schemaenum

import (
	"encoding/json"
	"testing"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedDocs(t *testing.T) []map[string]any {
	t.Helper()
	docs := make([]map[string]any, 0, len(schemas.Names))
	for _, name := range schemas.Names {
		data, err := schemas.FS.ReadFile(name)
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		docs = append(docs, doc)
	}
	return docs
}

func TestFromEmbeddedDocuments(t *testing.T) {
	r := FromDocuments(embeddedDocs(t)...)

	t.Run("definition enums", func(t *testing.T) {
		e, ok := r.Lookup("DraftOptions")
		require.True(t, ok)
		assert.Equal(t, []string{"NATURAL", "FORCED", "INDUCED", "OTHER"}, e.Members())
		assert.Equal(t, "FORCED", r.Get("DraftOptions", "FORCED"))
	})

	t.Run("inline property enum", func(t *testing.T) {
		assert.True(t, r.Enum("schedule_type").Has("HOURLY"))
	})

	t.Run("output document enum", func(t *testing.T) {
		assert.True(t, r.Enum("EndUseOptions").Has("PUMPS"))
	})

	t.Run("undeclared", func(t *testing.T) {
		assert.Equal(t, "", r.Get("DraftOptions", "CHIMNEY"))
		assert.Equal(t, "", r.Get("NoSuchOptions", "X"))
		assert.Nil(t, r.Enum("NoSuchOptions").Members())
	})

	assert.Empty(t, r.Conflicts())
	assert.IsIncreasing(t, r.Names())
}

func TestFirstDeclarationWins(t *testing.T) {
	first := map[string]any{
		"definitions": map[string]any{
			"ColorOptions": map[string]any{"enum": []any{"RED", "GREEN"}},
		},
	}
	second := map[string]any{
		"properties": map[string]any{
			"ColorOptions": map[string]any{"enum": []any{"BLUE"}},
			"shape":        map[string]any{"items": map[string]any{"enum": []any{"ROUND"}}},
		},
	}
	r := FromDocuments(first, second)

	assert.Equal(t, []string{"RED", "GREEN"}, r.Enum("ColorOptions").Members())
	require.Len(t, r.Conflicts(), 1)
	assert.Equal(t, []string{"BLUE"}, r.Conflicts()[0].Ignored)
	assert.True(t, r.Enum("shape").Has("ROUND"), "items keeps the enclosing property name")
}

func TestIdenticalRedeclarationIsNotConflict(t *testing.T) {
	doc := map[string]any{
		"definitions": map[string]any{
			"a": map[string]any{"properties": map[string]any{"kind": map[string]any{"enum": []any{"X"}}}},
			"b": map[string]any{"properties": map[string]any{"kind": map[string]any{"enum": []any{"X"}}}},
		},
	}
	r := FromDocuments(doc)
	assert.Empty(t, r.Conflicts())
	assert.Equal(t, 1, r.Len())
}

func TestRequire(t *testing.T) {
	r := FromDocuments(embeddedDocs(t)...)

	assert.NoError(t, r.Require(map[string][]string{
		"DraftOptions":                  {"FORCED", "NATURAL"},
		"BoilerEfficiencyMetricOptions": {"THERMAL", "COMBUSTION", "ANNUAL_FUEL_UTILIZATION"},
	}))

	err := r.Require(map[string][]string{
		"DraftOptions":   {"CHIMNEY"},
		"MissingOptions": {"A"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissing)
	assert.Contains(t, err.Error(), "CHIMNEY")
	assert.Contains(t, err.Error(), "MissingOptions")
}
