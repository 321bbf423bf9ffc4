package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/bdl"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/config"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/monitoring"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/model"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/shared/id"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const officePath = "../bdl/testdata/office.bdl"

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newPipeline(t *testing.T, mutate func(*Options)) *Pipeline {
	t.Helper()
	set, err := schema.LoadEmbedded()
	require.NoError(t, err)

	opts := OptionsFrom(config.Default(), set)
	opts.Clock = func() time.Time { return fixedTime }
	if mutate != nil {
		mutate(&opts)
	}
	p, err := New(opts)
	require.NoError(t, err)
	return p
}

func rmds(t *testing.T, doc map[string]any) []map[string]any {
	t.Helper()
	raw, ok := doc["ruleset_model_descriptions"].([]any)
	require.True(t, ok)
	out := make([]map[string]any, len(raw))
	for i, item := range raw {
		out[i] = item.(map[string]any)
	}
	return out
}

func TestNewRequiresSchema(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestConvertProjectNoInputs(t *testing.T) {
	p := newPipeline(t, nil)
	_, err := p.ConvertProject(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoModels)
}

func TestConvertProjectOffice(t *testing.T) {
	p := newPipeline(t, func(o *Options) { o.Units = config.UnitsIP })

	res, err := p.ConvertProject(context.Background(), []Input{{Type: TypeProposed, Path: officePath}})
	require.NoError(t, err)

	require.Len(t, res.Models, 1)
	m := res.Models[0]
	assert.Equal(t, "office.bdl", m.Label)
	assert.Equal(t, "DOE-2.3-50h", m.Version)
	assert.Len(t, m.Fingerprint, 64)
	assert.Equal(t, 2, m.Counts["BOILER"])
	assert.True(t, strings.HasPrefix(res.RunID.String(), "run_"))

	doc := res.Document
	assert.Equal(t, id.DocumentID("PROPOSED:"+m.Fingerprint), doc["id"])
	assert.Equal(t, "2024-03-01T12:00:00Z", doc["data_timestamp"])
	assert.Equal(t, "0.1.7", doc["data_version"])
	assert.Contains(t, doc, "calendar")

	weather := doc["weather"].(map[string]any)
	assert.Equal(t, 33.0, weather["elevation"])

	models := rmds(t, doc)
	require.Len(t, models, 1)
	assert.Equal(t, "office.bdl", models[0]["id"])
	assert.Equal(t, TypeProposed, models[0]["type"])
	assert.Contains(t, models[0], "buildings")

	assert.Empty(t, res.Diagnostics)
	assert.NotEmpty(t, res.Warnings(), "missing simulation outputs are warnings")
}

func TestConvertProjectSIUnits(t *testing.T) {
	p := newPipeline(t, nil)

	res, err := p.ConvertProject(context.Background(), []Input{{Type: TypeProposed, Path: officePath}})
	require.NoError(t, err)

	weather := res.Document["weather"].(map[string]any)
	assert.InDelta(t, 10.0584, weather["elevation"], 1e-9)
}

func TestConvertProjectRenamesAcrossModels(t *testing.T) {
	metrics := monitoring.NewMetrics()
	p := newPipeline(t, func(o *Options) {
		o.Concurrency = 4
		o.Metrics = metrics
	})

	res, err := p.ConvertProject(context.Background(), []Input{
		{Type: TypeProposed, Path: officePath},
		{Type: TypeBaseline0, Path: officePath, Name: "baseline.bdl"},
	})
	require.NoError(t, err)

	models := rmds(t, res.Document)
	require.Len(t, models, 2)
	assert.Equal(t, TypeProposed, models[0]["type"])
	assert.Equal(t, TypeBaseline0, models[1]["type"])
	assert.Equal(t, res.Models[0].Fingerprint, res.Models[1].Fingerprint)

	require.NotEmpty(t, res.Renames)
	for _, r := range res.Renames {
		assert.True(t, strings.HasPrefix(r.To, r.From+"~"), r.To)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ModelsTotal.WithLabelValues(monitoring.StatusConverted)))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.InstancesTotal.WithLabelValues("BOILER")))
}

func TestConvertProjectReportsEveryFailure(t *testing.T) {
	p := newPipeline(t, nil)

	res, err := p.ConvertProject(context.Background(), []Input{
		{Type: TypeProposed, Path: officePath},
		{Type: "SIDEWAYS", Text: "DOE-2.3\n", Name: "odd.inp"},
		{Type: TypeBaseline0, Name: "blank.inp"},
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrModelFailed)
	assert.ErrorIs(t, err, ErrModelType)
	assert.ErrorIs(t, err, bdl.ErrEmptyInput)
	assert.Nil(t, res.Document)

	require.Len(t, res.Models, 3)
	assert.NoError(t, res.Models[0].Err)
	assert.Contains(t, res.Models[1].Err.Error(), "odd.inp")
	assert.Contains(t, res.Models[2].Err.Error(), "blank.inp")
}

func TestConvertProjectStrictOutputs(t *testing.T) {
	p := newPipeline(t, func(o *Options) { o.StrictOutputs = true })

	res, err := p.ConvertProject(context.Background(), []Input{{Type: TypeProposed, Path: officePath}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelFailed))
	assert.Contains(t, err.Error(), `BOILER "Boiler 1"`)
	assert.NotEmpty(t, res.Models[0].Diagnostics)
}

func TestConvertProjectCancelled(t *testing.T) {
	p := newPipeline(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ConvertProject(ctx, []Input{{Type: TypeProposed, Path: officePath}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateProject(t *testing.T) {
	tests := []struct {
		name    string
		ruleset string
		types   []string
		want    []string
	}{
		{
			name:    "complete project",
			ruleset: config.RulesetASHRAE9012019,
			types:   []string{TypeUser, TypeProposed, TypeBaseline0, TypeBaseline90, TypeBaseline180, TypeBaseline270},
		},
		{
			name:    "rotations missing",
			ruleset: config.RulesetASHRAE9012019,
			types:   []string{TypeProposed, TypeBaseline0, TypeBaseline180},
			want:    []string{"missing companion model: BASELINE_90, BASELINE_270"},
		},
		{
			name:    "no proposed",
			ruleset: config.RulesetASHRAE9012019,
			types:   []string{TypeUser},
			want:    []string{"no PROPOSED model in project"},
		},
		{
			name:    "duplicate type",
			ruleset: config.RulesetASHRAE9012019,
			types:   []string{TypeProposed, TypeProposed},
			want:    []string{"more than one PROPOSED model"},
		},
		{
			name:    "other ruleset",
			ruleset: "custom",
			types:   []string{TypeBaseline0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pipeline{opts: Options{Ruleset: tt.ruleset}}
			models := make([]ModelResult, len(tt.types))
			for i, typ := range tt.types {
				models[i] = ModelResult{Type: typ}
			}

			var got []string
			for _, d := range p.validateProject(models) {
				assert.Equal(t, model.LevelWarning, d.Level)
				got = append(got, d.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", Fingerprint(""))
	assert.NotEqual(t, Fingerprint("a"), Fingerprint("b"))
}
