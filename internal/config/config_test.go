package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "embedded", cfg.Schema.Source)
	assert.Equal(t, UnitsSI, cfg.Output.Units)
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.Equal(t, RulesetASHRAE9012019, cfg.Pipeline.Ruleset)
	assert.Equal(t, 1, cfg.Pipeline.Concurrency)
	assert.False(t, cfg.Pipeline.StrictOutputs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 10, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Output, cfg.Output)
	assert.Equal(t, def.Pipeline, cfg.Pipeline)
	assert.Equal(t, def.RateLimit, cfg.RateLimit)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"RPDGEN_OUTPUT_UNITS":            "ip",
		"RPDGEN_OUTPUT_COMPRESSION":      "zstd",
		"RPDGEN_PIPELINE_CONCURRENCY":    "4",
		"RPDGEN_PIPELINE_STRICT_OUTPUTS": "true",
		"RPDGEN_RATELIMIT_RPS":           "50",
		"RPDGEN_RATELIMIT_ENABLED":       "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, UnitsIP, cfg.Output.Units)
	assert.Equal(t, "zstd", cfg.Output.Compression)
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.True(t, cfg.Pipeline.StrictOutputs)
	assert.Equal(t, 50, cfg.RateLimit.RequestsPerSecond)
	assert.False(t, cfg.RateLimit.Enabled)

	// Defaults still apply to everything else.
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestLoadFileOverlay(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "yaml",
			file:    "rpdgen.yaml",
			content: "output:\n  units: ip\n  indent: 0\npipeline:\n  concurrency: 3\n",
		},
		{
			name:    "toml",
			file:    "rpdgen.toml",
			content: "[output]\nunits = \"ip\"\nindent = 0\n\n[pipeline]\nconcurrency = 3\n",
		},
		{
			name:    "json",
			file:    "rpdgen.json",
			content: `{"output": {"units": "ip", "indent": 0}, "pipeline": {"concurrency": 3}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, UnitsIP, cfg.Output.Units)
			assert.Equal(t, 0, cfg.Output.Indent)
			assert.Equal(t, 3, cfg.Pipeline.Concurrency)
			assert.Equal(t, RulesetASHRAE9012019, cfg.Pipeline.Ruleset, "keys absent from the file keep their value")
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"units", "RPDGEN_OUTPUT_UNITS", "metric"},
		{"compression", "RPDGEN_OUTPUT_COMPRESSION", "brotli"},
		{"concurrency", "RPDGEN_PIPELINE_CONCURRENCY", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load("")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpdgen.ini")
	require.NoError(t, os.WriteFile(path, []byte("units=si"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
