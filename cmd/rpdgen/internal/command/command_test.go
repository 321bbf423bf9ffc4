package command_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/cmd/rpdgen/internal/command"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const office = "../../../../internal/bdl/testdata/office.bdl"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cli := command.NewCLI(&out, &errOut, "1.2.3")
	root := command.NewRootCommand(cli)
	command.AddCommands(root, cli)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestConvertToStdout(t *testing.T) {
	out, errOut, err := run(t, "convert", "--units", "ip", "--indent", "2", office)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 33.0, doc["weather"].(map[string]any)["elevation"])

	models := doc["ruleset_model_descriptions"].([]any)
	require.Len(t, models, 1)
	assert.Equal(t, "PROPOSED", models[0].(map[string]any)["type"])

	assert.Contains(t, errOut, "warning:")
	assert.Contains(t, errOut, "converted 1 model(s)")
}

func TestConvertToCompressedFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out", "project.json.gz")
	_, errOut, err := run(t, "convert", "-q",
		"--model", "proposed="+office,
		"--model", "BASELINE_0="+office,
		"-O", dest,
	)
	require.NoError(t, err)
	assert.Empty(t, errOut)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(zr).Decode(&doc))
	assert.Len(t, doc["ruleset_model_descriptions"], 2)
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no models", args: []string{"convert"}, want: "no models given"},
		{name: "bad model flag", args: []string{"convert", "--model", office}, want: "expected TYPE=PATH"},
		{name: "missing file", args: []string{"convert", "missing.inp"}, want: "missing.inp"},
		{name: "bad units", args: []string{"convert", "--units", "furlongs", office}, want: "furlongs"},
		{name: "unknown type", args: []string{"convert", "--type", "SIDEWAYS", office}, want: "unknown model type"},
		{name: "strict outputs", args: []string{"convert", "--strict", office}, want: `BOILER "Boiler 1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInspect(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, _, err := run(t, "inspect", office)
		require.NoError(t, err)
		assert.Contains(t, out, "DOE-2.3-50h")
		assert.Contains(t, out, "BOILER")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, "inspect", "-o", "json", office)
		require.NoError(t, err)

		var infos []command.ModelInfo
		require.NoError(t, json.Unmarshal([]byte(out), &infos))
		require.Len(t, infos, 1)
		assert.Equal(t, 2, infos[0].Counts["BOILER"])
		assert.Len(t, infos[0].Fingerprint, 64)
	})

	t.Run("bad format", func(t *testing.T) {
		_, _, err := run(t, "inspect", "-o", "xml", office)
		assert.ErrorContains(t, err, "invalid output format")
	})
}

func TestEnums(t *testing.T) {
	out, _, err := run(t, "enums", "--source", "bdl", "LIBRARY-COMMANDS")
	require.NoError(t, err)
	assert.Equal(t, []string{"CURVE-FIT", "MATERIAL", "GLASS-TYPE"}, strings.Fields(out))

	out, _, err = run(t, "enums", "RulesetModelOptions")
	require.NoError(t, err)
	assert.Contains(t, strings.Fields(out), "PROPOSED")

	_, _, err = run(t, "enums", "NoSuchEnum")
	assert.ErrorContains(t, err, "not found")

	_, _, err = run(t, "enums", "--source", "idf")
	assert.ErrorContains(t, err, "unknown enumeration source")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1.2.3")
	assert.Contains(t, out, "schema_version:")
}
