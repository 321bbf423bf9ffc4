package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"development", DevelopmentConfig(), false},
		{"empty level", Config{}, false},
		{"bad level", Config{Level: "loud"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger.Logger)
		})
	}
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("missing outputs", Command("BOILER"), Instance("B1"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "missing outputs", entry["message"])
	assert.Equal(t, "BOILER", entry["command"])
	assert.Contains(t, entry, "timestamp")
}

func TestForRunTagsEntries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := &Logger{Logger: zap.New(core)}

	logger.ForRun("01HZX").Info("converted", Model("a.inp"), Command("BOILER"), Instance("B1"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "01HZX", fields["run_id"])
	assert.Equal(t, "a.inp", fields["model"])
	assert.Equal(t, "BOILER", fields["command"])
	assert.Equal(t, "B1", fields["instance"])
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("ignored")
	assert.NotNil(t, logger.ForRun("x"))
}
