package schema

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/resilience"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	cfg := DefaultClientConfig()
	cfg.Timeout = 5 * time.Second
	cfg.Retries = 0
	cfg.MinWait = time.Millisecond
	cfg.MaxWait = time.Millisecond
	return NewClient(cfg)
}

func TestLoadEmbedded(t *testing.T) {
	set, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, SourceEmbedded, set.Origin)
	assert.Equal(t, "0.1.7", set.Version)
	assert.True(t, set.Enums().Enum("DraftOptions").Has("FORCED"))

	_, ok := set.Document(schemas.Output)
	assert.True(t, ok)
}

func TestUnitsIndex(t *testing.T) {
	set, err := LoadEmbedded()
	require.NoError(t, err)
	u := set.Units()

	assert.Equal(t, "RulesetProjectDescription", u.Root())

	t.Run("array items ref", func(t *testing.T) {
		p, ok := u.Property("RulesetModelDescription", "boilers")
		require.True(t, ok)
		assert.Equal(t, "Boiler", p.Ref)
		assert.Empty(t, p.Units)
	})

	t.Run("declared units", func(t *testing.T) {
		p, ok := u.Property("Boiler", "rated_capacity")
		require.True(t, ok)
		assert.Equal(t, "W", p.Units)
	})

	t.Run("external enumeration refs are dropped", func(t *testing.T) {
		_, ok := u.Property("Calendar", "day_of_week_for_january_1")
		assert.False(t, ok)
	})

	assert.Contains(t, u.Declared(), "K")
	assert.True(t, u.Has("Chiller"))
	assert.IsIncreasing(t, u.Definitions())
}

func TestNoDefinitions(t *testing.T) {
	_, err := NewUnits(map[string]any{"title": "empty"})
	assert.ErrorIs(t, err, ErrNoDefinitions)
}

func copyEmbedded(t *testing.T, dir string, skip string) {
	t.Helper()
	for _, name := range schemas.Names {
		if name == skip {
			continue
		}
		data, err := schemas.FS.ReadFile(name)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
}

func TestLoadDir(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		dir := t.TempDir()
		copyEmbedded(t, dir, "")
		set, err := Load(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, dir, set.Origin)
		assert.Equal(t, set.Enums().Names(), mustEmbedded(t).Enums().Names())
	})

	t.Run("missing document", func(t *testing.T) {
		dir := t.TempDir()
		copyEmbedded(t, dir, schemas.Enumerations)
		_, err := LoadDir(dir)
		assert.ErrorIs(t, err, ErrMissingDoc)
	})

	t.Run("not a directory", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})
}

func mustEmbedded(t *testing.T) *Set {
	t.Helper()
	set, err := LoadEmbedded()
	require.NoError(t, err)
	return set
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.StripPrefix("/schemas", http.FileServer(http.FS(schemas.FS))))
	defer srv.Close()

	set, err := Fetch(context.Background(), testClient(), srv.URL+"/schemas/")
	require.NoError(t, err)
	assert.Equal(t, "0.1.7", set.Version)
	assert.True(t, set.Enums().Enum("EndUseOptions").Has("PUMPS"))

	_, err = Fetch(context.Background(), testClient(), srv.URL+"/nowhere")
	assert.Error(t, err)
}

func TestClientBreakerStopsCallingFailingHost(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := DefaultClientConfig()
	cfg.Retries = 0
	cfg.BreakerFailures = 2
	client := NewClient(cfg)

	for range 2 {
		_, err := client.Get(context.Background(), srv.URL+"/ASHRAE229.schema.json")
		require.Error(t, err)
		assert.NotErrorIs(t, err, resilience.ErrOpen)
	}
	_, err := client.Get(context.Background(), srv.URL+"/ASHRAE229.schema.json")
	assert.ErrorIs(t, err, resilience.ErrOpen)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFromBytesRejectsBadJSON(t *testing.T) {
	raw := map[string][]byte{}
	for _, name := range schemas.Names {
		raw[name] = []byte(`{"definitions": {"A": {}}}`)
	}
	raw[schemas.Output] = []byte(`{not json`)
	_, err := FromBytes("test", raw)
	assert.Error(t, err)
}
