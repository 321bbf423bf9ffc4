package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.inp"), "x")
	writeFile(t, filepath.Join(root, "nested", "b.BDL"), "x")
	writeFile(t, filepath.Join(root, "nested", "deeper", "c.inp"), "x")
	writeFile(t, filepath.Join(root, "notes.txt"), "x")

	t.Run("directory", func(t *testing.T) {
		got, err := Discover(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.inp"),
			filepath.Join(root, "nested", "b.BDL"),
			filepath.Join(root, "nested", "deeper", "c.inp"),
		}, got)
	})

	t.Run("recursive glob", func(t *testing.T) {
		got, err := Discover(filepath.Join(root, "**", "*.inp"))
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.inp"),
			filepath.Join(root, "nested", "deeper", "c.inp"),
		}, got)
	})

	t.Run("plain file and duplicates", func(t *testing.T) {
		notes := filepath.Join(root, "notes.txt")
		got, err := Discover(notes, notes)
		require.NoError(t, err)
		assert.Equal(t, []string{notes}, got)
	})

	t.Run("nothing matched", func(t *testing.T) {
		_, err := Discover(filepath.Join(root, "*.zzz"))
		assert.ErrorIs(t, err, ErrNoInputs)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Discover(filepath.Join(root, "absent.inp"))
		assert.Error(t, err)
	})
}

func TestDecodeText(t *testing.T) {
	t.Run("utf-8 with BOM", func(t *testing.T) {
		got, err := DecodeText(append([]byte{0xEF, 0xBB, 0xBF}, "\"Zone\" = ZONE\n"...))
		require.NoError(t, err)
		assert.Equal(t, "\"Zone\" = ZONE\n", got)
	})

	t.Run("latin-1", func(t *testing.T) {
		latin1 := []byte("Le caf\xe9 de la soci\xe9t\xe9 est ferm\xe9 le mercredi. " +
			"Les employ\xe9s ont d\xe9j\xe0 quitt\xe9 le b\xe2timent principal.\n")
		got, err := DecodeText(latin1)
		require.NoError(t, err)
		assert.Contains(t, got, "café")
	})

	t.Run("binary", func(t *testing.T) {
		_, err := DecodeText([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D})
		assert.ErrorIs(t, err, ErrBinaryInput)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := DecodeText(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCompressionFor(t *testing.T) {
	tests := []struct {
		path, compression, want string
	}{
		{"rpd.json", CompressionAuto, CompressionNone},
		{"rpd.json.gz", CompressionAuto, CompressionGzip},
		{"rpd.json.zst", CompressionAuto, CompressionZstd},
		{"rpd.json.gz", CompressionNone, CompressionNone},
		{"rpd.json", CompressionZstd, CompressionZstd},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.compression, func(t *testing.T) {
			got, err := CompressionFor(tt.path, tt.compression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := CompressionFor("x", "brotli")
	assert.Error(t, err)
}

func TestOutputRoundTrip(t *testing.T) {
	for _, name := range []string{"out.json", "out.json.gz", "out.json.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", name)
			w, err := CreateOutput(path, CompressionAuto)
			require.NoError(t, err)
			_, err = io.WriteString(w, `{"id":"rpd"}`)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := OpenInput(path)
			require.NoError(t, err)
			defer r.Close()
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, `{"id":"rpd"}`, string(data))
		})
	}
}

func TestDecodeFile(t *testing.T) {
	type entry struct {
		Code  int     `json:"code" yaml:"code" toml:"code"`
		Value float64 `json:"value" yaml:"value" toml:"value"`
	}
	type doc struct {
		Entries []entry `json:"entries" yaml:"entries" toml:"entries"`
	}

	dir := t.TempDir()
	files := map[string]string{
		"a.json": `{"entries":[{"code":7,"value":1.5}]}`,
		"a.yaml": "entries:\n  - code: 7\n    value: 1.5\n",
		"a.toml": "[[entries]]\ncode = 7\nvalue = 1.5\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			writeFile(t, path, content)
			var got doc
			require.NoError(t, DecodeFile(path, &got))
			assert.Equal(t, doc{Entries: []entry{{Code: 7, Value: 1.5}}}, got)
		})
	}

	assert.Error(t, DecodeFile(filepath.Join(dir, "a.ini"), &doc{}))
}
