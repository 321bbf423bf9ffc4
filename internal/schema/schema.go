// Package schema loads the ASHRAE 229 schema documents and derives the
// registries built from them: the enumeration registry and the unit index
// used by the final SI pass.
package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/schemaenum"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/schemas"
	"github.com/bytedance/sonic"
)

// SourceEmbedded selects the documents compiled into the binary.
const SourceEmbedded = "embedded"

var (
	ErrNoDefinitions = errors.New("schema: base document has no definitions")
	ErrMissingDoc    = errors.New("schema: document missing")
)

// Set is a loaded, decoded set of schema documents.
type Set struct {
	Origin  string
	Version string

	docs  map[string]map[string]any
	enums *schemaenum.Registry
	units *Units
}

// defaultClient is shared so its breaker spans every remote Load.
var defaultClient = sync.OnceValue(func() *Client { return NewClient(DefaultClientConfig()) })

// Load dispatches on source: "" or "embedded", an http(s) base URL, or a
// directory path.
func Load(ctx context.Context, source string) (*Set, error) {
	switch {
	case source == "" || source == SourceEmbedded:
		return LoadEmbedded()
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return Fetch(ctx, defaultClient(), source)
	default:
		return LoadDir(source)
	}
}

// LoadEmbedded decodes the compiled-in documents.
func LoadEmbedded() (*Set, error) {
	return LoadFS(schemas.FS, SourceEmbedded)
}

// LoadDir reads the documents from a directory.
func LoadDir(dir string) (*Set, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("schema: %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir), dir)
}

// LoadFS reads every document in schemas.Names from fsys.
func LoadFS(fsys fs.FS, origin string) (*Set, error) {
	raw := make(map[string][]byte, len(schemas.Names))
	for _, name := range schemas.Names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s in %s", ErrMissingDoc, name, origin)
			}
			return nil, fmt.Errorf("schema: read %s: %w", name, err)
		}
		raw[name] = data
	}
	return FromBytes(origin, raw)
}

// Fetch downloads every document from baseURL.
func Fetch(ctx context.Context, client *Client, baseURL string) (*Set, error) {
	base := strings.TrimSuffix(baseURL, "/")
	raw := make(map[string][]byte, len(schemas.Names))
	for _, name := range schemas.Names {
		data, err := client.Get(ctx, base+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
		raw[name] = data
	}
	return FromBytes(baseURL, raw)
}

// FromBytes decodes the documents and builds the registries.
func FromBytes(origin string, raw map[string][]byte) (*Set, error) {
	s := &Set{Origin: origin, docs: make(map[string]map[string]any, len(raw))}
	ordered := make([]map[string]any, 0, len(schemas.Names))
	for _, name := range schemas.Names {
		data, ok := raw[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingDoc, name, origin)
		}
		var doc map[string]any
		if err := sonic.ConfigStd.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: decode %s: %w", name, err)
		}
		s.docs[name] = doc
		ordered = append(ordered, doc)
	}

	base := s.docs[schemas.Base]
	units, err := NewUnits(base)
	if err != nil {
		return nil, err
	}
	s.units = units
	s.Version, _ = base["version"].(string)
	s.enums = schemaenum.FromDocuments(ordered...)
	return s, nil
}

// Enums returns the enumeration registry built from all documents.
func (s *Set) Enums() *schemaenum.Registry { return s.enums }

// Units returns the unit index of the base document.
func (s *Set) Units() *Units { return s.units }

// Document returns a decoded document by file name.
func (s *Set) Document(name string) (map[string]any, bool) {
	doc, ok := s.docs[name]
	return doc, ok
}
