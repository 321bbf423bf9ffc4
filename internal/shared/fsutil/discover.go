package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// ErrNoInputs is returned when nothing matched.
var ErrNoInputs = errors.New("fsutil: no input files matched")

// ModelExtensions are the file extensions collected from directories.
var ModelExtensions = []string{".inp", ".bdl"}

// Discover expands paths, glob patterns and directories into a sorted,
// de-duplicated file list.
func Discover(patterns ...string) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if hasMeta(pattern) {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("fsutil: glob %q: %w", pattern, err)
			}
			for _, m := range matches {
				if info, err := os.Stat(m); err == nil && !info.IsDir() {
					add(m)
				}
			}
			continue
		}

		info, err := os.Stat(pattern)
		if err != nil {
			return nil, fmt.Errorf("fsutil: %w", err)
		}
		if !info.IsDir() {
			add(pattern)
			continue
		}
		files, err := walkModels(pattern)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoInputs
	}
	sort.Strings(out)
	return out, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// walkModels collects model files below root. fastwalk calls the callback
// from several goroutines.
func walkModels(root string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped
		}
		if d.IsDir() || !isModelFile(path) {
			return nil
		}
		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fsutil: walk %s: %w", root, err)
	}
	return files, nil
}

func isModelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range ModelExtensions {
		if ext == want {
			return true
		}
	}
	return false
}
