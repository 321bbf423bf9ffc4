package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression names.
const (
	CompressionAuto = ""
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

// CompressionFor resolves CompressionAuto from the path extension.
func CompressionFor(path, compression string) (string, error) {
	switch compression {
	case CompressionNone, CompressionGzip, CompressionZstd:
		return compression, nil
	case CompressionAuto:
	default:
		return "", fmt.Errorf("fsutil: unknown compression %q", compression)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip, nil
	case ".zst", ".zstd":
		return CompressionZstd, nil
	}
	return CompressionNone, nil
}

// CreateOutput creates path, wrapping it in the resolved compressor.
// Closing the writer flushes the compressor and closes the file.
func CreateOutput(path, compression string) (io.WriteCloser, error) {
	kind, err := CompressionFor(path, compression)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("fsutil: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("fsutil: %w", err)
	}
	w, err := Compress(f, kind)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &stackedWriter{WriteCloser: w, file: f}, nil
}

// Compress wraps w. CompressionNone returns a writer whose Close is a no-op.
func Compress(w io.Writer, compression string) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone, CompressionAuto:
		return nopCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("fsutil: zstd: %w", err)
		}
		return enc, nil
	}
	return nil, fmt.Errorf("fsutil: unknown compression %q", compression)
}

// OpenInput opens path, transparently decompressing .gz and .zst files.
func OpenInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fsutil: %w", err)
	}
	kind, _ := CompressionFor(path, CompressionAuto)
	switch kind {
	case CompressionGzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("fsutil: gzip: %w", err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("fsutil: zstd: %w", err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), f}}, nil
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type stackedWriter struct {
	io.WriteCloser
	file *os.File
}

func (s *stackedWriter) Close() error {
	return errors.Join(s.WriteCloser.Close(), s.file.Close())
}

type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
