package fsutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// ErrBinaryInput is returned for content that is not text.
var ErrBinaryInput = errors.New("fsutil: input is not text")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText reads a text file and returns its content as UTF-8.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fsutil: %w", err)
	}
	text, err := DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// DecodeText checks that data is text and transcodes it to UTF-8.
func DecodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(data) == 0 {
		return "", nil
	}
	if !IsText(data) {
		return "", ErrBinaryInput
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	label := DetectCharset(data)
	enc, _ := charset.Lookup(label)
	if enc == nil {
		enc, _ = charset.Lookup("windows-1252")
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("fsutil: decode %s: %w", label, err)
	}
	return string(decoded), nil
}

// IsText reports whether the detected MIME type descends from text/plain.
func IsText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// DetectCharset returns the most likely charset label, lower-cased.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}
