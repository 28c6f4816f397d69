package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-nivo/pkg/dom"
)

// MustParse builds a Document from inline markup, failing the test on error.
func MustParse(t *testing.T, markup string, options ...dom.Option) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString(markup, options...)
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

// MustLoadPage parses an HTML fixture from disk.
func MustLoadPage(t *testing.T, path string, options ...dom.Option) *dom.Document {
	t.Helper()

	doc, err := LoadPage(path, options...)
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	return doc
}

// LoadPage reads and parses an HTML fixture without requiring testing.T.
func LoadPage(path string, options ...dom.Option) (*dom.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: page path is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: open page: %w", err)
	}
	defer file.Close()

	doc, err := dom.Parse(file, options...)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse page: %w", err)
	}
	return doc, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
