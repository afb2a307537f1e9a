// Package testsupport holds fixture and golden-file helpers shared by the
// package tests. Goldens are rewritten when UPDATE_GOLDENS is set.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// MustLoadLayout reads a JSON layout fixture.
func MustLoadLayout(t *testing.T, path string) map[string]any {
	t.Helper()

	layout, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	return layout
}

// LoadLayout reads a JSON layout fixture without requiring testing.T.
func LoadLayout(path string) (map[string]any, error) {
	if path == "" {
		return nil, errors.New("testsupport: layout path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read layout: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal layout: %w", err)
	}
	return out, nil
}

// Fixtures lists the files in dir matching pattern, sorted, and fails the
// test when there are none.
func Fixtures(t *testing.T, dir, pattern string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no fixtures matching %s in %s", pattern, dir)
	}
	sort.Strings(matches)
	return matches
}

// GoldenPath maps a fixture to its golden file under goldenDir, keeping the
// base name.
func GoldenPath(fixture, goldenDir string) string {
	name := strings.TrimSuffix(filepath.Base(fixture), filepath.Ext(fixture))
	return filepath.Join(goldenDir, name+".golden.json")
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set and
// reports whether it did (the test should stop there).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden decodes a JSON golden file into out.
func MustReadGolden(t *testing.T, path string, out any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
