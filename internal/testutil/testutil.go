// Package testutil provides test utilities and constructors with pre-injected dependencies.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"jetpack/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewDiscardLogger()
}

// WriteFile creates name under dir with content and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path, failing the test if it cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
