package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	dirs := []string{
		"tests/unit",
		"tests/integration",
		".venv/lib",
		"node_modules/pkg",
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatalf("failed to create dir %s: %v", dir, err)
		}
	}

	files := []string{
		"tests/unit/test_user.py",
		"tests/unit/test_payment.py",
		"tests/integration/order_test.py",
		".venv/lib/test_vendored.py",
		"node_modules/pkg/test_dep.py",
		"tests/unit/models.py",
	}
	for _, file := range files {
		path := filepath.Join(tmpDir, file)
		if err := os.WriteFile(path, []byte("# test"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner([]string{"node_modules"})

	t.Run("finds test files and skips excluded dirs", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// .venv is hidden, node_modules is skipped, models.py is not a test file.
		if len(results) != 3 {
			t.Errorf("expected 3 test files, got %d: %v", len(results), results)
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		if _, err := scanner.Scan("/non/existent/path"); err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		file := filepath.Join(tmpDir, "plain.txt")
		os.WriteFile(file, []byte("x"), 0644)
		if _, err := scanner.Scan(file); err == nil {
			t.Error("expected error for file path")
		}
	})
}
