package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const samplePython = `import pytest


def test_add():
    assert 1 + 1 == 2


async def test_fetch():
    assert await fetch() is not None


def helper():
    pass


class TestCalc:
    def test_divide(self):
        assert 4 / 2 == 2

    def test_multiply(self):
        assert 2 * 3 == 6


class Helper:
    def test_like_but_not_collected(self):
        pass


def test_tail():
    pass
`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestPatternParser_Discover(t *testing.T) {
	parser := NewPatternParser(zap.NewNop())

	t.Run("finds simple declarations", func(t *testing.T) {
		path := writeTestFile(t, "test_sample.py", samplePython)

		tests, err := parser.Discover(context.Background(), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		byName := make(map[string]RawTest)
		for _, raw := range tests {
			byName[raw.Name] = raw
		}

		if _, ok := byName["test_add"]; !ok {
			t.Error("expected to find test_add")
		}
		if _, ok := byName["TestCalc"]; !ok {
			t.Error("expected to find class TestCalc")
		}
		if _, ok := byName["helper"]; ok {
			t.Error("should not find helper")
		}
		if byName["TestCalc"].Type != "class" {
			t.Errorf("TestCalc should be a class, got %q", byName["TestCalc"].Type)
		}
	})

	t.Run("links methods to the enclosing class by indentation", func(t *testing.T) {
		path := writeTestFile(t, "test_sample.py", samplePython)

		tests, _ := parser.Discover(context.Background(), path)
		byName := make(map[string]RawTest)
		for _, raw := range tests {
			byName[raw.Name] = raw
		}

		divide := byName["test_divide"]
		if divide.Type != "method" || divide.Class != "TestCalc" {
			t.Errorf("test_divide should be a method of TestCalc, got type=%q class=%q", divide.Type, divide.Class)
		}
		// Helper is not a Test* class, so its method stays unlinked but the
		// trailing module-level function must not inherit TestCalc.
		tail := byName["test_tail"]
		if tail.Type != "function" {
			t.Errorf("test_tail should be a function, got %q", tail.Type)
		}
	})

	t.Run("marks async declarations", func(t *testing.T) {
		path := writeTestFile(t, "test_sample.py", samplePython)

		tests, _ := parser.Discover(context.Background(), path)
		for _, raw := range tests {
			if raw.Name == "test_fetch" {
				if !raw.Async {
					t.Error("test_fetch should be async")
				}
				return
			}
		}
		t.Error("expected to find test_fetch")
	})

	t.Run("returns empty list for unreadable file", func(t *testing.T) {
		tests, err := parser.Discover(context.Background(), "/non/existent/test_file.py")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tests) != 0 {
			t.Errorf("expected no tests, got %d", len(tests))
		}
	})
}
