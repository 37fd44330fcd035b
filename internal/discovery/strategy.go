package discovery

import (
	"context"
	"path/filepath"
	"strings"
)

// RawTest is one flat entry emitted by a parse strategy, before tree
// normalization. The field set mirrors the structural parser's JSON contract;
// everything except Name and Type is optional.
type RawTest struct {
	Name         string   `json:"name"`
	Line         int      `json:"line"`
	EndLine      int      `json:"end_line,omitempty"`
	Type         string   `json:"type"` // "function", "method" or "class"
	Class        string   `json:"class,omitempty"`
	FullName     string   `json:"full_name,omitempty"`
	Parametrized bool     `json:"parametrized,omitempty"`
	Async        bool     `json:"async,omitempty"`
	Fixtures     []string `json:"fixtures,omitempty"`
}

// Strategy is one way of extracting test declarations from a file. Strategies
// are tried in order by the Coordinator until one succeeds with non-empty
// output. A returned error means the strategy was unavailable or its output
// unusable; it is recovered by falling through, never surfaced.
type Strategy interface {
	Name() string
	Discover(ctx context.Context, filePath string) ([]RawTest, error)
}

// IsTestFile reports whether the file name follows the pytest test-file
// convention: a .py file named test_*.py or *_test.py, or containing "test".
func IsTestFile(path string) bool {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".py") {
		return false
	}
	stem := strings.TrimSuffix(base, ".py")
	if strings.HasPrefix(stem, "test_") || strings.HasSuffix(stem, "_test") {
		return true
	}
	return strings.Contains(strings.ToLower(stem), "test")
}
