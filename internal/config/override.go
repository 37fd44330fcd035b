package config

import (
	"fmt"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// PathOverride is a runner-config override that is either a single path applied
// to every file, or a mapping from file glob to path where the most specific
// (longest) matching pattern wins.
type PathOverride struct {
	Path     string
	Patterns map[string]string
}

// IsZero reports whether no override was configured.
func (o PathOverride) IsZero() bool {
	return o.Path == "" && len(o.Patterns) == 0
}

// Resolve returns the override path for the given test file, or "" when the
// override does not apply to it.
func (o PathOverride) Resolve(filePath string) string {
	if o.Path != "" {
		return o.Path
	}
	if len(o.Patterns) == 0 {
		return ""
	}

	// Longest pattern first so "tests/unit/*.py" beats "tests/*".
	patterns := make([]string, 0, len(o.Patterns))
	for p := range o.Patterns {
		patterns = append(patterns, p)
	}
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i]) != len(patterns[j]) {
			return len(patterns[i]) > len(patterns[j])
		}
		return patterns[i] < patterns[j]
	})

	base := filepath.Base(filePath)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, filePath); ok {
			return o.Patterns[p]
		}
		if ok, _ := filepath.Match(p, base); ok {
			return o.Patterns[p]
		}
	}
	return ""
}

// UnmarshalYAML accepts either a scalar path or a glob->path mapping.
func (o *PathOverride) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&o.Path)
	case yaml.MappingNode:
		return node.Decode(&o.Patterns)
	default:
		return fmt.Errorf("config_path must be a path or a pattern mapping")
	}
}
