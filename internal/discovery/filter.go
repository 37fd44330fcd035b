package discovery

import (
	"path/filepath"
	"strings"
)

// Filter narrows a scanned file list by inclusion/exclusion globs and by a
// user-supplied name pattern.
type Filter struct {
	include []string
	exclude []string
}

// NewFilter creates a Filter with the configured include/exclude glob sets.
// An empty include set means every test file is eligible.
func NewFilter(include, exclude []string) *Filter {
	return &Filter{include: include, exclude: exclude}
}

// Apply keeps files that match the include globs (if any) and drops files
// matching any exclude glob. Globs match against both the full path and the
// base name.
func (f *Filter) Apply(files []string) []string {
	if len(f.include) == 0 && len(f.exclude) == 0 {
		return files
	}
	var kept []string
	for _, file := range files {
		if len(f.include) > 0 && !matchesAny(f.include, file) {
			continue
		}
		if matchesAny(f.exclude, file) {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}

// FilterByName filters files by a wildcard pattern against the base name.
// A pattern without wildcards matches as a substring.
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string
	for _, file := range files {
		name := filepath.Base(file)

		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			filtered = append(filtered, file)
			continue
		}

		if strings.ContainsAny(pattern, "*?") {
			if looseWildcardMatch(pattern, name) {
				filtered = append(filtered, file)
			}
			continue
		}

		if strings.Contains(name, pattern) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

func matchesAny(globs []string, file string) bool {
	base := filepath.Base(file)
	for _, g := range globs {
		if ok, _ := filepath.Match(g, file); ok {
			return true
		}
		if ok, _ := filepath.Match(g, base); ok {
			return true
		}
	}
	return false
}

// looseWildcardMatch treats a wildcard pattern as an ordered substring check,
// so "*payment*" matches anywhere in the name.
func looseWildcardMatch(pattern, name string) bool {
	parts := strings.Split(pattern, "*")
	hasNonEmpty := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasNonEmpty = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasNonEmpty
}
