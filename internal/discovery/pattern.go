package discovery

import (
	"bufio"
	"context"
	"os"
	"regexp"

	"go.uber.org/zap"
)

// Conservative declaration patterns for the pytest naming convention. The
// pattern path intentionally recognizes strictly less than the structural one:
// no decorators, no fixtures, no entity extents.
var (
	patternFunc     = regexp.MustCompile(`^(\s*)(async\s+)?def\s+(test\w*)\s*\(`)
	patternClass    = regexp.MustCompile(`^(\s*)class\s+(Test\w*)\s*[:(]`)
	patternAnyClass = regexp.MustCompile(`^(\s*)class\s+\w+`)
)

// PatternParser is the dependency-free fallback: a line scan that keeps simple
// test declarations discoverable when the structural path is unavailable.
// Class membership is inferred from indentation adjacency only.
type PatternParser struct {
	log *zap.Logger
}

// NewPatternParser creates a PatternParser.
func NewPatternParser(log *zap.Logger) *PatternParser {
	return &PatternParser{log: log}
}

// Name identifies the strategy in diagnostics.
func (p *PatternParser) Name() string { return "pattern" }

// Discover scans file lines for test declarations. It never fails: an
// unreadable file yields an empty list.
func (p *PatternParser) Discover(ctx context.Context, filePath string) ([]RawTest, error) {
	f, err := os.Open(filePath)
	if err != nil {
		p.log.Debug("pattern parse skipped", zap.String("file", filePath), zap.Error(err))
		return nil, nil
	}
	defer f.Close()

	var tests []RawTest
	var currentClass string
	classIndent := -1

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if m := patternClass.FindStringSubmatch(line); m != nil && m[2] != "Test" {
			currentClass = m[2]
			classIndent = len(m[1])
			tests = append(tests, RawTest{
				Name:     currentClass,
				Line:     lineNo,
				Type:     "class",
				FullName: currentClass,
			})
			continue
		}
		if patternAnyClass.MatchString(line) {
			// Any other class declaration ends the previous class scope, so
			// its methods are not misattributed by adjacency.
			currentClass = ""
			classIndent = -1
			continue
		}

		if m := patternFunc.FindStringSubmatch(line); m != nil {
			indent := len(m[1])
			name := m[3]
			raw := RawTest{
				Name:  name,
				Line:  lineNo,
				Async: m[2] != "",
			}
			if currentClass != "" && indent > classIndent {
				raw.Type = "method"
				raw.Class = currentClass
				raw.FullName = currentClass + "::" + name
			} else {
				raw.Type = "function"
				raw.FullName = name
				currentClass = ""
				classIndent = -1
			}
			tests = append(tests, raw)
		}
	}
	if err := scanner.Err(); err != nil {
		p.log.Debug("pattern parse truncated", zap.String("file", filePath), zap.Error(err))
	}
	return tests, nil
}
