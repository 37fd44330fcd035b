package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ptx/internal/shell"
)

// astReport is the JSON object the companion script prints on stdout.
type astReport struct {
	Tests   []RawTest `json:"tests"`
	File    string    `json:"file"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// StructuralParser extracts test declarations by running the companion AST
// script through an external Python interpreter. It owns no fallback logic:
// any failure is reported to the caller as an error and recovered there.
type StructuralParser struct {
	python  string
	script  string
	timeout time.Duration
	runner  shell.Runner
	log     *zap.Logger
}

// NewStructuralParser creates a StructuralParser that invokes the given
// interpreter with the given script.
func NewStructuralParser(python, script string, timeout time.Duration, runner shell.Runner, log *zap.Logger) *StructuralParser {
	if timeout <= 0 {
		timeout = shell.DefaultTimeout
	}
	return &StructuralParser{
		python:  python,
		script:  script,
		timeout: timeout,
		runner:  runner,
		log:     log,
	}
}

// Name identifies the strategy in diagnostics.
func (p *StructuralParser) Name() string { return "structural" }

// Discover runs the AST script against the file and decodes its inventory.
func (p *StructuralParser) Discover(ctx context.Context, filePath string) ([]RawTest, error) {
	result, err := p.runner.Run(ctx, shell.Spec{
		Name:    p.python,
		Args:    []string{p.script, filePath},
		Timeout: p.timeout,
	})
	if err != nil {
		p.log.Debug("structural parse unavailable",
			zap.String("file", filePath), zap.Error(err))
		return nil, fmt.Errorf("run %s: %w", p.python, err)
	}
	if result.ExitCode != 0 {
		p.log.Debug("structural parse failed",
			zap.String("file", filePath),
			zap.Int("exit", result.ExitCode),
			zap.String("stderr", strings.TrimSpace(result.Stderr)))
		return nil, fmt.Errorf("parser exited with status %d", result.ExitCode)
	}

	var report astReport
	if err := json.Unmarshal([]byte(result.Stdout), &report); err != nil {
		p.log.Debug("structural parse output malformed",
			zap.String("file", filePath), zap.Error(err))
		return nil, fmt.Errorf("decode parser output: %w", err)
	}
	if !report.Success {
		return nil, fmt.Errorf("parser reported failure: %s", report.Error)
	}
	return report.Tests, nil
}
