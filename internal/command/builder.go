// Package command synthesizes the exact pytest invocation for a resolved test
// entity, both as a shell command line and as a structured debug-launch
// descriptor.
package command

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ptx/internal/config"
	"ptx/internal/domain"
)

// Debug-only flags: keep captured output visible and traces short while
// stepping through a failure. Never added to the plain run command.
var debugFlags = []string{"-s", "--tb=short"}

// Target names what to run: a test file, optionally narrowed to one entity.
type Target struct {
	FilePath string
	Selector *domain.Selector // nil runs the whole file
}

// DebugDescriptor is the structured launch configuration mirroring the shell
// command, consumed by a debug adapter instead of a terminal.
type DebugDescriptor struct {
	Type            string   `json:"type"`
	Request         string   `json:"request"`
	Module          string   `json:"module"`
	Args            []string `json:"args"`
	Console         string   `json:"console"`
	Cwd             string   `json:"cwd"`
	InterpreterPath string   `json:"interpreterPath,omitempty"`
}

// Builder combines a target, a resolved environment and configured arguments
// into runnable invocations.
type Builder struct {
	cfg     *config.Config
	locator *Locator
	log     *zap.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(cfg *config.Config, locator *Locator, log *zap.Logger) *Builder {
	return &Builder{cfg: cfg, locator: locator, log: log}
}

// Build returns the shell command string and the equivalent debug descriptor
// for the target. One-off options are appended last, deduplicated with
// first-occurrence order.
func (b *Builder) Build(env domain.Environment, target Target, options []string) (string, DebugDescriptor) {
	args := b.runnerArgs(target, options)

	// The file path and the -k expression are always quoted; pytest keyword
	// expressions contain spaces by construction.
	parts := []string{env.ExecutablePrefix}
	for i, arg := range args {
		if i == 0 || (i > 0 && args[i-1] == "-k") {
			parts = append(parts, quote(arg))
		} else {
			parts = append(parts, quoteArg(arg))
		}
	}
	commandString := strings.Join(parts, " ")

	descriptor := DebugDescriptor{
		Type:            "python",
		Request:         "launch",
		Module:          "pytest",
		Args:            append(append([]string{}, args...), debugFlags...),
		Console:         "integratedTerminal",
		Cwd:             env.WorkingDirectory,
		InterpreterPath: env.InterpreterPath,
	}
	return commandString, descriptor
}

// runnerArgs assembles the argument list shared by both invocation forms:
// file path, selection expression, config file, configured defaults, one-off
// options.
func (b *Builder) runnerArgs(target Target, options []string) []string {
	args := []string{target.FilePath}

	if expr := selectionExpr(target.Selector); expr != "" {
		args = append(args, "-k", expr)
	}
	if configFile := b.locator.Locate(target.FilePath); configFile != "" {
		args = append(args, "-c", configFile)
	}
	args = append(args, b.cfg.PytestArgs...)
	args = append(args, dedupe(options)...)
	return args
}

// selectionExpr translates a selector into pytest's keyword-based selection.
// pytest -k matches names by keyword, so a Class::method selector becomes the
// conjunction "Class and method" rather than a path-style expression.
func selectionExpr(selector *domain.Selector) string {
	if selector == nil || selector.QualifiedName == "" {
		return ""
	}
	class, name := selector.Split()
	if class != "" {
		return fmt.Sprintf("%s and %s", class, name)
	}
	return name
}

// dedupe collapses repeated options, keeping first-occurrence order.
func dedupe(options []string) []string {
	if len(options) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(options))
	var unique []string
	for _, opt := range options {
		if seen[opt] {
			continue
		}
		seen[opt] = true
		unique = append(unique, opt)
	}
	return unique
}

// quote always wraps the argument in double quotes.
func quote(arg string) string {
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}

// quoteArg quotes an argument only when it contains whitespace or characters
// the shell would interpret.
func quoteArg(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t\"'$&|<>();") {
		return arg
	}
	return quote(arg)
}
