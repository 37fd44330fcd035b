// Package pyenv detects how a project's test runner should be executed:
// through a Poetry-managed virtualenv when one exists, or the plain pytest
// executable otherwise.
package pyenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"ptx/internal/config"
	"ptx/internal/domain"
	"ptx/internal/shell"
)

// manifestFile is the project manifest that signals a managed project.
const manifestFile = "pyproject.toml"

// poetrySection is the marker section inside the manifest.
const poetrySection = "[tool.poetry]"

// Resolver produces an Environment for an active file. Detection walks upward
// from the file toward the workspace root; results are deterministic for a
// fixed filesystem state and every external call is bounded by a timeout.
type Resolver struct {
	cfg    *config.Config
	runner shell.Runner
	log    *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(cfg *config.Config, runner shell.Runner, log *zap.Logger) *Resolver {
	return &Resolver{cfg: cfg, runner: runner, log: log}
}

// Resolve determines the runner invocation for the given file. Expected
// failures (no manifest, Poetry missing or timing out) fall back to the plain
// executable and are reported only as diagnostics.
func (r *Resolver) Resolve(ctx context.Context, activeFilePath string) domain.Environment {
	unmanaged := domain.Environment{
		ExecutablePrefix: r.cfg.PytestPath,
		WorkingDirectory: r.cfg.WorkspaceRoot,
	}

	if r.cfg.CustomEnvPath != "" {
		return r.environmentFromVenv(r.cfg.CustomEnvPath, r.cfg.WorkspaceRoot)
	}
	if !r.cfg.UsePoetry {
		return unmanaged
	}

	projectDir, ok := r.findPoetryProject(activeFilePath)
	if !ok {
		return unmanaged
	}

	workDir := r.cfg.WorkspaceRoot
	if r.cfg.SwitchWorkingDirectory {
		workDir = projectDir
	}

	venv, err := r.queryEnvPath(ctx, projectDir)
	if err != nil {
		r.log.Warn("poetry environment lookup failed, using plain executable",
			zap.String("project", projectDir), zap.Error(err))
		unmanaged.WorkingDirectory = workDir
		return unmanaged
	}
	return r.environmentFromVenv(venv, workDir)
}

// findPoetryProject walks from the file's directory up to the workspace root
// (inclusive) and returns the first directory whose manifest carries the
// Poetry section.
func (r *Resolver) findPoetryProject(activeFilePath string) (string, bool) {
	root := filepath.Clean(r.cfg.WorkspaceRoot)
	dir := filepath.Dir(filepath.Clean(activeFilePath))

	for {
		if hasPoetrySection(filepath.Join(dir, manifestFile)) {
			return dir, true
		}
		if dir == root {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

// queryEnvPath asks Poetry for the virtualenv path of the project.
func (r *Resolver) queryEnvPath(ctx context.Context, projectDir string) (string, error) {
	result, err := r.runner.Run(ctx, shell.Spec{
		Name:    r.cfg.PoetryPath,
		Args:    []string{"env", "info", "--path"},
		Dir:     projectDir,
		Timeout: r.cfg.EnvTimeout,
	})
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("poetry exited with status %d", result.ExitCode)
	}
	venv := strings.TrimSpace(result.Stdout)
	if venv == "" {
		return "", fmt.Errorf("poetry returned no environment path")
	}
	return venv, nil
}

func (r *Resolver) environmentFromVenv(venv, workDir string) domain.Environment {
	return domain.Environment{
		ExecutablePrefix: filepath.Join(venv, binDir(), "pytest"),
		InterpreterPath:  filepath.Join(venv, binDir(), pythonExe()),
		WorkingDirectory: workDir,
		Managed:          true,
	}
}

// hasPoetrySection reports whether the manifest exists and contains the Poetry
// marker section. An unreadable manifest counts as absent.
func hasPoetrySection(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), poetrySection)
}

func binDir() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

func pythonExe() string {
	if runtime.GOOS == "windows" {
		return "python.exe"
	}
	return "python"
}
