package command

import (
	"os"
	"path/filepath"
	"strings"

	"ptx/internal/config"
)

// Runner-config files in precedence order. pyproject.toml and setup.cfg only
// count when they actually carry a pytest section.
const (
	iniFile       = "pytest.ini"
	projectFile   = "pyproject.toml"
	setupCfgFile  = "setup.cfg"
	projectMarker = "[tool.pytest.ini_options]"
	setupMarker   = "[tool:pytest]"
)

// Locator resolves the runner configuration file to pass on the command line.
// An explicit override always wins over auto-discovery.
type Locator struct {
	cfg *config.Config
}

// NewLocator creates a Locator.
func NewLocator(cfg *config.Config) *Locator {
	return &Locator{cfg: cfg}
}

// Locate returns the config file path for the given test file, or "" when
// none applies.
func (l *Locator) Locate(testFilePath string) string {
	if override := l.cfg.ConfigPath.Resolve(testFilePath); override != "" {
		if filepath.IsAbs(override) {
			return override
		}
		return filepath.Join(l.cfg.WorkspaceRoot, override)
	}

	root := l.cfg.WorkspaceRoot
	if path := filepath.Join(root, iniFile); fileExists(path) {
		return path
	}
	if path := filepath.Join(root, projectFile); fileContains(path, projectMarker) {
		return path
	}
	if path := filepath.Join(root, setupCfgFile); fileContains(path, setupMarker) {
		return path
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func fileContains(path, marker string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), marker)
}
