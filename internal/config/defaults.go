package config

import "time"

const (
	// DefaultPythonPath is the interpreter used for structural parsing
	DefaultPythonPath = "python3"
	// DefaultPytestPath is the runner executable when no managed environment is used
	DefaultPytestPath = "pytest"
	// DefaultPoetryPath is the Poetry executable
	DefaultPoetryPath = "poetry"
	// DefaultSettingsFile is the per-workspace settings file name
	DefaultSettingsFile = "ptx.yaml"
	// DefaultEnvFile is the optional dotenv file consulted for overrides
	DefaultEnvFile = ".env"
	// DefaultOutputJSONFile is the saved inventory file name
	DefaultOutputJSONFile = "test-inventory.json"
	// DefaultOutputJSONDir is the directory the inventory is written under
	DefaultOutputJSONDir = ".ptx"
	// DefaultParseTimeout bounds one structural-parse subprocess
	DefaultParseTimeout = 5 * time.Second
	// DefaultEnvTimeout bounds one environment-manager subprocess
	DefaultEnvTimeout = 10 * time.Second
)

// DefaultSkipDirs are directories never descended into when scanning for test files
var DefaultSkipDirs = []string{
	"venv",
	".venv",
	"env",
	"node_modules",
	"__pycache__",
	".tox",
	".pytest_cache",
	"site-packages",
	"build",
	"dist",
}
