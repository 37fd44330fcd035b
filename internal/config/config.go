package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// WorkspaceRoot is the project root all relative paths resolve against
	WorkspaceRoot string

	// Executables
	PythonPath string // interpreter for the structural-parse script
	PytestPath string // runner executable when unmanaged
	PoetryPath string // environment-manager executable
	ScriptPath string // structural-parse companion script

	// Managed-environment settings
	UsePoetry     bool
	CustomEnvPath string // explicit virtualenv path, bypasses detection

	// Runner arguments appended to every command, in order
	PytestArgs []string

	// Runner-config resolution override (exact path or glob-keyed mapping)
	ConfigPath PathOverride

	// File selection for workspace scans
	IncludeGlobs []string
	ExcludeGlobs []string
	SkipDirs     []string

	// SwitchWorkingDirectory runs the command from the detected project
	// directory instead of the workspace root
	SwitchWorkingDirectory bool

	// Timeouts for external processes
	ParseTimeout time.Duration
	EnvTimeout   time.Duration

	// Inventory output location
	OutputJSONDir  string
	OutputJSONFile string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Line       int
	Select     string
	Debug      bool
	JSON       bool
	ScanPath   string
	NameFilter string
	NoPoetry   bool
}

// settingsFile mirrors the YAML shape of ptx.yaml.
type settingsFile struct {
	Python     string       `yaml:"python"`
	Pytest     string       `yaml:"pytest"`
	Poetry     string       `yaml:"poetry"`
	UsePoetry  *bool        `yaml:"use_poetry"`
	EnvPath    string       `yaml:"env_path"`
	PytestArgs []string     `yaml:"pytest_args"`
	ConfigPath PathOverride `yaml:"config_path"`
	Include    []string     `yaml:"include"`
	Exclude    []string     `yaml:"exclude"`
	SkipDirs   []string     `yaml:"skip_dirs"`
	SwitchCwd  *bool        `yaml:"switch_working_directory"`
}

// New creates a new Config with defaults rooted at the given workspace.
func New(root string) *Config {
	cfg := &Config{
		WorkspaceRoot:  root,
		PythonPath:     DefaultPythonPath,
		PytestPath:     DefaultPytestPath,
		PoetryPath:     DefaultPoetryPath,
		UsePoetry:      true,
		ParseTimeout:   DefaultParseTimeout,
		EnvTimeout:     DefaultEnvTimeout,
		OutputJSONDir:  DefaultOutputJSONDir,
		OutputJSONFile: DefaultOutputJSONFile,
	}
	cfg.SkipDirs = make([]string, len(DefaultSkipDirs))
	copy(cfg.SkipDirs, DefaultSkipDirs)
	return cfg
}

// Load creates a config for the workspace root, layering the optional ptx.yaml
// settings file and .env overrides on top of the defaults, then the flags.
func Load(root string, flags Flags) (*Config, error) {
	cfg := New(root)
	cfg.Flags = flags

	if err := cfg.applySettingsFile(filepath.Join(root, DefaultSettingsFile)); err != nil {
		return nil, err
	}
	cfg.applyEnvFile(filepath.Join(root, DefaultEnvFile))

	if flags.NoPoetry {
		cfg.UsePoetry = false
	}
	return cfg, nil
}

// applySettingsFile merges ptx.yaml into the config. A missing file is fine;
// an unparseable one is a real configuration error.
func (c *Config) applySettingsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read settings %s: %w", path, err)
	}
	var s settingsFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse settings %s: %w", path, err)
	}

	if s.Python != "" {
		c.PythonPath = s.Python
	}
	if s.Pytest != "" {
		c.PytestPath = s.Pytest
	}
	if s.Poetry != "" {
		c.PoetryPath = s.Poetry
	}
	if s.UsePoetry != nil {
		c.UsePoetry = *s.UsePoetry
	}
	if s.EnvPath != "" {
		c.CustomEnvPath = s.EnvPath
	}
	if len(s.PytestArgs) > 0 {
		c.PytestArgs = s.PytestArgs
	}
	if !s.ConfigPath.IsZero() {
		c.ConfigPath = s.ConfigPath
	}
	if len(s.Include) > 0 {
		c.IncludeGlobs = s.Include
	}
	if len(s.Exclude) > 0 {
		c.ExcludeGlobs = s.Exclude
	}
	if len(s.SkipDirs) > 0 {
		c.SkipDirs = s.SkipDirs
	}
	if s.SwitchCwd != nil {
		c.SwitchWorkingDirectory = *s.SwitchCwd
	}
	return nil
}

// applyEnvFile loads overrides from a dotenv file, if present. Values already
// set in the process environment win over the file.
func (c *Config) applyEnvFile(path string) {
	_ = godotenv.Load(path) // optional

	if v := os.Getenv("PTX_PYTHON"); v != "" {
		c.PythonPath = v
	}
	if v := os.Getenv("PTX_PYTEST"); v != "" {
		c.PytestPath = v
	}
	if v := os.Getenv("PTX_POETRY"); v != "" {
		c.PoetryPath = v
	}
	if v := os.Getenv("PTX_ENV_PATH"); v != "" {
		c.CustomEnvPath = v
	}
}

// GetScanPath returns the directory a scan starts from, using the flag if set.
func (c *Config) GetScanPath() string {
	if c.Flags.ScanPath != "" {
		if filepath.IsAbs(c.Flags.ScanPath) {
			return c.Flags.ScanPath
		}
		return filepath.Join(c.WorkspaceRoot, c.Flags.ScanPath)
	}
	return c.WorkspaceRoot
}

// GetOutputPath returns the absolute path of the saved inventory JSON file.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.WorkspaceRoot, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetScriptPath returns the structural-parse script location, defaulting to the
// bundled scripts/ast_parser.py next to the workspace settings.
func (c *Config) GetScriptPath() string {
	if c.ScriptPath != "" {
		return c.ScriptPath
	}
	return filepath.Join(c.WorkspaceRoot, "scripts", "ast_parser.py")
}
