package command

import (
	"os"
	"path/filepath"
	"testing"

	"ptx/internal/config"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLocator_Locate(t *testing.T) {
	t.Run("pytest.ini wins over other config files", func(t *testing.T) {
		root := t.TempDir()
		write(t, filepath.Join(root, "pytest.ini"), "[pytest]\n")
		write(t, filepath.Join(root, "pyproject.toml"), "[tool.pytest.ini_options]\n")
		write(t, filepath.Join(root, "setup.cfg"), "[tool:pytest]\n")

		locator := NewLocator(config.New(root))
		if got := locator.Locate("/proj/test_calc.py"); got != filepath.Join(root, "pytest.ini") {
			t.Errorf("expected pytest.ini, got %s", got)
		}
	})

	t.Run("pyproject.toml needs the pytest section", func(t *testing.T) {
		root := t.TempDir()
		write(t, filepath.Join(root, "pyproject.toml"), "[tool.poetry]\n")
		write(t, filepath.Join(root, "setup.cfg"), "[tool:pytest]\naddopts = -q\n")

		locator := NewLocator(config.New(root))
		if got := locator.Locate("/proj/test_calc.py"); got != filepath.Join(root, "setup.cfg") {
			t.Errorf("expected setup.cfg, got %s", got)
		}
	})

	t.Run("pyproject.toml with the section is used", func(t *testing.T) {
		root := t.TempDir()
		write(t, filepath.Join(root, "pyproject.toml"), "[tool.pytest.ini_options]\naddopts = -q\n")

		locator := NewLocator(config.New(root))
		if got := locator.Locate("/proj/test_calc.py"); got != filepath.Join(root, "pyproject.toml") {
			t.Errorf("expected pyproject.toml, got %s", got)
		}
	})

	t.Run("no config file yields empty", func(t *testing.T) {
		locator := NewLocator(config.New(t.TempDir()))
		if got := locator.Locate("/proj/test_calc.py"); got != "" {
			t.Errorf("expected empty, got %s", got)
		}
	})

	t.Run("explicit override beats discovery", func(t *testing.T) {
		root := t.TempDir()
		write(t, filepath.Join(root, "pytest.ini"), "[pytest]\n")
		cfg := config.New(root)
		cfg.ConfigPath = config.PathOverride{Path: "custom.ini"}

		locator := NewLocator(cfg)
		if got := locator.Locate("/proj/test_calc.py"); got != filepath.Join(root, "custom.ini") {
			t.Errorf("expected override, got %s", got)
		}
	})

	t.Run("glob override picks the most specific pattern", func(t *testing.T) {
		cfg := config.New(t.TempDir())
		cfg.ConfigPath = config.PathOverride{Patterns: map[string]string{
			"test_*":      "/cfg/generic.ini",
			"test_user_*": "/cfg/user.ini",
		}}

		locator := NewLocator(cfg)
		if got := locator.Locate("/proj/test_user_login.py"); got != "/cfg/user.ini" {
			t.Errorf("expected the specific pattern, got %s", got)
		}
		if got := locator.Locate("/proj/test_calc.py"); got != "/cfg/generic.ini" {
			t.Errorf("expected the generic pattern, got %s", got)
		}
	})
}
