package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"ptx/internal/config"
	"ptx/internal/domain"
)

func newBuilder(t *testing.T) (*Builder, *config.Config) {
	t.Helper()
	cfg := config.New(t.TempDir())
	return NewBuilder(cfg, NewLocator(cfg), zap.NewNop()), cfg
}

func plainEnv() domain.Environment {
	return domain.Environment{
		ExecutablePrefix: "pytest",
		WorkingDirectory: "/proj",
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Run("bare function selector", func(t *testing.T) {
		b, _ := newBuilder(t)

		cmd, _ := b.Build(plainEnv(), Target{
			FilePath: "/proj/calc_test.py",
			Selector: &domain.Selector{QualifiedName: "test_add", Kind: domain.KindFunction},
		}, nil)

		want := `pytest "/proj/calc_test.py" -k "test_add"`
		if cmd != want {
			t.Errorf("expected %q, got %q", want, cmd)
		}
	})

	t.Run("method selector becomes a keyword conjunction", func(t *testing.T) {
		b, _ := newBuilder(t)

		cmd, _ := b.Build(plainEnv(), Target{
			FilePath: "/proj/calc_test.py",
			Selector: &domain.Selector{QualifiedName: "TestCalc::test_divide", Kind: domain.KindMethod},
		}, nil)

		if !strings.Contains(cmd, `-k "TestCalc and test_divide"`) {
			t.Errorf("expected keyword conjunction, got %q", cmd)
		}
		if strings.Contains(cmd, `-k "TestCalc::test_divide"`) {
			t.Error("selector separator must not leak into the keyword expression")
		}
	})

	t.Run("no selector runs the whole file", func(t *testing.T) {
		b, _ := newBuilder(t)

		cmd, _ := b.Build(plainEnv(), Target{FilePath: "/proj/calc_test.py"}, nil)
		if strings.Contains(cmd, "-k") {
			t.Errorf("whole-file run should have no selection, got %q", cmd)
		}
	})

	t.Run("configured defaults come before one-off options", func(t *testing.T) {
		b, cfg := newBuilder(t)
		cfg.PytestArgs = []string{"-x", "--no-header"}

		cmd, _ := b.Build(plainEnv(), Target{FilePath: "/proj/calc_test.py"}, []string{"--cov"})

		wantSuffix := `-x --no-header --cov`
		if !strings.HasSuffix(cmd, wantSuffix) {
			t.Errorf("expected suffix %q, got %q", wantSuffix, cmd)
		}
	})

	t.Run("one-off options are deduplicated order-stably", func(t *testing.T) {
		b, _ := newBuilder(t)

		cmd, _ := b.Build(plainEnv(), Target{FilePath: "/proj/calc_test.py"},
			[]string{"--cov", "-q", "--cov"})

		if strings.Count(cmd, "--cov") != 1 {
			t.Errorf("expected --cov once, got %q", cmd)
		}
		if !strings.HasSuffix(cmd, "--cov -q") {
			t.Errorf("expected first-occurrence order, got %q", cmd)
		}
	})

	t.Run("managed environment prefix is used verbatim", func(t *testing.T) {
		b, _ := newBuilder(t)
		env := domain.Environment{
			ExecutablePrefix: "/venvs/pkg/bin/pytest",
			InterpreterPath:  "/venvs/pkg/bin/python",
			WorkingDirectory: "/proj",
			Managed:          true,
		}

		cmd, descriptor := b.Build(env, Target{FilePath: "/proj/calc_test.py"}, nil)
		if !strings.HasPrefix(cmd, "/venvs/pkg/bin/pytest ") {
			t.Errorf("expected venv prefix, got %q", cmd)
		}
		if descriptor.InterpreterPath != "/venvs/pkg/bin/python" {
			t.Errorf("descriptor should carry the interpreter, got %q", descriptor.InterpreterPath)
		}
	})

	t.Run("discovered config file is appended", func(t *testing.T) {
		b, cfg := newBuilder(t)
		iniPath := filepath.Join(cfg.WorkspaceRoot, "pytest.ini")
		if err := os.WriteFile(iniPath, []byte("[pytest]\n"), 0644); err != nil {
			t.Fatalf("failed to write pytest.ini: %v", err)
		}

		cmd, _ := b.Build(plainEnv(), Target{FilePath: "/proj/calc_test.py"}, nil)
		if !strings.Contains(cmd, fmt.Sprintf("-c %s", iniPath)) {
			t.Errorf("expected config file argument, got %q", cmd)
		}
	})
}

func TestBuilder_DebugDescriptor(t *testing.T) {
	t.Run("mirrors the selection and adds debug flags", func(t *testing.T) {
		b, _ := newBuilder(t)

		cmd, descriptor := b.Build(plainEnv(), Target{
			FilePath: "/proj/calc_test.py",
			Selector: &domain.Selector{QualifiedName: "TestCalc::test_divide", Kind: domain.KindMethod},
		}, nil)

		if descriptor.Type != "python" || descriptor.Request != "launch" || descriptor.Module != "pytest" {
			t.Errorf("unexpected launch shape: %+v", descriptor)
		}
		if descriptor.Cwd != "/proj" {
			t.Errorf("expected cwd /proj, got %q", descriptor.Cwd)
		}

		joined := strings.Join(descriptor.Args, " ")
		if !strings.Contains(joined, "-k TestCalc and test_divide") {
			t.Errorf("descriptor args missing selection: %v", descriptor.Args)
		}
		for _, flag := range []string{"-s", "--tb=short"} {
			if !strings.Contains(joined, flag) {
				t.Errorf("descriptor args missing %s: %v", flag, descriptor.Args)
			}
			if strings.Contains(cmd, flag) {
				t.Errorf("debug flag %s must not appear in the run command %q", flag, cmd)
			}
		}
	})

	t.Run("debug flags come last", func(t *testing.T) {
		b, _ := newBuilder(t)

		_, descriptor := b.Build(plainEnv(), Target{FilePath: "/proj/calc_test.py"}, []string{"--cov"})
		n := len(descriptor.Args)
		if n < 3 || descriptor.Args[n-2] != "-s" || descriptor.Args[n-1] != "--tb=short" {
			t.Errorf("expected trailing debug flags, got %v", descriptor.Args)
		}
	})
}
