// Package shell runs bounded external commands. The Runner interface is the
// seam that lets discovery and environment detection be tested without
// spawning real subprocesses.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a single external invocation.
const DefaultTimeout = 5 * time.Second

// DefaultMaxOutput caps how much stdout/stderr is retained per invocation.
const DefaultMaxOutput = 4 << 20 // 4 MiB

// ErrTimeout is returned when a command exceeds its deadline.
var ErrTimeout = errors.New("shell: command timed out")

// Spec describes one external command invocation.
type Spec struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration // DefaultTimeout when zero
}

// Result is the outcome of a completed invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, spec Spec) (Result, error)
}

// ExecRunner runs commands through os/exec with a hard timeout and a bounded
// output buffer.
type ExecRunner struct {
	MaxOutput int
}

// NewExecRunner creates an ExecRunner with default output bounds.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{MaxOutput: DefaultMaxOutput}
}

// Run executes the command described by spec. A non-zero exit status is not an
// error: it is reported through Result.ExitCode so callers can treat expected
// failures as data. The returned error covers start failures, timeouts and
// context cancellation only.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) (Result, error) {
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir

	maxOut := r.MaxOutput
	if maxOut <= 0 {
		maxOut = DefaultMaxOutput
	}
	stdout := &boundedBuffer{limit: maxOut}
	stderr := &boundedBuffer{limit: maxOut}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctx.Err() == context.DeadlineExceeded {
		return result, ErrTimeout
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}

// boundedBuffer accepts writes up to limit bytes and silently discards the
// rest, so a pathological child process cannot grow memory without bound.
type boundedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buf.Len()
	if remaining > 0 {
		if len(p) > remaining {
			b.buf.Write(p[:remaining])
		} else {
			b.buf.Write(p)
		}
	}
	// Report full consumption so the child never sees a write error.
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	return b.buf.String()
}
