package domain

// Environment describes how the test runner should be invoked for a given file:
// which executable prefix starts the runner and from which directory. Produced
// fresh per invocation, never cached across files.
type Environment struct {
	// ExecutablePrefix is the command that starts the runner, e.g. "pytest" or
	// "/path/to/.venv/bin/pytest".
	ExecutablePrefix string
	// InterpreterPath is the python interpreter of the managed environment,
	// empty when unmanaged. Used by debug launch descriptors.
	InterpreterPath string
	// WorkingDirectory is where the runner should execute.
	WorkingDirectory string
	// Managed is true when a dependency-manager project (Poetry) was detected
	// and its environment is being used.
	Managed bool
}
