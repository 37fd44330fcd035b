package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ptx/internal/command"
	"ptx/internal/config"
	"ptx/internal/discovery"
	"ptx/internal/pyenv"
	"ptx/internal/ui"
)

// CommandCommand handles the command command: it resolves a test at a position
// or selection and prints the invocation that runs it.
type CommandCommand struct {
	config      *config.Config
	coordinator *discovery.Coordinator
	env         *pyenv.Resolver
	builder     *command.Builder
	formatter   *ui.Formatter
}

// NewCommandCommand creates a new CommandCommand
func NewCommandCommand(
	cfg *config.Config,
	coordinator *discovery.Coordinator,
	env *pyenv.Resolver,
	builder *command.Builder,
	formatter *ui.Formatter,
) *CommandCommand {
	return &CommandCommand{
		config:      cfg,
		coordinator: coordinator,
		env:         env,
		builder:     builder,
		formatter:   formatter,
	}
}

// Execute runs the command
func (cc *CommandCommand) Execute(cmd *cobra.Command, args []string) error {
	// Everything after -- is passed to pytest verbatim.
	var extraOptions []string
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		extraOptions = args[at:]
		args = args[:at]
	}
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one test file, got %d", len(args))
	}

	filePath, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	if !discovery.IsTestFile(filePath) {
		cc.formatter.PrintNonTestWarning(filePath)
	}

	tree, err := cc.coordinator.Discover(cmd.Context(), filePath)
	if err != nil {
		return err
	}
	selector := discovery.Resolve(tree, cc.config.Flags.Line, cc.config.Flags.Select)

	env := cc.env.Resolve(cmd.Context(), filePath)
	commandString, descriptor := cc.builder.Build(env, command.Target{
		FilePath: filePath,
		Selector: selector,
	}, extraOptions)

	if cc.config.Flags.Debug {
		data, err := json.MarshalIndent(descriptor, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal descriptor: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(commandString)
	return nil
}
