package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ptx/internal/cli"
	"ptx/internal/cli/commands"
	"ptx/internal/config"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "ptx",
		Short:   "pytest test discovery and run-command engine",
		Long:    `Discover the tests declared in Python files and synthesize the exact pytest invocation (or debug launch descriptor) that runs any one of them, honoring Poetry-managed environments and project pytest configuration.`,
		Version: version,
	}

	workspaceRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var flags cli.Flags
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug diagnostics")

	cfg, err := config.Load(workspaceRoot, config.Flags{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(&flags)
	defer log.Sync()

	cmds := commands.NewCommands(cfg, log)
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the diagnostic logger. Warnings and above always reach
// stderr; --verbose turns on debug output from the parsers and resolvers.
func newLogger(flags *cli.Flags) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	// Flags are parsed by cobra after logger construction; re-check lazily.
	cobra.OnInitialize(func() {
		if flags.Verbose {
			level.SetLevel(zap.DebugLevel)
		}
	})
	return log
}
