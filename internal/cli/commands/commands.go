package commands

import (
	"ptx/internal/cli"
	"ptx/internal/command"
	"ptx/internal/config"
	"ptx/internal/discovery"
	"ptx/internal/pyenv"
	"ptx/internal/shell"
	"ptx/internal/storage"
	"ptx/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Commands holds all CLI commands
type Commands struct {
	Discover *DiscoverCommand
	Command  *CommandCommand
	Scan     *ScanCommand
	Browse   *BrowseCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, log *zap.Logger) *Commands {
	runner := shell.NewExecRunner()
	structural := discovery.NewStructuralParser(
		cfg.PythonPath, cfg.GetScriptPath(), cfg.ParseTimeout, runner, log)
	pattern := discovery.NewPatternParser(log)
	coordinator := discovery.NewCoordinator(
		[]discovery.Strategy{structural, pattern},
		discovery.NewCache(), nil, log)

	scanner := discovery.NewScanner(cfg.SkipDirs)
	filter := discovery.NewFilter(cfg.IncludeGlobs, cfg.ExcludeGlobs)
	envResolver := pyenv.NewResolver(cfg, runner, log)
	locator := command.NewLocator(cfg)
	builder := command.NewBuilder(cfg, locator, log)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()

	return &Commands{
		Discover: NewDiscoverCommand(cfg, coordinator, formatter),
		Command:  NewCommandCommand(cfg, coordinator, envResolver, builder, formatter),
		Scan:     NewScanCommand(cfg, scanner, filter, coordinator, jsonStorage, formatter),
		Browse:   NewBrowseCommand(cfg, jsonStorage, envResolver, builder),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		if flags.NoPoetry {
			cfg.UsePoetry = false
		}
		return nil
	}

	// Discover command
	discoverCmd := &cobra.Command{
		Use:     "discover <file>",
		Short:   "List the tests declared in a file",
		Long:    "Parse a test file and print its test classes, functions and methods as a tree",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Discover.Execute,
		PreRunE: applyFlags,
	}
	discoverCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the entity tree as JSON")
	rootCmd.AddCommand(discoverCmd)

	// Command command
	commandCmd := &cobra.Command{
		Use:   "command <file> [-- extra pytest args]",
		Short: "Print the pytest invocation for a test",
		Long: "Resolve the most specific test at a cursor position or selection and print " +
			"the exact pytest command (or debug launch descriptor) that runs it",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.Command.Execute,
		PreRunE: applyFlags,
	}
	commandCmd.Flags().IntVarP(&flags.Line, "line", "l", 0, "Cursor line to resolve a test at (1-based)")
	commandCmd.Flags().StringVarP(&flags.Select, "select", "s", "", "Explicit selection used verbatim as the test name")
	commandCmd.Flags().BoolVarP(&flags.Debug, "debug", "d", false, "Print the debug launch descriptor instead of the shell command")
	commandCmd.Flags().BoolVar(&flags.NoPoetry, "no-poetry", false, "Ignore Poetry projects and use the plain pytest executable")
	rootCmd.AddCommand(commandCmd)

	// Scan command
	scanCmd := &cobra.Command{
		Use:     "scan [path]",
		Short:   "Discover every test under a directory",
		Long:    "Walk a workspace for test files, parse them in parallel and save the inventory",
		Args: cobra.MaximumNArgs(1),
		RunE: c.Scan.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			c.Scan.SetWorkers(flags.Workers)
			return applyFlags(cmd, args)
		},
	}
	scanCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g. 'test_user*' or '*payment*')")
	scanCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 4, "Number of parallel parse workers")
	rootCmd.AddCommand(scanCmd)

	// Browse command
	browseCmd := &cobra.Command{
		Use:     "browse",
		Short:   "Browse the saved test inventory interactively",
		Long:    "Open the last scanned inventory in an interactive viewer with per-test run commands",
		RunE:    c.Browse.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(browseCmd)
}
