package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ptx/internal/config"
	"ptx/internal/discovery"
	"ptx/internal/domain"
	"ptx/internal/storage"
	"ptx/internal/ui"
)

// ScanCommand handles the scan command
type ScanCommand struct {
	config      *config.Config
	scanner     *discovery.Scanner
	filter      *discovery.Filter
	coordinator *discovery.Coordinator
	storage     storage.Storage
	formatter   *ui.Formatter
	workers     int
}

// NewScanCommand creates a new ScanCommand
func NewScanCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	coordinator *discovery.Coordinator,
	st storage.Storage,
	formatter *ui.Formatter,
) *ScanCommand {
	return &ScanCommand{
		config:      cfg,
		scanner:     scanner,
		filter:      filter,
		coordinator: coordinator,
		storage:     st,
		formatter:   formatter,
		workers:     4,
	}
}

// SetWorkers overrides the parse worker count.
func (sc *ScanCommand) SetWorkers(n int) {
	if n > 0 {
		sc.workers = n
	}
}

// Execute runs the command
func (sc *ScanCommand) Execute(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		sc.config.Flags.ScanPath = args[0]
	}
	root := sc.config.GetScanPath()

	files, err := sc.scanner.Scan(root)
	if err != nil {
		return err
	}
	files = sc.filter.Apply(files)
	files = sc.filter.FilterByName(files, sc.config.Flags.NameFilter)

	if len(files) == 0 {
		color.Yellow("No test files found under %s", root)
		return nil
	}

	progressBar := ui.NewProgressBar(len(files))
	pool := discovery.NewParsePool(sc.coordinator, sc.workers)
	pool.SetProgress(progressBar.Update)

	start := time.Now()
	entries := pool.ParseAll(cmd.Context(), files)
	duration := time.Since(start)
	progressBar.Finish()

	totalTests := 0
	for i := range entries {
		totalTests += entries[i].CountRunnable()
	}
	inventory := &domain.Inventory{
		Meta: domain.InventoryMeta{
			Root:            root,
			TotalTestFiles:  len(entries),
			TotalTests:      totalTests,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Files: entries,
	}

	if err := sc.storage.Save(inventory); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}

	sc.formatter.PrintScanSummary(inventory)
	return nil
}
