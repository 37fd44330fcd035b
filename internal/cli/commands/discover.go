package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ptx/internal/config"
	"ptx/internal/discovery"
	"ptx/internal/ui"
)

// DiscoverCommand handles the discover command
type DiscoverCommand struct {
	config      *config.Config
	coordinator *discovery.Coordinator
	formatter   *ui.Formatter
}

// NewDiscoverCommand creates a new DiscoverCommand
func NewDiscoverCommand(cfg *config.Config, coordinator *discovery.Coordinator, formatter *ui.Formatter) *DiscoverCommand {
	return &DiscoverCommand{
		config:      cfg,
		coordinator: coordinator,
		formatter:   formatter,
	}
}

// Execute runs the command
func (dc *DiscoverCommand) Execute(cmd *cobra.Command, args []string) error {
	filePath, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	if !discovery.IsTestFile(filePath) {
		dc.formatter.PrintNonTestWarning(filePath)
		return nil
	}

	tree, err := dc.coordinator.Discover(cmd.Context(), filePath)
	if err != nil {
		return err
	}

	if dc.config.Flags.JSON {
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal entities: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	dc.formatter.PrintTree(filePath, tree)
	return nil
}
