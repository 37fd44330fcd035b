package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ptx/internal/command"
	"ptx/internal/config"
	"ptx/internal/domain"
	"ptx/internal/pyenv"
	"ptx/internal/storage"
	"ptx/internal/ui"
)

// BrowseCommand handles the browse command
type BrowseCommand struct {
	config  *config.Config
	storage storage.Storage
	env     *pyenv.Resolver
	builder *command.Builder
}

// NewBrowseCommand creates a new BrowseCommand
func NewBrowseCommand(cfg *config.Config, st storage.Storage, env *pyenv.Resolver, builder *command.Builder) *BrowseCommand {
	return &BrowseCommand{
		config:  cfg,
		storage: st,
		env:     env,
		builder: builder,
	}
}

// Execute runs the command
func (bc *BrowseCommand) Execute(cmd *cobra.Command, args []string) error {
	inventory, err := bc.storage.Load()
	if err != nil {
		return fmt.Errorf("no saved inventory (run 'ptx scan' first): %w", err)
	}

	viewer := ui.NewViewer(func(filePath string, selector *domain.Selector) string {
		env := bc.env.Resolve(context.Background(), filePath)
		commandString, _ := bc.builder.Build(env, command.Target{
			FilePath: filePath,
			Selector: selector,
		}, nil)
		return commandString
	})
	return viewer.View(inventory)
}
