// Package config implements the cfbrowse config command group.
package config

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the config command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and modify cfbrowse configuration settings.

Commands in this group allow you to view the current configuration,
change single settings and reset to defaults. Configuration is stored
in ~/.config/cfbrowse/config.yaml by default.`,
		Example: `  # View current configuration
  cfbrowse config show

  # Set a configuration value
  cfbrowse config set pagination.default_page_size 50

  # Get a specific value
  cfbrowse config get cache.stale_time

  # Reset to defaults
  cfbrowse config init --force

  # Show configuration file path
  cfbrowse config path`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewPathCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewGetCommand())
	cmd.AddCommand(NewSetCommand())

	return cmd
}
