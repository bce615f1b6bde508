// Package games implements the cfbrowse games command group.
package games

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the games command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Browse games in the catalog",
		Long: `List the games covered by the CurseForge catalog and inspect one of
them together with its game versions.`,
		Example: `  # First page of games
  cfbrowse games list

  # Third page, 50 per page
  cfbrowse games list --page 3 --page-size 50

  # Details of Minecraft
  cfbrowse games show 432

  # Game versions of Minecraft
  cfbrowse games versions 432`,
		Aliases: []string{"game"},
	}

	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewVersionsCommand())

	return cmd
}
