// Package mods implements the cfbrowse mods command group.
package mods

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the mods command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mods",
		Short: "Search and inspect mods",
		Long: `Search the mods of a game, inspect a single mod and page through its files.

Searches are sent with the filter, sort field and sort order you give; a
new filter or sort always starts again from the first page. Results are
cached for five minutes, so paging back and forth does not repeat requests.`,
		Example: `  # Search Minecraft mods
  cfbrowse mods search 432 jei

  # Most downloaded first, 50 per page
  cfbrowse mods search 432 --sort total-downloads --order desc --page-size 50

  # Details of a mod
  cfbrowse mods show 238222

  # Second page of a mod's files
  cfbrowse mods files 238222 --index 20

  # Featured mods of a game
  cfbrowse mods featured 432`,
		Aliases: []string{"mod"},
	}

	cmd.AddCommand(NewSearchCommand())
	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewFilesCommand())
	cmd.AddCommand(NewFeaturedCommand())

	return cmd
}
