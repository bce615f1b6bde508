// Package auth implements the cfbrowse auth command group.
package auth

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the auth command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the CurseForge API key",
		Long: `Store, inspect and remove the CurseForge API key.

The key is kept in ~/.config/cfbrowse/credential with mode 0600. The
--api-key flag and the CFBROWSE_API_KEY variable override the stored key
for a single invocation without touching the file.`,
		Example: `  # Store a key
  cfbrowse auth set $CURSEFORGE_KEY

  # Read the key from stdin
  pass show curseforge | cfbrowse auth set -

  # Show which key is in use
  cfbrowse auth status

  # Forget the stored key
  cfbrowse auth clear`,
	}

	cmd.AddCommand(NewSetCommand())
	cmd.AddCommand(NewClearCommand())
	cmd.AddCommand(NewStatusCommand())

	return cmd
}
