package auth

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/credential"
)

// NewClearCommand creates the auth clear command.
func NewClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Aliases: []string{"logout"},
		Short:   "Remove the stored API key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)

			store, err := common.OpenCredentials(nil)
			if err != nil {
				return common.OutputError(cmd.OutOrStdout(), jsonMode, err)
			}

			return runClear(cmd.OutOrStdout(), store, jsonMode)
		},
	}
}

func runClear(w io.Writer, store *credential.Store, jsonMode bool) error {
	if err := store.Clear(); err != nil {
		return common.OutputError(w, jsonMode, fmt.Errorf("clear API key: %w", err))
	}

	if jsonMode {
		return common.WriteJSON(w, map[string]any{"path": store.Path(), "cleared": true})
	}

	_, _ = fmt.Fprintln(w, "API key removed")
	return nil
}
