package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/state"
)

// NewPathCommand creates the config path command.
func NewPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)
			w := cmd.OutOrStdout()

			configPath, err := common.ConfigPath(cmd)
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}
			credentialPath, err := state.GetCredentialPath()
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			if jsonMode {
				return common.WriteJSON(w, map[string]string{
					"config":     configPath,
					"credential": credentialPath,
				})
			}

			_, _ = fmt.Fprintln(w, configPath)
			if !common.IsQuiet(cmd) {
				_, _ = fmt.Fprintf(w, "credential: %s\n", credentialPath)
			}
			return nil
		},
	}
}
