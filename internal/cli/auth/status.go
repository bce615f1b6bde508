package auth

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/credential"
)

// Status describes the key in use.
type Status struct {
	Configured bool              `json:"configured"`
	Key        string            `json:"key"`
	Source     credential.Source `json:"source"`
	Path       string            `json:"path"`
}

// NewStatusCommand creates the auth status command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the API key in use",
		Long: `Show the masked API key in use and where it came from: the credential
file, the CFBROWSE_API_KEY variable or the --api-key flag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)

			store, err := common.OpenCredentials(cmd)
			if err != nil {
				return common.OutputError(cmd.OutOrStdout(), jsonMode, err)
			}

			return runStatus(cmd.OutOrStdout(), store, jsonMode)
		},
	}
}

func runStatus(w io.Writer, store *credential.Store, jsonMode bool) error {
	key := store.Get()
	status := Status{
		Configured: key != "",
		Key:        credential.Mask(key),
		Source:     store.Source(),
		Path:       store.Path(),
	}

	if jsonMode {
		return common.WriteJSON(w, status)
	}

	_, _ = fmt.Fprintf(w, "API key: %s\n", status.Key)
	_, _ = fmt.Fprintf(w, "Source:  %s\n", status.Source)
	_, _ = fmt.Fprintf(w, "File:    %s\n", status.Path)
	if !status.Configured {
		_, _ = fmt.Fprintln(w, "\nRun 'cfbrowse auth set <key>' to store one.")
	}
	return nil
}
