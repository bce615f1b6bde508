package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/state"
	"gopkg.in/yaml.v3"
)

// NewShowCommand creates the config show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)

			path, err := common.ConfigPath(cmd)
			if err != nil {
				return common.OutputError(cmd.OutOrStdout(), jsonMode, err)
			}

			cfg, err := state.LoadConfigFrom(cmd.Context(), path)
			if err != nil {
				return common.OutputError(cmd.OutOrStdout(), jsonMode, err)
			}

			return runShow(cmd.OutOrStdout(), path, cfg, jsonMode)
		},
	}
}

func runShow(w io.Writer, path string, cfg *state.Config, jsonMode bool) error {
	if jsonMode {
		values, err := toMap(cfg)
		if err != nil {
			return common.OutputError(w, jsonMode, err)
		}
		return common.WriteJSON(w, map[string]any{"path": path, "config": values})
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, _ = fmt.Fprintf(w, "# %s\n", path)
	_, _ = w.Write(data)
	return nil
}
