package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/state"
)

// NewGetCommand creates the config get command.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Example: `  cfbrowse config get api.base_url
  cfbrowse config get pagination.page_size_options`,
		Args: cobra.ExactArgs(1),
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

			return runGet(cmd.OutOrStdout(), cfg, args[0], jsonMode)
		},
	}
}

func runGet(w io.Writer, cfg *state.Config, key string, jsonMode bool) error {
	values, err := toMap(cfg)
	if err != nil {
		return common.OutputError(w, jsonMode, err)
	}

	value, err := lookup(values, key)
	if err != nil {
		return common.OutputError(w, jsonMode, err)
	}

	if jsonMode {
		return common.WriteJSON(w, map[string]any{"key": key, "value": value})
	}

	_, _ = fmt.Fprintln(w, render(value))
	return nil
}

// render prints scalars bare and lists comma-separated.
func render(value any) string {
	if list, ok := value.([]any); ok {
		items := cast.ToStringSlice(list)
		return strings.Join(items, ",")
	}
	return cast.ToString(value)
}
