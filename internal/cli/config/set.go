package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/state"
)

// NewSetCommand creates the config set command.
func NewSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a configuration value",
		Long: `Change a single configuration value. The value is parsed as YAML, so
lists are written as [10, 20, 50] and durations as 5m or 30s. The result
is validated before it is saved.`,
		Example: `  cfbrowse config set pagination.default_page_size 50
  cfbrowse config set pagination.page_size_options "[10, 25, 50]"
  cfbrowse config set cache.stale_time 10m`,
		Args: cobra.ExactArgs(2),
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

			updated, err := apply(cfg, args[0], args[1])
			if err != nil {
				return common.OutputError(cmd.OutOrStdout(), jsonMode, err)
			}

			if err := state.SaveConfigTo(cmd.Context(), path, updated); err != nil {
				return common.OutputError(cmd.OutOrStdout(), jsonMode, err)
			}

			return outputSet(cmd.OutOrStdout(), args[0], updated, jsonMode)
		},
	}
}

// apply returns a copy of cfg with key set to raw, validated.
func apply(cfg *state.Config, key, raw string) (*state.Config, error) {
	values, err := toMap(cfg)
	if err != nil {
		return nil, err
	}

	if err := assign(values, key, raw); err != nil {
		return nil, err
	}

	updated, err := fromMap(values)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := state.ValidateConfig(updated); err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return updated, nil
}

func outputSet(w io.Writer, key string, cfg *state.Config, jsonMode bool) error {
	values, err := toMap(cfg)
	if err != nil {
		return err
	}
	value, err := lookup(values, key)
	if err != nil {
		return err
	}

	if jsonMode {
		return common.WriteJSON(w, map[string]any{"key": key, "value": value})
	}

	_, _ = fmt.Fprintf(w, "%s = %s\n", key, render(value))
	return nil
}
