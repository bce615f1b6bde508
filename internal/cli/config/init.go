package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/state"
	"gopkg.in/yaml.v3"
)

// NewInitCommand creates the config init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"reset"},
		Short:   "Write the default configuration",
		Long: `Write the default configuration file.

An existing file is left alone unless --force is given, in which case it
is kept as config.yaml.bak.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)

			path, err := common.ConfigPath(cmd)
			if err != nil {
				return common.OutputError(cmd.OutOrStdout(), jsonMode, err)
			}

			return runInit(cmd.OutOrStdout(), path, force, jsonMode)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")

	return cmd
}

func runInit(w io.Writer, path string, force, jsonMode bool) error {
	_, err := os.Stat(path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return common.OutputError(w, jsonMode, fmt.Errorf("stat config: %w", err))
	}
	if exists && !force {
		return common.OutputError(w, jsonMode, fmt.Errorf("config already exists at %s (use --force to overwrite)", path))
	}

	data, err := yaml.Marshal(state.DefaultConfig())
	if err != nil {
		return common.OutputError(w, jsonMode, fmt.Errorf("marshal config: %w", err))
	}

	if err := state.AtomicWriteWithBackup(path, data, 0o644); err != nil {
		return common.OutputError(w, jsonMode, fmt.Errorf("write config: %w", err))
	}

	if jsonMode {
		out := map[string]any{"path": path, "overwritten": exists}
		if exists {
			out["backup"] = path + ".bak"
		}
		return common.WriteJSON(w, out)
	}

	_, _ = fmt.Fprintf(w, "Wrote default configuration to %s\n", path)
	if exists {
		_, _ = fmt.Fprintf(w, "Previous configuration kept in %s.bak\n", path)
	}
	return nil
}
