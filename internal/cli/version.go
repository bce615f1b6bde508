package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
)

// VersionInfo describes the running build
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"built_by"`
	GoVersion string `json:"go_version"`
}

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date, builtBy string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the cfbrowse version with the commit, date and toolchain it was built from.",
		Example: `  cfbrowse version
  cfbrowse version --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version:   version,
				Commit:    commit,
				Date:      date,
				BuiltBy:   builtBy,
				GoVersion: runtime.Version(),
			}
			return printVersion(cmd.OutOrStdout(), info, common.IsJSON(cmd))
		},
	}
}

func printVersion(w io.Writer, info VersionInfo, jsonMode bool) error {
	if jsonMode {
		return common.WriteJSON(w, info)
	}

	_, err := fmt.Fprintf(w, "cfbrowse version %s\nCommit: %s\nBuilt: %s\nBuilt by: %s\nGo: %s\n",
		info.Version, info.Commit, info.Date, info.BuiltBy, info.GoVersion)
	if err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	return nil
}
