package games

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/format"
)

// NewVersionsCommand creates the games versions command.
func NewVersionsCommand() *cobra.Command {
	var types bool

	cmd := &cobra.Command{
		Use:   "versions <gameId>",
		Short: "List the versions of a game",
		Long: `List every version of a game, merged across version types and sorted.
With --types the version types themselves are listed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)
			w := cmd.OutOrStdout()

			gameID, err := common.ParseID(args[0], "game")
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			env, err := common.Load(cmd)
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			if types {
				return runVersionTypes(cmd.Context(), w, env.Catalog, env.Credentials.Get(), gameID, jsonMode)
			}
			return runVersions(cmd.Context(), w, env.Catalog, env.Credentials.Get(), gameID, jsonMode)
		},
	}

	cmd.Flags().BoolVarP(&types, "types", "t", false, "list version types instead of versions")

	return cmd
}

func runVersions(ctx context.Context, w io.Writer, cat *catalog.Catalog, credential string, gameID int, jsonMode bool) error {
	versions, err := cat.GameVersions(ctx, credential, gameID)
	if err != nil {
		return common.OutputError(w, jsonMode, common.Explain(fmt.Errorf("get versions of game %d: %w", gameID, err)))
	}

	if jsonMode {
		return common.WriteJSON(w, map[string]any{
			"game_id":  gameID,
			"versions": versions,
			"count":    len(versions),
		})
	}

	if len(versions) == 0 {
		_, _ = fmt.Fprintln(w, "No versions found.")
		return nil
	}
	for _, v := range versions {
		_, _ = fmt.Fprintln(w, v)
	}
	return nil
}

func runVersionTypes(ctx context.Context, w io.Writer, cat *catalog.Catalog, credential string, gameID int, jsonMode bool) error {
	types, err := cat.GameVersionTypes(ctx, credential, gameID)
	if err != nil {
		return common.OutputError(w, jsonMode, common.Explain(fmt.Errorf("get version types of game %d: %w", gameID, err)))
	}

	if jsonMode {
		return common.WriteJSON(w, map[string]any{
			"game_id": gameID,
			"types":   types,
			"count":   len(types),
		})
	}

	if len(types) == 0 {
		_, _ = fmt.Fprintln(w, "No version types found.")
		return nil
	}

	_, _ = fmt.Fprintf(w, "%-8s %-30s %s\n", "ID", "NAME", "SLUG")
	_, _ = fmt.Fprintf(w, "%-8s %-30s %s\n", "--", "----", "----")
	for _, t := range types {
		_, _ = fmt.Fprintf(w, "%-8d %-30s %s\n", t.ID, format.Truncate(t.Name, 30), t.Slug)
	}
	return nil
}
