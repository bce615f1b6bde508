package mods

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/cli/common"
)

// NewFeaturedCommand creates the mods featured command.
func NewFeaturedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "featured <gameId>",
		Short: "List the featured mods of a game",
		Long: `List the featured mods of a game. When the game has no featured mods
its popular mods are listed instead.`,
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

			return runFeatured(cmd.Context(), w, env.Catalog, env.Credentials.Get(), gameID, jsonMode)
		},
	}
}

func runFeatured(ctx context.Context, w io.Writer, cat *catalog.Catalog, credential string, gameID int, jsonMode bool) error {
	mods, err := cat.FeaturedMods(ctx, credential, gameID)
	if err != nil {
		return common.OutputError(w, jsonMode, common.Explain(fmt.Errorf("get featured mods: %w", err)))
	}

	if jsonMode {
		return common.WriteJSON(w, map[string]any{
			"game_id": gameID,
			"mods":    toModList(mods),
			"count":   len(mods),
		})
	}

	if len(mods) == 0 {
		_, _ = fmt.Fprintln(w, "No featured mods.")
		return nil
	}

	outputModTable(w, mods)
	return nil
}
