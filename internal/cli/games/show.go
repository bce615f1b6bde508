package games

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/format"
	"golang.org/x/sync/errgroup"
)

// GameDetail is the output of games show.
type GameDetail struct {
	GameData
	DateModified string   `json:"date_modified,omitempty"`
	Versions     []string `json:"versions"`
}

// NewShowCommand creates the games show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <gameId>",
		Short: "Show a game and its versions",
		Args:  cobra.ExactArgs(1),
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

			return runShow(cmd.Context(), w, env.Catalog, env.Credentials.Get(), gameID, jsonMode)
		},
	}
}

func runShow(ctx context.Context, w io.Writer, cat *catalog.Catalog, credential string, gameID int, jsonMode bool) error {
	var (
		game     *curseforge.Game
		versions []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		game, err = cat.Game(gctx, credential, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		versions, err = cat.GameVersions(gctx, credential, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		return common.OutputError(w, jsonMode, common.Explain(fmt.Errorf("get game %d: %w", gameID, err)))
	}

	if game == nil {
		return common.OutputError(w, jsonMode, fmt.Errorf("game %d not found", gameID))
	}

	detail := GameDetail{
		GameData:     toGameData(game),
		DateModified: game.DateModified,
		Versions:     versions,
	}

	if jsonMode {
		return common.WriteJSON(w, detail)
	}

	_, _ = fmt.Fprintf(w, "%s (%d)\n", detail.Name, detail.ID)
	_, _ = fmt.Fprintf(w, "Slug:     %s\n", detail.Slug)
	_, _ = fmt.Fprintf(w, "Modified: %s\n", format.Date(detail.DateModified))
	if detail.ImageURL != "" {
		_, _ = fmt.Fprintf(w, "Image:    %s\n", detail.ImageURL)
	}
	_, _ = fmt.Fprintf(w, "Versions: %d\n", len(versions))
	if len(versions) > 0 {
		shown := versions
		if len(shown) > 10 {
			shown = shown[:10]
		}
		_, _ = fmt.Fprintf(w, "  %s", strings.Join(shown, ", "))
		if len(versions) > len(shown) {
			_, _ = fmt.Fprintf(w, " (+%d more, see 'cfbrowse games versions %d')", len(versions)-len(shown), gameID)
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}
