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
	"github.com/steviee/cfbrowse/internal/paging"
)

// GameData is a game in list output.
type GameData struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url,omitempty"`
}

// NewListCommand creates the games list command.
func NewListCommand() *cobra.Command {
	var (
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List games",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)
			w := cmd.OutOrStdout()

			env, err := common.Load(cmd)
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			p, err := common.PageFlags(page, pageSize, env.Catalog.Defaults())
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			return runList(cmd.Context(), w, env.Catalog, env.Credentials.Get(), p, jsonMode)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Games per page (default from config)")

	return cmd
}

func runList(ctx context.Context, w io.Writer, cat *catalog.Catalog, credential string, p paging.PageRequest, jsonMode bool) error {
	result, err := cat.ListGames(ctx, credential, p)
	if err != nil {
		return common.OutputError(w, jsonMode, common.Explain(fmt.Errorf("list games: %w", err)))
	}

	info := common.NewPageInfo(p, result.TotalCount())

	if jsonMode {
		games := make([]GameData, len(result.Data))
		for i := range result.Data {
			games[i] = toGameData(&result.Data[i])
		}
		return common.WriteJSON(w, map[string]any{
			"games":      games,
			"pagination": info,
		})
	}

	return outputListTable(w, result.Data, info)
}

func toGameData(g *curseforge.Game) GameData {
	return GameData{
		ID:       g.ID,
		Name:     g.Name,
		Slug:     g.Slug,
		ImageURL: g.ImageURL(),
	}
}

func outputListTable(w io.Writer, games []curseforge.Game, info common.PageInfo) error {
	if len(games) == 0 {
		_, _ = fmt.Fprintln(w, "No games found.")
		return nil
	}

	_, _ = fmt.Fprintf(w, "%-8s %-30s %s\n", "ID", "NAME", "SLUG")
	_, _ = fmt.Fprintf(w, "%s\n", strings.Repeat("-", 70))

	for _, g := range games {
		_, _ = fmt.Fprintf(w, "%-8d %-30s %s\n", g.ID, format.Truncate(g.Name, 30), g.Slug)
	}

	_, _ = fmt.Fprintf(w, "\nPage %d of %d (%d games).", info.Page, info.TotalPages, info.TotalCount)
	if info.HasNext {
		_, _ = fmt.Fprintf(w, " Next: --page %d", info.Page+1)
	}
	_, _ = fmt.Fprintln(w)
	return nil
}
