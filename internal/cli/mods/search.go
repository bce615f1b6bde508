package mods

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/paging"
)

// SearchOptions holds the flags of mods search.
type SearchOptions struct {
	Sort     string
	Order    string
	Page     int
	PageSize int
}

// NewSearchCommand creates the mods search subcommand
func NewSearchCommand() *cobra.Command {
	var opts SearchOptions

	cmd := &cobra.Command{
		Use:   "search <gameId> [filter...]",
		Short: "Search the mods of a game",
		Long: `Search the mods of a game.

The filter is sent as typed; a blank filter lists all mods. Without
--sort and --order the API applies its own ordering.

Sort fields:
  featured, popularity, last-updated, name, author, total-downloads,
  category, game-version, early-access, featured-released,
  released-date, rating (or their numeric API values 1-12)`,
		Example: `  # Search for a mod
  cfbrowse mods search 432 sodium

  # Sort by downloads, highest first
  cfbrowse mods search 432 --sort total-downloads --order desc

  # Third page of 50
  cfbrowse mods search 432 create --page 3 --page-size 50

  # Get JSON output for scripting
  cfbrowse mods search 432 lithium --json`,
		Args: cobra.MinimumNArgs(1),
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

			state, err := buildSearch(gameID, strings.Join(args[1:], " "), opts, env.Catalog.Defaults())
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			return runSearch(cmd.Context(), w, env.Catalog, env.Credentials.Get(), state, jsonMode)
		},
	}

	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "", "Sort field (name or number)")
	cmd.Flags().StringVarP(&opts.Order, "order", "o", "", "Sort order: asc or desc")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Mods per page (default from config)")

	return cmd
}

// buildSearch turns the arguments into a search state on the requested page.
func buildSearch(gameID int, filter string, opts SearchOptions, d paging.Defaults) (catalog.SearchState, error) {
	field, err := curseforge.ParseSortField(opts.Sort)
	if err != nil {
		return catalog.SearchState{}, err
	}
	order, err := curseforge.ParseSortOrder(opts.Order)
	if err != nil {
		return catalog.SearchState{}, err
	}
	page, err := common.PageFlags(opts.Page, opts.PageSize, d)
	if err != nil {
		return catalog.SearchState{}, err
	}

	state := catalog.NewSearchState(gameID, d).
		WithFilter(filter).
		WithSortField(field).
		WithSortOrder(order).
		WithPageSize(page.PageSize)
	return state.WithPage(page), nil
}

func runSearch(ctx context.Context, w io.Writer, cat *catalog.Catalog, credential string, s catalog.SearchState, jsonMode bool) error {
	result, err := cat.SearchMods(ctx, credential, s.GameID, s.Query, s.Page)
	if err != nil {
		return common.OutputError(w, jsonMode, common.Explain(fmt.Errorf("search mods: %w", err)))
	}

	info := common.NewPageInfo(s.Page, result.TotalCount())

	if jsonMode {
		return common.WriteJSON(w, map[string]any{
			"game_id":    s.GameID,
			"query":      s.Query,
			"mods":       toModList(result.Data),
			"pagination": info,
		})
	}

	if result.Empty() {
		if s.Query.SearchActive() {
			_, _ = fmt.Fprintf(w, "No mods match %q. Try a different filter.\n", s.Query.SearchFilter)
		} else {
			_, _ = fmt.Fprintln(w, "No mods found.")
		}
		return nil
	}

	outputModTable(w, result.Data)

	_, _ = fmt.Fprintf(w, "\nPage %d of %d (%d mods)", info.Page, info.TotalPages, info.TotalCount)
	if s.Query.SortField != 0 {
		_, _ = fmt.Fprintf(w, ", sorted by %s", s.Query.SortField)
		if s.Query.SortOrder != "" {
			_, _ = fmt.Fprintf(w, " %s", s.Query.SortOrder)
		}
	}
	_, _ = fmt.Fprint(w, ".")
	if info.HasNext {
		_, _ = fmt.Fprintf(w, " Next: --page %d", info.Page+1)
	}
	_, _ = fmt.Fprintln(w)
	return nil
}
