package mods

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/format"
	"golang.org/x/sync/errgroup"
)

// ModDetail is the output of mods show.
type ModDetail struct {
	ModData
	DateCreated string     `json:"date_created,omitempty"`
	Links       *LinksData `json:"links,omitempty"`
	LatestFiles []FileData `json:"latest_files"`
	TotalFiles  int        `json:"total_files"`
}

// LinksData holds a mod's external links.
type LinksData struct {
	Website string `json:"website,omitempty"`
	Wiki    string `json:"wiki,omitempty"`
	Issues  string `json:"issues,omitempty"`
	Source  string `json:"source,omitempty"`
}

// NewShowCommand creates the mods show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "show <modId>",
		Aliases: []string{"info"},
		Short:   "Show a mod and its latest files",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)
			w := cmd.OutOrStdout()

			modID, err := common.ParseID(args[0], "mod")
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			env, err := common.Load(cmd)
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			return runShow(cmd.Context(), w, env.Catalog, env.Credentials.Get(), modID, jsonMode, time.Now())
		},
	}
}

func runShow(ctx context.Context, w io.Writer, cat *catalog.Catalog, credential string, modID int, jsonMode bool, now time.Time) error {
	var (
		mod   *curseforge.Mod
		files *curseforge.Page[curseforge.ModFile]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mod, err = cat.Mod(gctx, credential, modID)
		return err
	})
	g.Go(func() error {
		var err error
		files, err = cat.ModFiles(gctx, credential, modID, cat.Defaults().First())
		return err
	})
	if err := g.Wait(); err != nil {
		return common.OutputError(w, jsonMode, common.Explain(fmt.Errorf("get mod %d: %w", modID, err)))
	}

	if mod == nil {
		return common.OutputError(w, jsonMode, fmt.Errorf("mod %d not found", modID))
	}

	detail := ModDetail{
		ModData:     toModData(mod),
		DateCreated: mod.DateCreated,
		LatestFiles: toFileList(files.Data),
		TotalFiles:  files.TotalCount(),
	}
	if mod.Links != nil {
		detail.Links = &LinksData{
			Website: mod.Links.WebsiteURL,
			Wiki:    mod.Links.WikiURL,
			Issues:  mod.Links.IssuesURL,
			Source:  mod.Links.SourceURL,
		}
	}

	if jsonMode {
		return common.WriteJSON(w, detail)
	}

	_, _ = fmt.Fprintf(w, "%s (%d)\n", detail.Name, detail.ID)
	if detail.Summary != "" {
		_, _ = fmt.Fprintf(w, "%s\n", detail.Summary)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Authors:    %s\n", strings.Join(detail.Authors, ", "))
	_, _ = fmt.Fprintf(w, "Downloads:  %s\n", format.Downloads(mod.DownloadCount))
	if len(detail.Categories) > 0 {
		_, _ = fmt.Fprintf(w, "Categories: %s\n", strings.Join(detail.Categories, ", "))
	}
	_, _ = fmt.Fprintf(w, "Created:    %s\n", format.Date(detail.DateCreated))
	_, _ = fmt.Fprintf(w, "Updated:    %s (%s ago)\n", format.Date(detail.DateModified), format.TimeAgo(detail.DateModified, now))
	if detail.Links != nil && detail.Links.Website != "" {
		_, _ = fmt.Fprintf(w, "Website:    %s\n", detail.Links.Website)
	}

	_, _ = fmt.Fprintf(w, "\nFiles (%d total):\n", detail.TotalFiles)
	if len(files.Data) == 0 {
		_, _ = fmt.Fprintln(w, "  none")
		return nil
	}
	outputFileTable(w, files.Data, false)
	return nil
}
