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
	"github.com/steviee/cfbrowse/internal/format"
	"github.com/steviee/cfbrowse/internal/paging"
)

// FileData is a mod file in output.
type FileData struct {
	ID           int      `json:"id"`
	DisplayName  string   `json:"display_name"`
	FileName     string   `json:"file_name"`
	ReleaseType  string   `json:"release_type"`
	Status       string   `json:"status"`
	FileDate     string   `json:"file_date,omitempty"`
	Size         string   `json:"size"`
	SizeBytes    int64    `json:"size_bytes"`
	Downloads    int64    `json:"downloads"`
	GameVersions []string         `json:"game_versions,omitempty"`
	DownloadURL  string           `json:"download_url,omitempty"`
	Hashes       []HashData       `json:"hashes,omitempty"`
	Dependencies []DependencyData `json:"dependencies,omitempty"`
}

// HashData is a file checksum in output.
type HashData struct {
	Algorithm string `json:"algorithm"`
	Value     string `json:"value"`
}

// DependencyData is a file's link to another mod in output.
type DependencyData struct {
	ModID    int    `json:"mod_id"`
	Relation string `json:"relation"`
}

func toFileData(f *curseforge.ModFile) FileData {
	data := FileData{
		ID:           f.ID,
		DisplayName:  f.DisplayName,
		FileName:     f.FileName,
		ReleaseType:  curseforge.ReleaseTypeName(f.ReleaseType),
		Status:       curseforge.FileStatusName(f.FileStatus),
		FileDate:     f.FileDate,
		Size:         curseforge.FormatFileSize(f.FileLength),
		SizeBytes:    f.FileLength,
		Downloads:    f.DownloadCount,
		GameVersions: f.GameVersions,
		DownloadURL:  f.DownloadURL,
	}
	for _, h := range f.Hashes {
		data.Hashes = append(data.Hashes, HashData{
			Algorithm: curseforge.HashAlgorithmName(h.Algo),
			Value:     h.Value,
		})
	}
	for _, d := range f.Dependencies {
		data.Dependencies = append(data.Dependencies, DependencyData{
			ModID:    d.ModID,
			Relation: curseforge.RelationTypeName(d.RelationType),
		})
	}
	return data
}

func toFileList(files []curseforge.ModFile) []FileData {
	out := make([]FileData, len(files))
	for i := range files {
		out[i] = toFileData(&files[i])
	}
	return out
}

// FilesOptions holds the flags of mods files.
type FilesOptions struct {
	Index    int
	PageSize int
}

// NewFilesCommand creates the mods files command.
func NewFilesCommand() *cobra.Command {
	var opts FilesOptions

	cmd := &cobra.Command{
		Use:   "files <modId>",
		Short: "List the files of a mod",
		Long: `List one page of a mod's files.

--index is the position of the first file, as the API counts it. It is
rounded down to the start of its page.`,
		Example: `  # Newest files
  cfbrowse mods files 238222

  # Files 50-99
  cfbrowse mods files 238222 --index 50 --page-size 50`,
		Args: cobra.ExactArgs(1),
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

			page, err := filesPage(opts, env.Catalog.Defaults())
			if err != nil {
				return common.OutputError(w, jsonMode, err)
			}

			return runFiles(cmd.Context(), w, env.Catalog, env.Credentials.Get(), modID, page, jsonMode)
		},
	}

	cmd.Flags().IntVar(&opts.Index, "index", 0, "Index of the first file")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "Files per page (default from config)")

	return cmd
}

// filesPage converts --index and --page-size into a page request.
func filesPage(opts FilesOptions, d paging.Defaults) (paging.PageRequest, error) {
	if opts.Index < 0 {
		return paging.PageRequest{}, fmt.Errorf("index must be >= 0, got %d", opts.Index)
	}
	size := opts.PageSize
	if size == 0 {
		size = d.First().PageSize
	}

	page := paging.FromAPIIndex(opts.Index, size)
	if err := d.Validate(page); err != nil {
		return paging.PageRequest{}, err
	}
	return page, nil
}

func runFiles(ctx context.Context, w io.Writer, cat *catalog.Catalog, credential string, modID int, page paging.PageRequest, jsonMode bool) error {
	result, err := cat.ModFiles(ctx, credential, modID, page)
	if err != nil {
		return common.OutputError(w, jsonMode, common.Explain(fmt.Errorf("list files of mod %d: %w", modID, err)))
	}

	info := common.NewPageInfo(page, result.TotalCount())

	if jsonMode {
		return common.WriteJSON(w, map[string]any{
			"mod_id":     modID,
			"files":      toFileList(result.Data),
			"pagination": info,
		})
	}

	if result.Empty() {
		_, _ = fmt.Fprintln(w, "No files found.")
		return nil
	}

	outputFileTable(w, result.Data, true)

	_, _ = fmt.Fprintf(w, "\nFiles %d-%d of %d.", info.Index+1, info.Index+len(result.Data), info.TotalCount)
	if info.HasNext {
		_, _ = fmt.Fprintf(w, " Next: --index %d", info.Index+page.PageSize)
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

// outputFileTable writes files as a table. With details, each file's
// hashes and dependencies follow its row.
func outputFileTable(w io.Writer, files []curseforge.ModFile, details bool) {
	_, _ = fmt.Fprintf(w, "%-10s %-40s %-8s %-10s %-10s %s\n",
		"ID", "NAME", "TYPE", "SIZE", "DATE", "VERSIONS")
	_, _ = fmt.Fprintf(w, "%s\n", strings.Repeat("-", 110))

	for i := range files {
		f := &files[i]
		name := f.DisplayName
		if name == "" {
			name = f.FileName
		}
		_, _ = fmt.Fprintf(w, "%-10d %-40s %-8s %-10s %-10s %s\n",
			f.ID,
			format.Truncate(name, 40),
			curseforge.ReleaseTypeName(f.ReleaseType),
			curseforge.FormatFileSize(f.FileLength),
			format.Date(f.FileDate),
			format.Truncate(strings.Join(f.GameVersions, ", "), 30))

		if !details {
			continue
		}
		for _, h := range f.Hashes {
			_, _ = fmt.Fprintf(w, "%-10s %s\n", "", h)
		}
		for _, d := range f.Dependencies {
			_, _ = fmt.Fprintf(w, "%-10s dependency: %s\n", "", d)
		}
	}
}
