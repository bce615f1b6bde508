package mods

import (
	"fmt"
	"io"
	"strings"

	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/format"
)

// ModData is a mod in list output.
type ModData struct {
	ID           int      `json:"id"`
	GameID       int      `json:"game_id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Summary      string   `json:"summary,omitempty"`
	Downloads    int64    `json:"downloads"`
	Authors      []string `json:"authors,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	LogoURL      string   `json:"logo_url,omitempty"`
	WebsiteURL   string   `json:"website_url,omitempty"`
	DateModified string   `json:"date_modified,omitempty"`
}

func toModData(m *curseforge.Mod) ModData {
	data := ModData{
		ID:           m.ID,
		GameID:       m.GameID,
		Name:         m.Name,
		Slug:         m.Slug,
		Summary:      m.Summary,
		Downloads:    int64(m.DownloadCount),
		Authors:      m.AuthorNames(),
		DateModified: m.DateModified,
	}
	for _, c := range m.Categories {
		data.Categories = append(data.Categories, c.Name)
	}
	if m.Logo != nil {
		data.LogoURL = m.Logo.ThumbnailURL
	}
	if m.Links != nil {
		data.WebsiteURL = m.Links.WebsiteURL
	}
	return data
}

func toModList(mods []curseforge.Mod) []ModData {
	out := make([]ModData, len(mods))
	for i := range mods {
		out[i] = toModData(&mods[i])
	}
	return out
}

// outputModTable writes mods as a table.
func outputModTable(w io.Writer, mods []curseforge.Mod) {
	_, _ = fmt.Fprintf(w, "%-9s %-30s %-10s %-16s %s\n",
		"ID", "NAME", "DOWNLOADS", "AUTHOR", "SUMMARY")
	_, _ = fmt.Fprintf(w, "%s\n", strings.Repeat("-", 110))

	for i := range mods {
		m := &mods[i]
		author := ""
		if names := m.AuthorNames(); len(names) > 0 {
			author = names[0]
		}
		_, _ = fmt.Fprintf(w, "%-9d %-30s %-10s %-16s %s\n",
			m.ID,
			format.Truncate(m.Name, 30),
			format.Downloads(m.DownloadCount),
			format.Truncate(author, 16),
			format.Truncate(m.Summary, 40))
	}
}
