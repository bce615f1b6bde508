package tui

import (
	"fmt"
	"strings"

	"github.com/steviee/cfbrowse/internal/credential"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/format"
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch {
	case m.mode == modeAPIKey:
		b.WriteString(m.renderKeyPrompt())
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %s", m.err)))
		b.WriteString("\n\n[r] retry  [esc] back\n")
	case m.notFound:
		b.WriteString(m.renderNotFound())
	case m.loading && !m.hasData():
		fmt.Fprintf(&b, "\nLoading %s...\n", m.route.Screen)
	case m.key.Kind == "":
		b.WriteString("\nNot loaded yet. Press [a] to enter an API key.\n")
	default:
		b.WriteString(m.renderScreen())
	}

	if m.mode == modeFilter {
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Filter: "))
		b.WriteString(string(m.input))
		b.WriteString("█\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
	}

	return b.String()
}

// renderHeader renders the title box with the current route
func (m Model) renderHeader() string {
	title := "cfbrowse"
	location := m.route.String()

	totalWidth := 80
	if m.width > 0 {
		totalWidth = m.width
	}

	spacing := totalWidth - len(title) - len(location) - 4
	if spacing < 1 {
		spacing = 1
	}

	var b strings.Builder
	b.WriteString("╭")
	b.WriteString(strings.Repeat("─", max(totalWidth-2, 0)))
	b.WriteString("╮\n")

	headerText := fmt.Sprintf(" %s%s%s ", title, strings.Repeat(" ", spacing), location)
	b.WriteString("│")
	b.WriteString(m.styles.Header.Render(headerText))
	b.WriteString("│\n")

	b.WriteString("╰")
	b.WriteString(strings.Repeat("─", max(totalWidth-2, 0)))
	b.WriteString("╯")

	return b.String()
}

func (m Model) renderKeyPrompt() string {
	var b strings.Builder
	b.WriteString("\nA CurseForge API key is needed to load the catalog.\n\n")
	b.WriteString(m.styles.Label.Render("API key: "))
	if len(m.input) > 0 {
		b.WriteString(credential.Mask(string(m.input)))
	}
	b.WriteString("█\n")
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %s", m.err)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderNotFound() string {
	return fmt.Sprintf("\n%s\n\nIt may have been removed or never existed.\n",
		m.styles.Label.Render(fmt.Sprintf("Mod %d was not found.", m.route.ModID)))
}

func (m Model) renderScreen() string {
	switch m.route.Screen {
	case ScreenMods:
		return m.renderMods()
	case ScreenMod:
		return m.renderMod()
	case ScreenFiles:
		return m.renderFiles()
	}
	return m.renderGames()
}

// hasData reports whether the current screen has something to show.
func (m Model) hasData() bool {
	if m.route.Screen == ScreenMod {
		return m.mod != nil
	}
	return m.rowCount() > 0
}

// row renders a table row, highlighting the selected one.
func (m Model) row(i int, text string) string {
	if i == m.selectedIdx {
		return m.styles.Selected.Render("> "+text) + "\n"
	}
	return "  " + text + "\n"
}

func (m Model) renderGames() string {
	if m.games.Empty() {
		return "\nNo games found.\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.TableHeader.Render(fmt.Sprintf("  %-8s  %-30s  %s", "ID", "NAME", "SLUG")))
	b.WriteString("\n")
	for i, g := range m.games.Data {
		b.WriteString(m.row(i, fmt.Sprintf("%-8d  %-30s  %s", g.ID, format.Truncate(g.Name, 30), g.Slug)))
	}
	return b.String()
}

func (m Model) renderMods() string {
	var b strings.Builder

	q := m.route.Query
	filter := q.SearchFilter
	if filter == "" {
		filter = "-"
	}
	order := string(q.SortOrder)
	if order == "" {
		order = "-"
	}
	b.WriteString(m.styles.Dim.Render(fmt.Sprintf("Game %d  filter: %s  sort: %s  order: %s",
		m.route.GameID, filter, q.SortField, order)))
	b.WriteString("\n\n")

	if m.mods.Empty() {
		b.WriteString("No mods match this search.\n")
		return b.String()
	}

	b.WriteString(m.styles.TableHeader.Render(fmt.Sprintf("  %-8s  %-32s  %10s  %s", "ID", "NAME", "DOWNLOADS", "AUTHORS")))
	b.WriteString("\n")
	for i, mod := range m.mods.Data {
		b.WriteString(m.row(i, fmt.Sprintf("%-8d  %-32s  %10s  %s",
			mod.ID,
			format.Truncate(mod.Name, 32),
			format.Downloads(mod.DownloadCount),
			format.Truncate(strings.Join(mod.AuthorNames(), ", "), 30))))
	}
	return b.String()
}

func (m Model) renderMod() string {
	mod := m.mod
	if mod == nil {
		return "\nNo mod loaded.\n"
	}

	var b strings.Builder
	label := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-12s", name)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	label("Name:", mod.Name)
	label("ID:", fmt.Sprintf("%d", mod.ID))
	label("Slug:", mod.Slug)
	label("Authors:", strings.Join(mod.AuthorNames(), ", "))
	label("Downloads:", format.Downloads(mod.DownloadCount))
	label("Created:", format.Date(mod.DateCreated))
	if mod.DateModified != "" {
		label("Updated:", format.TimeAgo(mod.DateModified, m.now())+" ago")
	}
	if mod.Links != nil {
		label("Website:", mod.Links.WebsiteURL)
		label("Source:", mod.Links.SourceURL)
		label("Issues:", mod.Links.IssuesURL)
	}
	if mod.Summary != "" {
		b.WriteString("\n")
		b.WriteString(mod.Summary)
		b.WriteString("\n")
	}
	if len(mod.LatestFiles) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.TableHeader.Render("Latest files"))
		b.WriteString("\n")
		for _, f := range mod.LatestFiles {
			b.WriteString("  ")
			b.WriteString(m.fileLine(f))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderFiles() string {
	if m.files.Empty() {
		return "\nThis mod has no files.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", m.styles.Dim.Render(
		fmt.Sprintf("Showing %d of %d files", len(m.files.Data), m.files.TotalCount())))

	b.WriteString(m.styles.TableHeader.Render(fmt.Sprintf("  %-8s  %-8s  %-40s  %10s  %s", "ID", "TYPE", "NAME", "SIZE", "DATE")))
	b.WriteString("\n")
	for i, f := range m.files.Data {
		b.WriteString(m.row(i, m.fileLine(f)))
		if i == m.selectedIdx {
			b.WriteString(m.fileDetails(f))
		}
	}
	return b.String()
}

func (m Model) fileLine(f curseforge.ModFile) string {
	name := f.DisplayName
	if name == "" {
		name = f.FileName
	}
	return fmt.Sprintf("%-8d  %s  %-40s  %10s  %s",
		f.ID,
		m.styles.release(curseforge.ReleaseTypeName(f.ReleaseType), 8),
		format.Truncate(name, 40),
		curseforge.FormatFileSize(f.FileLength),
		format.Date(f.FileDate))
}

// fileDetails lists the hashes and dependencies of the selected file.
func (m Model) fileDetails(f curseforge.ModFile) string {
	var b strings.Builder
	for _, h := range f.Hashes {
		b.WriteString(m.styles.Dim.Render("      " + h.String()))
		b.WriteString("\n")
	}
	for _, d := range f.Dependencies {
		b.WriteString(m.styles.Dim.Render("      dependency: " + d.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// renderFooter renders the paging position and key help
func (m Model) renderFooter() string {
	var parts []string

	if m.route.Paged() && m.key.Kind != "" {
		controls := m.controls()
		if !controls.Empty() {
			parts = append(parts, controls.Label())
		}
		parts = append(parts, fmt.Sprintf("%d per page", m.route.Page.PageSize))
	}

	switch m.mode {
	case modeFilter:
		parts = append(parts, "[enter] apply  [esc] cancel")
	case modeAPIKey:
		parts = append(parts, "[enter] save  [esc] cancel")
	default:
		parts = append(parts, m.keyHelp())
	}

	return m.styles.Footer.Render(strings.Join(parts, "  |  "))
}

func (m Model) keyHelp() string {
	keys := []string{"[↑/↓] navigate"}
	switch m.route.Screen {
	case ScreenGames:
		keys = append(keys, "[enter] mods")
	case ScreenMods:
		keys = append(keys, "[enter] details", "[/] filter", "[s]ort", "[o]rder")
	case ScreenMod:
		keys = append(keys, "[f]iles")
	}
	if m.route.Paged() {
		keys = append(keys, "[n]ext", "[p]rev", "[z] page size")
	}
	keys = append(keys, "[r]eload", "[a]pi key", "[esc] back", "[q]uit")
	return strings.Join(keys, "  ")
}
