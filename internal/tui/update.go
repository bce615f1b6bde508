package tui

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/credential"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/paging"
)

const noticeDuration = 3 * time.Second

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		return m.handleLoaded(msg)

	case keySavedMsg:
		return m.handleKeySaved(msg)

	case clearNoticeMsg:
		if m.now().Sub(m.noticeTime) >= noticeDuration {
			m.notice = ""
		}
		return m, nil
	}

	return m, nil
}

// handleLoaded applies a catalog result if it answers the current request.
func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if msg.key != m.key {
		slog.Debug("dropping stale result", "key", msg.key.String())
		return m, nil
	}

	m.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, catalog.ErrNotDispatched) {
			m.mode = modeAPIKey
			m.input = nil
			return m, nil
		}
		m.err = msg.err
		slog.Error("failed to load", "route", m.route.String(), "error", msg.err)
		return m, nil
	}

	switch data := msg.data.(type) {
	case *curseforge.Page[curseforge.Game]:
		m.games = data
	case *curseforge.Page[curseforge.Mod]:
		m.mods = data
	case *curseforge.Page[curseforge.ModFile]:
		m.files = data
	case *curseforge.Mod:
		m.mod = data
		m.notFound = data == nil
	}
	m.clampSelection()

	return m, nil
}

func (m Model) handleKeySaved(msg keySavedMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, credential.ErrNotPersisted):
		m = m.withNotice("API key kept for this session only")
	case msg.err != nil:
		m.err = msg.err
		m.mode = modeAPIKey
		return m, nil
	default:
		m = m.withNotice("API key saved")
	}

	m, cmd := m.fetch()
	return m, tea.Batch(cmd, clearNoticeCmd())
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeFilter:
		return m.handleFilterInput(msg)
	case modeAPIKey:
		return m.handleAPIKeyInput(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "esc", "backspace":
		return m.back()

	case "r":
		if m.key.Kind != "" {
			m.catalog.Cache().Invalidate(m.key)
		}
		return m.fetch()

	case "a":
		m.mode = modeAPIKey
		m.input = nil
		return m, nil

	case "up", "k":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, nil

	case "down", "j":
		if m.selectedIdx < m.rowCount()-1 {
			m.selectedIdx++
		}
		return m, nil

	case "enter":
		return m.open()

	case "f":
		if m.route.Screen == ScreenMod {
			return m.navigate(FilesRoute(m.route.ModID, m.catalog.Defaults()))
		}
		return m, nil

	case "n", "right":
		next, ok := m.controls().Next(m.route.Page)
		if !ok {
			return m, nil
		}
		return m.turnPage(next)

	case "p", "left":
		prev, ok := m.controls().Previous(m.route.Page)
		if !ok {
			return m, nil
		}
		return m.turnPage(prev)

	case "z":
		if !m.route.Paged() {
			return m, nil
		}
		size := paging.NextPageSize(m.catalog.Defaults().PageSizes, m.route.Page.PageSize)
		if m.route.Screen == ScreenMods {
			m.route = m.route.WithSearch(m.route.Search().WithPageSize(size))
		} else {
			m.route.Page = paging.WithPageSize(m.route.Page, size)
		}
		m.selectedIdx = 0
		return m.fetch()
	}

	if m.route.Screen == ScreenMods {
		return m.handleSearchKey(msg)
	}

	return m, nil
}

// handleSearchKey handles the filter and sort keys of the mods screen.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	search := m.route.Search()

	switch msg.String() {
	case "/":
		m.mode = modeFilter
		m.input = []rune(search.Query.SearchFilter)
		return m, nil

	case "s":
		m.route = m.route.WithSearch(search.WithSortField(search.Query.SortField.Next()))

	case "o":
		m.route = m.route.WithSearch(search.WithSortOrder(search.Query.SortOrder.Toggle()))

	default:
		return m, nil
	}

	m.selectedIdx = 0
	return m.fetch()
}

func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeNormal
		m.route = m.route.WithSearch(m.route.Search().WithFilter(string(m.input)))
		m.input = nil
		m.selectedIdx = 0
		return m.fetch()
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input = nil
		return m, nil
	}

	m.input = edit(m.input, msg)
	return m, nil
}

func (m Model) handleAPIKeyInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		key := string(m.input)
		if key == "" {
			return m, nil
		}
		m.mode = modeNormal
		m.input = nil
		m.err = nil
		return m, saveKeyCmd(m.credentials, key)
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input = nil
		return m, nil
	}

	m.input = edit(m.input, msg)
	return m, nil
}

// edit applies a typing key to an input buffer.
func edit(input []rune, msg tea.KeyMsg) []rune {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(input) > 0 {
			return input[:len(input)-1]
		}
	case tea.KeySpace:
		return append(input, ' ')
	case tea.KeyRunes:
		return append(input, msg.Runes...)
	}
	return input
}

// open follows the selected row.
func (m Model) open() (tea.Model, tea.Cmd) {
	d := m.catalog.Defaults()

	switch m.route.Screen {
	case ScreenGames:
		if m.games.Empty() || m.selectedIdx >= len(m.games.Data) {
			return m, nil
		}
		return m.navigate(ModsRoute(m.games.Data[m.selectedIdx].ID, d))

	case ScreenMods:
		if m.mods.Empty() || m.selectedIdx >= len(m.mods.Data) {
			return m, nil
		}
		return m.navigate(ModRoute(m.mods.Data[m.selectedIdx].ID))

	case ScreenMod:
		if m.mod != nil {
			return m.navigate(FilesRoute(m.mod.ID, d))
		}
	}

	return m, nil
}

// navigate moves to another screen, remembering the current one.
func (m Model) navigate(to Route) (tea.Model, tea.Cmd) {
	m.history = append(m.history, m.route)
	m.route = to
	m.selectedIdx = 0
	m.clearScreen()
	return m.fetch()
}

// back returns to the previous screen.
func (m Model) back() (tea.Model, tea.Cmd) {
	if len(m.history) == 0 {
		return m, nil
	}
	m.route = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.selectedIdx = 0
	m.clearScreen()
	return m.fetch()
}

// turnPage moves to another page of the current list. The previous page
// stays on screen until the new one arrives.
func (m Model) turnPage(p paging.PageRequest) (tea.Model, tea.Cmd) {
	if m.route.Screen == ScreenMods {
		m.route = m.route.WithSearch(m.route.Search().WithPage(p))
	} else {
		m.route.Page = p
	}
	m.selectedIdx = 0
	return m.fetch()
}

// clearScreen drops the data of the screen being entered so a previous
// game's or mod's data is never shown under the new route.
func (m *Model) clearScreen() {
	m.err = nil
	m.notFound = false
	switch m.route.Screen {
	case ScreenGames:
		m.games = nil
	case ScreenMods:
		m.mods = nil
	case ScreenMod:
		m.mod = nil
	case ScreenFiles:
		m.files = nil
	}
}

// rowCount returns the number of selectable rows on screen.
func (m Model) rowCount() int {
	switch m.route.Screen {
	case ScreenGames:
		if m.games != nil {
			return len(m.games.Data)
		}
	case ScreenMods:
		if m.mods != nil {
			return len(m.mods.Data)
		}
	case ScreenFiles:
		if m.files != nil {
			return len(m.files.Data)
		}
	}
	return 0
}

func (m *Model) clampSelection() {
	n := m.rowCount()
	if n == 0 {
		m.selectedIdx = 0
	} else if m.selectedIdx >= n {
		m.selectedIdx = n - 1
	}
}

// totalCount returns the upstream total of the current list.
func (m Model) totalCount() int {
	switch m.route.Screen {
	case ScreenGames:
		return m.games.TotalCount()
	case ScreenMods:
		return m.mods.TotalCount()
	case ScreenFiles:
		return m.files.TotalCount()
	}
	return 0
}

// controls returns the paging controls of the current list. Both
// directions are disabled while a request is pending.
func (m Model) controls() paging.Controls {
	totalPages := paging.TotalPages(m.totalCount(), m.route.Page.PageSize)
	return paging.NewControls(m.route.Page, totalPages, m.loading)
}

func (m Model) withNotice(notice string) Model {
	m.notice = notice
	m.noticeTime = m.now()
	return m
}
