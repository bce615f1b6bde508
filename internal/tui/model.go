// Package tui implements the interactive catalog browser.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/credential"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/query"
)

// inputMode tells what typed keys are for.
type inputMode int

const (
	modeNormal inputMode = iota
	modeFilter
	modeAPIKey
)

// Options configures a new model.
type Options struct {
	// Route is where the browser opens. The zero value is the games list.
	Route *Route
	Theme string
	Now   func() time.Time
}

// Model is the bubbletea model of the catalog browser
type Model struct {
	ctx         context.Context
	catalog     *catalog.Catalog
	credentials *credential.Store
	styles      Styles
	now         func() time.Time

	route   Route
	history []Route

	// key is the request whose result the current screen is waiting for
	// or showing.
	key     query.Key
	loading bool
	err     error
	// notFound is set when the entity of the current route does not exist.
	notFound bool

	games *curseforge.Page[curseforge.Game]
	mods  *curseforge.Page[curseforge.Mod]
	mod   *curseforge.Mod
	files *curseforge.Page[curseforge.ModFile]

	selectedIdx int

	mode  inputMode
	input []rune

	notice     string
	noticeTime time.Time

	width    int
	height   int
	quitting bool

	initCmd tea.Cmd
}

// NewModel creates a browser over cat using the API key in creds.
func NewModel(ctx context.Context, cat *catalog.Catalog, creds *credential.Store, opts Options) Model {
	route := GamesRoute(cat.Defaults())
	if opts.Route != nil {
		route = *opts.Route
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		ctx:         ctx,
		catalog:     cat,
		credentials: creds,
		styles:      NewStyles(opts.Theme),
		now:         now,
		route:       route,
	}
	m, cmd := m.fetch()
	m.initCmd = cmd
	return m
}

// Init starts loading the opening screen
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Route returns the current location.
func (m Model) Route() Route {
	return m.route
}

// fetch requests the data of the current route. Without an API key it
// switches to the key prompt instead.
func (m Model) fetch() (Model, tea.Cmd) {
	apiKey := m.credentials.Get()
	if apiKey == "" {
		m.mode = modeAPIKey
		m.input = nil
		m.loading = false
		m.err = nil
		m.notFound = false
		m.key = query.Key{}
		return m, nil
	}

	m.loading = true
	m.err = nil
	m.notFound = false

	ctx, cat, r := m.ctx, m.catalog, m.route
	switch r.Screen {
	case ScreenMods:
		s := r.Search()
		m.key = s.Key(apiKey)
		return m, load(m.key, func() (any, error) {
			return cat.SearchMods(ctx, apiKey, s.GameID, s.Query, s.Page)
		})
	case ScreenMod:
		m.key = catalog.ModKey(apiKey, r.ModID)
		return m, load(m.key, func() (any, error) {
			return cat.Mod(ctx, apiKey, r.ModID)
		})
	case ScreenFiles:
		m.key = catalog.ModFilesKey(apiKey, r.ModID, r.Page)
		return m, load(m.key, func() (any, error) {
			return cat.ModFiles(ctx, apiKey, r.ModID, r.Page)
		})
	default:
		m.key = catalog.GamesKey(apiKey, r.Page)
		return m, load(m.key, func() (any, error) {
			return cat.ListGames(ctx, apiKey, r.Page)
		})
	}
}

// load runs fn off the update loop and reports its result under key.
func load(key query.Key, fn func() (any, error)) tea.Cmd {
	return func() tea.Msg {
		data, err := fn()
		return loadedMsg{key: key, data: data, err: err}
	}
}

// saveKeyCmd stores an entered API key.
func saveKeyCmd(creds *credential.Store, key string) tea.Cmd {
	return func() tea.Msg {
		return keySavedMsg{err: creds.Set(key)}
	}
}

// clearNoticeCmd clears the notice line after a delay
func clearNoticeCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}
