package tui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/paging"
)

// Screen is a view of the browser.
type Screen int

// Screens of the browser.
const (
	ScreenGames Screen = iota
	ScreenMods
	ScreenMod
	ScreenFiles
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenGames:
		return "games"
	case ScreenMods:
		return "mods"
	case ScreenMod:
		return "mod"
	case ScreenFiles:
		return "files"
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// Route is a location in the browser. It round-trips through a URL-like
// string so a session can be reopened where it was left:
//
//	/                                   games list
//	/games/432?q=jei&sort=6&order=desc  mod search of a game
//	/mods/238222                        mod detail
//	/mods/238222/files                  files of a mod
//
// List routes also carry index and pageSize.
type Route struct {
	Screen Screen
	GameID int
	ModID  int
	Query  curseforge.SearchQuery
	Page   paging.PageRequest
}

// Query parameter names besides index and pageSize.
const (
	paramFilter = "q"
	paramSort   = "sort"
	paramOrder  = "order"
)

// GamesRoute is the start location.
func GamesRoute(d paging.Defaults) Route {
	return Route{Screen: ScreenGames, Page: d.First()}
}

// ModsRoute is the mod search of a game. The browser starts a search
// sorted by Featured, descending.
func ModsRoute(gameID int, d paging.Defaults) Route {
	return Route{
		Screen: ScreenMods,
		GameID: gameID,
		Query: curseforge.SearchQuery{
			SortField: curseforge.SortFeatured,
			SortOrder: curseforge.SortDescending,
		},
		Page: d.First(),
	}
}

// ModRoute is the detail view of a mod.
func ModRoute(modID int) Route {
	return Route{Screen: ScreenMod, ModID: modID}
}

// FilesRoute is the first page of a mod's files.
func FilesRoute(modID int, d paging.Defaults) Route {
	return Route{Screen: ScreenFiles, ModID: modID, Page: d.First()}
}

// ParseRoute reads a route string. Missing or invalid paging parameters
// fall back to the defaults; an unknown path or id is an error.
func ParseRoute(raw string, d paging.Defaults) (Route, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return GamesRoute(d), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("invalid route %q: %w", raw, err)
	}

	values := u.Query()
	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	switch {
	case len(parts) == 0:
		r := GamesRoute(d)
		r.Page = paging.Decode(values, d)
		return r, nil

	case len(parts) == 2 && parts[0] == "games":
		id, err := routeID(parts[1], "game")
		if err != nil {
			return Route{}, err
		}
		r := ModsRoute(id, d)
		if err := decodeSearch(values, &r.Query); err != nil {
			return Route{}, err
		}
		r.Page = paging.Decode(values, d)
		return r, nil

	case len(parts) == 2 && parts[0] == "mods":
		id, err := routeID(parts[1], "mod")
		if err != nil {
			return Route{}, err
		}
		return ModRoute(id), nil

	case len(parts) == 3 && parts[0] == "mods" && parts[2] == "files":
		id, err := routeID(parts[1], "mod")
		if err != nil {
			return Route{}, err
		}
		r := FilesRoute(id, d)
		r.Page = paging.Decode(values, d)
		return r, nil
	}

	return Route{}, fmt.Errorf("unknown route %q", raw)
}

// routeID parses a path id. strconv keeps "010" decimal.
func routeID(s, what string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s id %q in route", curseforge.ErrConfiguration, what, s)
	}
	return id, nil
}

func decodeSearch(values url.Values, q *curseforge.SearchQuery) error {
	if _, ok := values[paramFilter]; ok {
		q.SearchFilter = values.Get(paramFilter)
	}
	if _, ok := values[paramSort]; ok {
		field, err := curseforge.ParseSortField(values.Get(paramSort))
		if err != nil {
			return err
		}
		q.SortField = field
	}
	if _, ok := values[paramOrder]; ok {
		order, err := curseforge.ParseSortOrder(values.Get(paramOrder))
		if err != nil {
			return err
		}
		q.SortOrder = order
	}
	return nil
}

// String renders the route in the form ParseRoute reads.
func (r Route) String() string {
	switch r.Screen {
	case ScreenMods:
		values := paging.Encode(r.Page)
		if r.Query.SearchFilter != "" {
			values.Set(paramFilter, r.Query.SearchFilter)
		}
		if r.Query.SortField != 0 {
			values.Set(paramSort, strconv.Itoa(int(r.Query.SortField)))
		}
		if r.Query.SortOrder != "" {
			values.Set(paramOrder, string(r.Query.SortOrder))
		}
		return fmt.Sprintf("/games/%d?%s", r.GameID, values.Encode())
	case ScreenMod:
		return fmt.Sprintf("/mods/%d", r.ModID)
	case ScreenFiles:
		return fmt.Sprintf("/mods/%d/files?%s", r.ModID, paging.Encode(r.Page).Encode())
	}
	return "/?" + paging.Encode(r.Page).Encode()
}

// Search returns the search state of a mods route.
func (r Route) Search() catalog.SearchState {
	return catalog.SearchState{GameID: r.GameID, Query: r.Query, Page: r.Page}
}

// WithSearch moves a mods route to s.
func (r Route) WithSearch(s catalog.SearchState) Route {
	r.GameID = s.GameID
	r.Query = s.Query
	r.Page = s.Page
	return r
}

// Paged reports whether the screen is a paged list.
func (r Route) Paged() bool {
	return r.Screen != ScreenMod
}
