// Package catalog is the fetch façade the CLI and the TUI read the
// CurseForge catalog through.
//
// Every operation takes the credential explicitly. With an empty credential
// nothing is dispatched and ErrNotDispatched is returned; views render that
// as "not loaded yet" rather than as a failure. All other requests go
// through a query.Cache, so equal requests are deduplicated, served from
// memory while fresh and retried once on failure.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/paging"
	"github.com/steviee/cfbrowse/internal/query"
)

// ErrNotDispatched is returned when a request is gated because no
// credential is available.
var ErrNotDispatched = errors.New("not loaded: no API key configured")

// API is the upstream surface the catalog needs. *curseforge.Client
// implements it.
type API interface {
	GetGames(ctx context.Context, apiKey string, page paging.PageRequest) (*curseforge.Page[curseforge.Game], error)
	GetGame(ctx context.Context, apiKey string, gameID int) (*curseforge.Game, error)
	GetGameVersions(ctx context.Context, apiKey string, gameID int) ([]curseforge.GameVersionGroup, error)
	GetGameVersionTypes(ctx context.Context, apiKey string, gameID int) ([]curseforge.GameVersionType, error)
	SearchMods(ctx context.Context, apiKey string, gameID int, q curseforge.SearchQuery, page paging.PageRequest) (*curseforge.Page[curseforge.Mod], error)
	GetMod(ctx context.Context, apiKey string, modID int) (*curseforge.Mod, error)
	GetModFiles(ctx context.Context, apiKey string, modID int, page paging.PageRequest) (*curseforge.Page[curseforge.ModFile], error)
	GetFeaturedMods(ctx context.Context, apiKey string, gameID int) (*curseforge.FeaturedMods, error)
}

// Config holds catalog configuration.
type Config struct {
	Cache  query.Config
	Paging paging.Defaults
}

// Catalog fetches catalog data through a request cache.
type Catalog struct {
	api      API
	cache    *query.Cache
	defaults paging.Defaults
}

// New creates a catalog over api.
func New(api API, cfg Config) *Catalog {
	if cfg.Paging.PageSize <= 0 {
		cfg.Paging = paging.DefaultDefaults()
	}
	if cfg.Cache.ShouldRetry == nil {
		cfg.Cache.ShouldRetry = Retryable
	}

	return &Catalog{
		api:      api,
		cache:    query.NewCache(cfg.Cache),
		defaults: cfg.Paging,
	}
}

// Retryable reports whether a failed request may be retried. Configuration
// errors are raised before dispatch and never retried.
func Retryable(err error) bool {
	return !curseforge.IsConfigurationError(err) && !errors.Is(err, ErrNotDispatched)
}

// Defaults returns the pagination defaults.
func (c *Catalog) Defaults() paging.Defaults {
	return c.defaults
}

// Cache returns the underlying request cache.
func (c *Catalog) Cache() *query.Cache {
	return c.cache
}

// normalizePage replaces a non-positive page size with the default one and
// a negative index with the first page.
func (c *Catalog) normalizePage(page paging.PageRequest) paging.PageRequest {
	if page.PageSize <= 0 {
		page.PageSize = c.defaults.PageSize
	}
	if page.PageIndex < 0 {
		page.PageIndex = paging.DefaultPageIndex
	}
	return page
}

// ListGames fetches one page of games.
func (c *Catalog) ListGames(ctx context.Context, credential string, page paging.PageRequest) (*curseforge.Page[curseforge.Game], error) {
	if credential == "" {
		return nil, ErrNotDispatched
	}

	page = c.normalizePage(page)
	return query.Fetch(ctx, c.cache, GamesKey(credential, page),
		func(ctx context.Context) (*curseforge.Page[curseforge.Game], error) {
			return c.api.GetGames(ctx, credential, page)
		})
}

// Game fetches a single game. A game that does not exist yields nil and no
// error.
func (c *Catalog) Game(ctx context.Context, credential string, gameID int) (*curseforge.Game, error) {
	if credential == "" {
		return nil, ErrNotDispatched
	}
	if gameID <= 0 {
		return nil, curseforge.ErrInvalidGameID
	}

	return query.Fetch(ctx, c.cache, GameKey(credential, gameID),
		func(ctx context.Context) (*curseforge.Game, error) {
			return absentOnNotFound(c.api.GetGame(ctx, credential, gameID))
		})
}

// GameVersions fetches the version strings of a game, merged across all
// version types, deduplicated and sorted bytewise.
func (c *Catalog) GameVersions(ctx context.Context, credential string, gameID int) ([]string, error) {
	if credential == "" {
		return nil, ErrNotDispatched
	}
	if gameID <= 0 {
		return nil, curseforge.ErrInvalidGameID
	}

	return query.Fetch(ctx, c.cache, GameVersionsKey(credential, gameID),
		func(ctx context.Context) ([]string, error) {
			groups, err := c.api.GetGameVersions(ctx, credential, gameID)
			if errors.Is(err, curseforge.ErrNotFound) {
				return []string{}, nil
			}
			if err != nil {
				return nil, err
			}
			return curseforge.FlattenVersions(groups), nil
		})
}

// GameVersionTypes fetches the version types of a game. A game without
// version types, or one that does not exist, yields an empty list.
func (c *Catalog) GameVersionTypes(ctx context.Context, credential string, gameID int) ([]curseforge.GameVersionType, error) {
	if credential == "" {
		return nil, ErrNotDispatched
	}
	if gameID <= 0 {
		return nil, curseforge.ErrInvalidGameID
	}

	return query.Fetch(ctx, c.cache, GameVersionTypesKey(credential, gameID),
		func(ctx context.Context) ([]curseforge.GameVersionType, error) {
			types, err := c.api.GetGameVersionTypes(ctx, credential, gameID)
			if errors.Is(err, curseforge.ErrNotFound) || (err == nil && types == nil) {
				return []curseforge.GameVersionType{}, nil
			}
			return types, err
		})
}

// SearchMods fetches one page of a game's mods matching q.
func (c *Catalog) SearchMods(ctx context.Context, credential string, gameID int, q curseforge.SearchQuery, page paging.PageRequest) (*curseforge.Page[curseforge.Mod], error) {
	if credential == "" {
		return nil, ErrNotDispatched
	}
	if gameID <= 0 {
		return nil, curseforge.ErrInvalidGameID
	}

	page = c.normalizePage(page)
	return query.Fetch(ctx, c.cache, SearchKey(credential, gameID, q, page),
		func(ctx context.Context) (*curseforge.Page[curseforge.Mod], error) {
			return c.api.SearchMods(ctx, credential, gameID, q, page)
		})
}

// Mod fetches a single mod. A mod that does not exist yields nil and no
// error.
func (c *Catalog) Mod(ctx context.Context, credential string, modID int) (*curseforge.Mod, error) {
	if credential == "" {
		return nil, ErrNotDispatched
	}
	if modID <= 0 {
		return nil, curseforge.ErrInvalidModID
	}

	return query.Fetch(ctx, c.cache, ModKey(credential, modID),
		func(ctx context.Context) (*curseforge.Mod, error) {
			return absentOnNotFound(c.api.GetMod(ctx, credential, modID))
		})
}

// ModFiles fetches one page of a mod's files. A mod that does not exist
// yields an empty page.
func (c *Catalog) ModFiles(ctx context.Context, credential string, modID int, page paging.PageRequest) (*curseforge.Page[curseforge.ModFile], error) {
	if credential == "" {
		return nil, ErrNotDispatched
	}
	if modID <= 0 {
		return nil, curseforge.ErrInvalidModID
	}

	page = c.normalizePage(page)
	return query.Fetch(ctx, c.cache, ModFilesKey(credential, modID, page),
		func(ctx context.Context) (*curseforge.Page[curseforge.ModFile], error) {
			files, err := c.api.GetModFiles(ctx, credential, modID, page)
			if errors.Is(err, curseforge.ErrNotFound) {
				return &curseforge.Page[curseforge.ModFile]{Data: []curseforge.ModFile{}}, nil
			}
			return files, err
		})
}

// FeaturedMods fetches the featured mods of a game. When the featured list
// is empty the popular list of the same response is returned instead.
func (c *Catalog) FeaturedMods(ctx context.Context, credential string, gameID int) ([]curseforge.Mod, error) {
	if credential == "" {
		return nil, ErrNotDispatched
	}
	if gameID <= 0 {
		return nil, curseforge.ErrInvalidGameID
	}

	return query.Fetch(ctx, c.cache, FeaturedKey(credential, gameID),
		func(ctx context.Context) ([]curseforge.Mod, error) {
			featured, err := c.api.GetFeaturedMods(ctx, credential, gameID)
			if err != nil {
				return nil, err
			}
			if len(featured.Featured) == 0 {
				slog.Debug("no featured mods, falling back to popular",
					"game_id", gameID,
					"popular", len(featured.Popular))
			}
			return featured.Pick(), nil
		})
}

// absentOnNotFound turns a not-found error into an absent entity so it is
// cached as a result instead of retried as a failure.
func absentOnNotFound[T any](entity *T, err error) (*T, error) {
	if errors.Is(err, curseforge.ErrNotFound) {
		return nil, nil
	}
	return entity, err
}
