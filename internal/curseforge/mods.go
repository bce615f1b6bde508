package curseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/steviee/cfbrowse/internal/paging"
)

// SearchMods searches the mods of a game.
func (c *Client) SearchMods(ctx context.Context, apiKey string, gameID int, q SearchQuery, page paging.PageRequest) (*Page[Mod], error) {
	params, err := SearchParams(gameID, q, page, c.defaults)
	if err != nil {
		return nil, err
	}

	slog.Debug("searching mods",
		"game_id", gameID,
		"search_filter", params.Get("searchFilter"),
		"sort_field", params.Get("sortField"),
		"sort_order", params.Get("sortOrder"),
		"index", params.Get("index"),
		"page_size", params.Get("pageSize"))

	var result Page[Mod]
	if err := c.getJSON(ctx, apiKey, "/mods/search", params, &result); err != nil {
		return nil, fmt.Errorf("search mods: %w", err)
	}

	slog.Debug("search completed",
		"hits", len(result.Data),
		"total", result.TotalCount())

	return &result, nil
}

// GetMod fetches a single mod.
func (c *Client) GetMod(ctx context.Context, apiKey string, modID int) (*Mod, error) {
	if modID <= 0 {
		return nil, ErrInvalidModID
	}

	slog.Debug("fetching mod", "mod_id", modID)

	var raw json.RawMessage
	if err := c.getJSON(ctx, apiKey, "/mods/"+strconv.Itoa(modID), nil, &raw); err != nil {
		return nil, fmt.Errorf("get mod %d: %w", modID, err)
	}

	mod, shape, err := DecodeEntity[Mod](raw)
	if err != nil {
		return nil, fmt.Errorf("get mod %d: %w", modID, err)
	}

	slog.Debug("mod retrieved",
		"mod_id", modID,
		"shape", shape.String(),
		"found", mod != nil)

	return mod, nil
}

// featuredModsRequest is the body of the featured mods endpoint.
type featuredModsRequest struct {
	GameID         int   `json:"gameId"`
	ExcludedModIDs []int `json:"excludedModIds"`
}

// GetFeaturedMods fetches the featured, popular and recently updated mods
// of a game.
func (c *Client) GetFeaturedMods(ctx context.Context, apiKey string, gameID int) (*FeaturedMods, error) {
	if gameID <= 0 {
		return nil, ErrInvalidGameID
	}

	body := featuredModsRequest{GameID: gameID, ExcludedModIDs: []int{}}

	var result struct {
		Data FeaturedMods `json:"data"`
	}
	if err := c.sendJSON(ctx, apiKey, http.MethodPost, "/mods/featured", nil, body, &result); err != nil {
		return nil, fmt.Errorf("get featured mods: %w", err)
	}

	slog.Debug("featured mods retrieved",
		"game_id", gameID,
		"featured", len(result.Data.Featured),
		"popular", len(result.Data.Popular))

	return &result.Data, nil
}

// GetModFiles fetches one page of a mod's files.
func (c *Client) GetModFiles(ctx context.Context, apiKey string, modID int, page paging.PageRequest) (*Page[ModFile], error) {
	if modID <= 0 {
		return nil, ErrInvalidModID
	}

	params := PageParams(page, c.defaults)

	slog.Debug("listing mod files",
		"mod_id", modID,
		"index", params.Get("index"),
		"page_size", params.Get("pageSize"))

	var result Page[ModFile]
	path := "/mods/" + strconv.Itoa(modID) + "/files"
	if err := c.getJSON(ctx, apiKey, path, params, &result); err != nil {
		return nil, fmt.Errorf("get mod files %d: %w", modID, err)
	}

	slog.Debug("mod files listed",
		"mod_id", modID,
		"count", len(result.Data),
		"total", result.TotalCount())

	return &result, nil
}
