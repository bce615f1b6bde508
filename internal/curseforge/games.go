package curseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/steviee/cfbrowse/internal/paging"
)

// GetGames fetches one page of the games list.
func (c *Client) GetGames(ctx context.Context, apiKey string, page paging.PageRequest) (*Page[Game], error) {
	params := PageParams(page, c.defaults)

	slog.Debug("listing games",
		"index", params.Get("index"),
		"page_size", params.Get("pageSize"))

	var result Page[Game]
	if err := c.getJSON(ctx, apiKey, "/games", params, &result); err != nil {
		return nil, fmt.Errorf("get games: %w", err)
	}

	slog.Debug("games listed",
		"count", len(result.Data),
		"total", result.TotalCount())

	return &result, nil
}

// GetGame fetches a single game. The endpoint has been seen answering both
// with and without a {"data": ...} envelope; both shapes are accepted.
func (c *Client) GetGame(ctx context.Context, apiKey string, gameID int) (*Game, error) {
	if gameID <= 0 {
		return nil, ErrInvalidGameID
	}

	slog.Debug("fetching game", "game_id", gameID)

	var raw json.RawMessage
	if err := c.getJSON(ctx, apiKey, "/games/"+strconv.Itoa(gameID), nil, &raw); err != nil {
		return nil, fmt.Errorf("get game %d: %w", gameID, err)
	}

	game, shape, err := DecodeEntity[Game](raw)
	if err != nil {
		return nil, fmt.Errorf("get game %d: %w", gameID, err)
	}

	slog.Debug("game retrieved",
		"game_id", gameID,
		"shape", shape.String(),
		"found", game != nil)

	return game, nil
}

// GetGameVersions fetches the version groups of a game.
func (c *Client) GetGameVersions(ctx context.Context, apiKey string, gameID int) ([]GameVersionGroup, error) {
	if gameID <= 0 {
		return nil, ErrInvalidGameID
	}

	var result struct {
		Data []GameVersionGroup `json:"data"`
	}
	path := "/games/" + strconv.Itoa(gameID) + "/versions"
	if err := c.getJSON(ctx, apiKey, path, nil, &result); err != nil {
		return nil, fmt.Errorf("get game versions %d: %w", gameID, err)
	}

	slog.Debug("game versions retrieved",
		"game_id", gameID,
		"groups", len(result.Data))

	return result.Data, nil
}

// GetGameVersionTypes fetches the version types of a game.
func (c *Client) GetGameVersionTypes(ctx context.Context, apiKey string, gameID int) ([]GameVersionType, error) {
	if gameID <= 0 {
		return nil, ErrInvalidGameID
	}

	var result struct {
		Data []GameVersionType `json:"data"`
	}
	path := "/games/" + strconv.Itoa(gameID) + "/version-types"
	if err := c.getJSON(ctx, apiKey, path, nil, &result); err != nil {
		return nil, fmt.Errorf("get game version types %d: %w", gameID, err)
	}

	return result.Data, nil
}

// FlattenVersions merges all groups into one list of unique version strings
// sorted bytewise. "1.10" therefore sorts before "1.9"; callers that need
// version-aware ordering must sort again.
func FlattenVersions(groups []GameVersionGroup) []string {
	seen := make(map[string]struct{})
	versions := make([]string, 0)
	for _, g := range groups {
		for _, v := range g.Versions {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			versions = append(versions, v)
		}
	}
	sort.Strings(versions)
	return versions
}
