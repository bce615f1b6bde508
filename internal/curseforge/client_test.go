package curseforge

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/steviee/cfbrowse/internal/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-api-key"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&Config{BaseURL: server.URL})
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name            string
		config          *Config
		expectedURL     string
		expectedUA      string
		expectedTimeout time.Duration
		expectedSize    int
	}{
		{
			name:            "nil config uses defaults",
			config:          nil,
			expectedURL:     DefaultBaseURL,
			expectedUA:      UserAgent,
			expectedTimeout: DefaultTimeout,
			expectedSize:    paging.DefaultPageSize,
		},
		{
			name: "custom config",
			config: &Config{
				BaseURL:   "https://custom.api.com",
				Timeout:   10 * time.Second,
				UserAgent: "custom-agent",
				Paging:    paging.Defaults{PageSize: 50, PageSizes: []int{50}},
			},
			expectedURL:     "https://custom.api.com",
			expectedUA:      "custom-agent",
			expectedTimeout: 10 * time.Second,
			expectedSize:    50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.config)

			require.NotNil(t, client)
			assert.Equal(t, tt.expectedURL, client.baseURL)
			assert.Equal(t, tt.expectedUA, client.userAgent)
			assert.Equal(t, tt.expectedTimeout, client.httpClient.Timeout)
			assert.Equal(t, tt.expectedSize, client.Defaults().PageSize)
			assert.NotNil(t, client.rateLimiter)
		})
	}
}

func TestClient_SendsAPIKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testKey, r.Header.Get(APIKeyHeader))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.GetGames(context.Background(), testKey, paging.PageRequest{PageSize: 20})
	require.NoError(t, err)
}

func TestClient_GetGames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "40", r.URL.Query().Get("index"))
		assert.Equal(t, "20", r.URL.Query().Get("pageSize"))

		_ = json.NewEncoder(w).Encode(Page[Game]{
			Data: []Game{{ID: 432, Name: "Minecraft"}, {ID: 1, Name: "World of Warcraft"}},
			Pagination: &PaginationMetadata{
				Index: 40, PageSize: 20, ResultCount: 2, TotalCount: 45,
			},
		})
	})

	page, err := client.GetGames(context.Background(), testKey, paging.PageRequest{PageIndex: 2, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Minecraft", page.Data[0].Name)
	assert.Equal(t, 45, page.TotalCount())
}

func TestClient_GetGame(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantName  string
		wantNil   bool
		wantErrIs error
	}{
		{name: "wrapped", status: http.StatusOK, body: `{"data":{"id":432,"name":"Minecraft"}}`, wantName: "Minecraft"},
		{name: "unwrapped", status: http.StatusOK, body: `{"id":432,"name":"Minecraft"}`, wantName: "Minecraft"},
		{name: "null entity", status: http.StatusOK, body: `{"data":null}`, wantNil: true},
		{name: "not found", status: http.StatusNotFound, body: ``, wantErrIs: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/games/432", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			game, err := client.GetGame(context.Background(), testKey, 432)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, game)
				return
			}
			require.NotNil(t, game)
			assert.Equal(t, tt.wantName, game.Name)
		})
	}
}

func TestClient_GetGame_InvalidID(t *testing.T) {
	client := NewClient(nil)
	_, err := client.GetGame(context.Background(), testKey, 0)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestClient_SearchMods(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/mods/search", r.URL.Path)
		assert.Equal(t, "432", q.Get("gameId"))
		assert.Equal(t, "jei", q.Get("searchFilter"))
		assert.Equal(t, "2", q.Get("sortField"))
		assert.Equal(t, "desc", q.Get("sortOrder"))
		assert.Equal(t, "0", q.Get("index"))
		assert.Equal(t, "10", q.Get("pageSize"))

		_, _ = w.Write([]byte(`{"data":[{"id":238222,"gameId":432,"name":"Just Enough Items"}],
			"pagination":{"index":0,"pageSize":10,"resultCount":1,"totalCount":1}}`))
	})

	q := SearchQuery{SearchFilter: "jei", SortField: SortPopularity, SortOrder: SortDescending}
	page, err := client.SearchMods(context.Background(), testKey, 432, q, paging.PageRequest{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 238222, page.Data[0].ID)
}

func TestClient_SearchMods_MissingGameIDNotSent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	_, err := client.SearchMods(context.Background(), testKey, 0, SearchQuery{}, paging.PageRequest{PageSize: 10})
	assert.ErrorIs(t, err, ErrInvalidGameID)
}

func TestClient_GetFeaturedMods(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/mods/featured", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"gameId":432,"excludedModIds":[]}`, string(body))

		_, _ = w.Write([]byte(`{"data":{"featured":[],"popular":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"recentlyUpdated":[]}}`))
	})

	featured, err := client.GetFeaturedMods(context.Background(), testKey, 432)
	require.NoError(t, err)
	assert.Empty(t, featured.Featured)

	picked := featured.Pick()
	require.Len(t, picked, 2)
	assert.Equal(t, "A", picked[0].Name)
	assert.Equal(t, "B", picked[1].Name)
}

func TestClient_GetModFiles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mods/238222/files", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("index"))
		assert.Equal(t, "50", r.URL.Query().Get("pageSize"))
		_, _ = w.Write([]byte(`{"data":[{"id":9,"fileName":"jei.jar","fileLength":1536}],
			"pagination":{"index":100,"pageSize":50,"resultCount":1,"totalCount":101}}`))
	})

	page, err := client.GetModFiles(context.Background(), testKey, 238222, paging.PageRequest{PageIndex: 2, PageSize: 50})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "jei.jar", page.Data[0].FileName)
	assert.Equal(t, 101, page.TotalCount())
}

func TestClient_GetGameVersions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/432/versions", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"type":1,"versions":["1.9","1.10"]},{"type":2,"versions":["1.10","1.2"]}]}`))
	})

	groups, err := client.GetGameVersions(context.Background(), testKey, 432)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"1.10", "1.2", "1.9"}, FlattenVersions(groups))
}

func TestClient_GetGameVersionTypes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/432/version-types", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":73250,"gameId":432,"name":"Minecraft 1.20","slug":"minecraft-1-20"}]}`))
	})

	types, err := client.GetGameVersionTypes(context.Background(), testKey, 432)
	require.NoError(t, err)
	assert.Equal(t, []GameVersionType{{ID: 73250, GameID: 432, Name: "Minecraft 1.20", Slug: "minecraft-1-20"}}, types)

	_, err = client.GetGameVersionTypes(context.Background(), testKey, 0)
	assert.ErrorIs(t, err, ErrInvalidGameID)
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErrIs   error
		wantMessage string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantErrIs: ErrRateLimitExceeded},
		{name: "structured error", status: http.StatusForbidden, body: `{"errorCode":403,"errorMessage":"invalid api key"}`, wantMessage: "curseforge API error (status 403): invalid api key"},
		{name: "plain text error", status: http.StatusBadGateway, body: `upstream down`, wantMessage: "curseforge API error (status 502): upstream down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetGames(context.Background(), testKey, paging.PageRequest{PageSize: 20})
			require.Error(t, err)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			}
			if tt.wantMessage != "" {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.status, apiErr.StatusCode)
				assert.Equal(t, tt.wantMessage, apiErr.Error())
			}
		})
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.GetGames(context.Background(), testKey, paging.PageRequest{PageSize: 20})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFlattenVersions(t *testing.T) {
	assert.Empty(t, FlattenVersions(nil))
	assert.Equal(t,
		[]string{"1.0", "1.18.2", "1.20", "1.20.1"},
		FlattenVersions([]GameVersionGroup{
			{Type: 1, Versions: []string{"1.20.1", "1.20"}},
			{Type: 2, Versions: []string{"1.18.2", "1.20", "1.0"}},
			{Type: 3},
		}))
}

func TestGame_ImageURL(t *testing.T) {
	var nilGame *Game
	assert.Equal(t, "", nilGame.ImageURL())
	assert.Equal(t, "", (&Game{}).ImageURL())
	assert.Equal(t, "tile", (&Game{Assets: &GameAssets{TileURL: "tile", CoverURL: "cover"}}).ImageURL())
	assert.Equal(t, "icon", (&Game{Assets: &GameAssets{IconURL: "icon", TileURL: "tile"}}).ImageURL())
}
