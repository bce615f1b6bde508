package games

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstream serves a small catalog of 45 games.
func upstream(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/games", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		index, _ := strconv.Atoi(r.URL.Query().Get("index"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
		var data []map[string]any
		for id := index + 1; id <= index+size && id <= 45; id++ {
			data = append(data, map[string]any{"id": id, "name": fmt.Sprintf("Game %d", id), "slug": fmt.Sprintf("game-%d", id)})
		}
		writeJSON(w, map[string]any{
			"data":       data,
			"pagination": map[string]int{"index": index, "pageSize": size, "resultCount": len(data), "totalCount": 45},
		})
	})
	mux.HandleFunc("GET /v1/games/432", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, map[string]any{"data": map[string]any{
			"id": 432, "name": "Minecraft", "slug": "minecraft",
			"dateModified": "2024-05-01T10:00:00Z",
			"assets":       map[string]string{"iconUrl": "https://media.example/mc.png"},
		}})
	})
	mux.HandleFunc("GET /v1/games/432/versions", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, map[string]any{"data": []map[string]any{
			{"type": 1, "versions": []string{"1.20.1", "1.19.2"}},
			{"type": 2, "versions": []string{"1.20.1", "1.12.2"}},
		}})
	})
	mux.HandleFunc("GET /v1/games/432/version-types", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, map[string]any{"data": []map[string]any{
			{"id": 73250, "gameId": 432, "name": "Minecraft 1.20", "slug": "minecraft-1-20"},
			{"id": 68441, "gameId": 432, "name": "Modloader", "slug": "modloader"},
		}})
	})
	mux.HandleFunc("GET /v1/games/999", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	})
	mux.HandleFunc("GET /v1/games/999/versions", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func execute(t *testing.T, baseURL, apiKey string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CFBROWSE_BASE_URL", baseURL)
	t.Setenv("CFBROWSE_API_KEY", apiKey)

	root := &cobra.Command{Use: "cfbrowse", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().Bool("json", false, "")
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().String("api-key", "", "")
	root.AddCommand(NewCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"games"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()

	assert.Equal(t, "games", cmd.Use)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
	assert.Len(t, cmd.Commands(), 3)
}

func TestList_ThirdPage(t *testing.T) {
	srv, _ := upstream(t)

	out, err := execute(t, srv.URL+"/v1", "test-key", "list", "--page", "3", "--json")
	require.NoError(t, err)

	var result struct {
		Status string `json:"status"`
		Data   struct {
			Games      []GameData `json:"games"`
			Pagination struct {
				Page       int  `json:"page"`
				Index      int  `json:"index"`
				TotalPages int  `json:"total_pages"`
				HasNext    bool `json:"has_next"`
				HasPrev    bool `json:"has_previous"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, "success", result.Status)
	require.Len(t, result.Data.Games, 5)
	assert.Equal(t, 41, result.Data.Games[0].ID)
	assert.Equal(t, 3, result.Data.Pagination.Page)
	assert.Equal(t, 40, result.Data.Pagination.Index)
	assert.Equal(t, 3, result.Data.Pagination.TotalPages)
	assert.False(t, result.Data.Pagination.HasNext)
	assert.True(t, result.Data.Pagination.HasPrev)
}

func TestList_Table(t *testing.T) {
	srv, _ := upstream(t)

	out, err := execute(t, srv.URL+"/v1", "test-key", "list", "--page-size", "10")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Game 10")
	assert.NotContains(t, out, "Game 11")
	assert.Contains(t, out, "Page 1 of 5 (45 games). Next: --page 2")
}

func TestList_NoCredential(t *testing.T) {
	srv, calls := upstream(t)

	_, err := execute(t, srv.URL+"/v1", "", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key configured")
	assert.Contains(t, err.Error(), "cfbrowse auth set")
	assert.Zero(t, calls.Load(), "nothing is sent without a key")
}

func TestList_InvalidPageFlags(t *testing.T) {
	srv, calls := upstream(t)

	_, err := execute(t, srv.URL+"/v1", "test-key", "list", "--page-size", "7")
	require.Error(t, err)

	_, err = execute(t, srv.URL+"/v1", "test-key", "list", "--page", "0")
	require.Error(t, err)
	assert.Zero(t, calls.Load())
}

func TestShow(t *testing.T) {
	srv, _ := upstream(t)

	out, err := execute(t, srv.URL+"/v1", "test-key", "show", "432", "--json")
	require.NoError(t, err)

	var result struct {
		Data GameDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Minecraft", result.Data.Name)
	assert.Equal(t, "https://media.example/mc.png", result.Data.ImageURL)
	assert.Equal(t, []string{"1.12.2", "1.19.2", "1.20.1"}, result.Data.Versions)
}

func TestShow_Human(t *testing.T) {
	srv, _ := upstream(t)

	out, err := execute(t, srv.URL+"/v1", "test-key", "show", "432")
	require.NoError(t, err)
	assert.Contains(t, out, "Minecraft (432)")
	assert.Contains(t, out, "Modified: 2024-05-01")
	assert.Contains(t, out, "Versions: 3")
}

func TestShow_NotFound(t *testing.T) {
	srv, _ := upstream(t)

	_, err := execute(t, srv.URL+"/v1", "test-key", "show", "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game 999 not found")
}

func TestShow_InvalidID(t *testing.T) {
	_, err := execute(t, "http://127.0.0.1:1/v1", "test-key", "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid game id "abc"`)
}

func TestVersions(t *testing.T) {
	srv, _ := upstream(t)

	out, err := execute(t, srv.URL+"/v1", "test-key", "versions", "432")
	require.NoError(t, err)
	assert.Equal(t, "1.12.2\n1.19.2\n1.20.1\n", out)

	out, err = execute(t, srv.URL+"/v1", "test-key", "versions", "999")
	require.NoError(t, err)
	assert.Equal(t, "No versions found.\n", out)
}

func TestVersions_Types(t *testing.T) {
	srv, _ := upstream(t)

	out, err := execute(t, srv.URL+"/v1", "test-key", "versions", "432", "--types")
	require.NoError(t, err)
	assert.Contains(t, out, "73250    Minecraft 1.20")
	assert.Contains(t, out, "modloader")

	out, err = execute(t, srv.URL+"/v1", "test-key", "versions", "432", "-t", "--json")
	require.NoError(t, err)
	var result struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Data.Count)

	out, err = execute(t, srv.URL+"/v1", "test-key", "versions", "999", "--types")
	require.NoError(t, err)
	assert.Equal(t, "No version types found.\n", out)
}
