package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/credential"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/paging"
	"github.com/steviee/cfbrowse/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(paging.PageRequest{PageIndex: 2, PageSize: 20}, 45)

	assert.Equal(t, PageInfo{
		Page:       3,
		PageSize:   20,
		Index:      40,
		TotalCount: 45,
		TotalPages: 3,
		HasNext:    false,
		HasPrev:    true,
	}, info)
}

func TestPageFlags(t *testing.T) {
	d := paging.DefaultDefaults()

	p, err := PageFlags(3, 50, d)
	require.NoError(t, err)
	assert.Equal(t, paging.PageRequest{PageIndex: 2, PageSize: 50}, p)

	p, err = PageFlags(1, 0, d)
	require.NoError(t, err)
	assert.Equal(t, 20, p.PageSize)

	_, err = PageFlags(0, 20, d)
	assert.Error(t, err)

	_, err = PageFlags(1, 7, d)
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("432", "game")
	require.NoError(t, err)
	assert.Equal(t, 432, id)

	for _, bad := range []string{"", "0", "-1", "abc", "4.2"} {
		_, err := ParseID(bad, "game")
		assert.ErrorIs(t, err, curseforge.ErrConfiguration, bad)
	}
}

func TestOutputError(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")

	err := OutputError(&buf, true, boom)
	assert.Same(t, boom, err)

	var out Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "error", out.Status)
	assert.Equal(t, "boom", out.Error)

	buf.Reset()
	_ = OutputError(&buf, false, boom)
	assert.Empty(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"count": 2}))
	assert.JSONEq(t, `{"status":"success","data":{"count":2}}`, buf.String())
}

func TestExplain(t *testing.T) {
	err := Explain(catalog.ErrNotDispatched)
	assert.ErrorIs(t, err, catalog.ErrNotDispatched)
	assert.Contains(t, err.Error(), "cfbrowse auth set")

	other := errors.New("other")
	assert.Same(t, other, Explain(other))
}

func TestOpenCredentials_EnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CFBROWSE_API_KEY", "env-key")

	store, err := OpenCredentials(nil)
	require.NoError(t, err)
	assert.Equal(t, "env-key", store.Get())
	assert.Equal(t, credential.SourceEnv, store.Source())
}

func TestLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CFBROWSE_API_KEY", "")
	t.Setenv("CFBROWSE_BASE_URL", "http://127.0.0.1:9999/v1")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")

	env, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999/v1", env.Config.API.BaseURL)
	assert.Equal(t, "", env.Credentials.Get())
	assert.Equal(t, 20, env.Catalog.Defaults().PageSize)

	path, err := state.GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, path, env.ConfigPath)
}

func TestLoad_UnusableStorageFallsBackToDefaults(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "config-home")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	t.Setenv("XDG_CONFIG_HOME", blocker)
	t.Setenv("CFBROWSE_BASE_URL", "")
	t.Setenv("CFBROWSE_API_KEY", "env-key")

	env, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, state.DefaultConfig(), env.Config)
	assert.Equal(t, "env-key", env.Credentials.Get())
	assert.Equal(t, 20, env.Catalog.Defaults().PageSize)

	err = env.Credentials.Set("entered-key")
	assert.ErrorIs(t, err, credential.ErrNotPersisted)
	assert.Equal(t, "entered-key", env.Credentials.Get())
}

func TestLoad_RejectsBadBaseURL(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CFBROWSE_BASE_URL", "not a url")

	_, err := Load(nil)
	assert.Error(t, err)
}
