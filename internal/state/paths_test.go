package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/test-config")

		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/test-config", ConfigDirName), dir)
	})

	t.Run("uses ~/.config when XDG_CONFIG_HOME not set", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)

		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", ConfigDirName), dir)
	})
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/cfbrowse/config.yaml", path)
}

func TestGetCredentialPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := GetCredentialPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/cfbrowse/credential", path)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "existing directory is fine")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
