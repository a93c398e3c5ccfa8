package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "Studio Albums", cfg.Library.StudioDirName)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.False(t, cfg.Scan.WatchLibrary)
	assert.Equal(t, []string{"Grateful Dead"}, cfg.Library.Artists)
	assert.True(t, filepath.IsAbs(cfg.Library.Path))
	assert.True(t, filepath.IsAbs(cfg.Library.SongDBPath))
}

func TestLoadConfigFlagsBeatEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig([]string{"-port", "9999"})
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoadConfigEnvValues(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SCAN_WORKERS", "8")
	t.Setenv("WATCH_LIBRARY", "yes")
	t.Setenv("ARTISTS", "Grateful Dead, Jerry Garcia Band")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, 8, cfg.Scan.Workers)
	assert.True(t, cfg.Scan.WatchLibrary)
	assert.Equal(t, []string{"Grateful Dead", "Jerry Garcia Band"}, cfg.Library.Artists)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("ENV", "testing")
	_, err := LoadConfig(nil)
	assert.Error(t, err)
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "soon")
	_, err := LoadConfig(nil)
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("# comment\nSONGDB_PATH=\"/tmp/songs.json\"\n"), 0o644))
	t.Setenv("SONGDB_PATH", "") // ensure unset so the file value applies
	require.NoError(t, os.Unsetenv("SONGDB_PATH"))

	cfg, err := LoadConfig([]string{"-env-file", envFile})
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/tmp/songs.json"), cfg.Library.SongDBPath)
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/music", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "music"), got)
}
