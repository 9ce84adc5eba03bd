package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "abc123"
retries = 5

[search]
debounce = "250ms"
trending_window = "week"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.TMDB.APIKey)
	assert.Equal(t, 5, cfg.TMDB.Retries)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "week", cfg.Search.TrendingWindow)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	os.Unsetenv("REELIST_TEST_MISSING_KEY")
	path := writeConfig(t, `
[tmdb]
api_key = "${REELIST_TEST_MISSING_KEY}"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Missing, "REELIST_TEST_MISSING_KEY")
	assert.Equal(t, path, cfgErr.Path)
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "abc123"

[search]
trending_window = "month"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.trending_window")
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	path := writeConfig(t, `
[search]
debounce = "1s"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tmdb.api_key")
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data/home")
	path := writeConfig(t, `
[tmdb]
api_key = "abc123"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.themoviedb.org", cfg.TMDB.BaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p", cfg.TMDB.ImageBaseURL)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.TMDB.CacheTTL)
	assert.Equal(t, 3, cfg.TMDB.Retries)
	assert.Equal(t, "/data/home/reelist/reelist.db", cfg.Database.Path)
	assert.Equal(t, 600*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 10*time.Second, cfg.Search.Timeout)
	assert.Equal(t, "day", cfg.Search.TrendingWindow)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ExplicitZeroCacheTTL(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "abc123"
cache_ttl = "0s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.TMDB.CacheTTL, "explicit zero disables the cache")
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, `[tmdb`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parsing config"), err.Error())
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWithoutValidation(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "verbose"
`)

	cfg, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, "verbose", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Validate())
}

func TestLoad_EnvVarDefault(t *testing.T) {
	os.Unsetenv("REELIST_TEST_OPTIONAL")
	path := writeConfig(t, `
[tmdb]
api_key = "abc123"

[log]
level = "${REELIST_TEST_OPTIONAL:-debug}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.TMDB.Retries)
	assert.Equal(t, 24*time.Hour, cfg.TMDB.CacheTTL)
	assert.Equal(t, []string{"tmdb.api_key: required"}, cfg.Validate())
}
