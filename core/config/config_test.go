package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 100, cfg.API.PageSize)
	assert.Equal(t, 3, cfg.API.RetryAttempts)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)

	assert.Equal(t, "info", cfg.Log.Level)

	assert.Equal(t, "data/hierarchy.yaml", cfg.Paths.Hierarchy)
	assert.Equal(t, "data/hierarchy.json", cfg.Paths.Snapshot)
	assert.Equal(t, "data/orphans.json", cfg.Paths.OrphanReport)
	assert.Equal(t, "data/stacksync.lock", cfg.Paths.Lock)

	assert.Equal(t, "8081", cfg.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://wiki.example.com")
	t.Setenv("API_TOKEN_ID", "id123")
	t.Setenv("API_PAGE_SIZE", "25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PATHS_HIERARCHY", "/etc/stacksync/hierarchy.yaml")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://wiki.example.com", cfg.API.BaseURL)
	assert.Equal(t, "id123", cfg.API.TokenID)
	assert.Equal(t, 25, cfg.API.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/etc/stacksync/hierarchy.yaml", cfg.Paths.Hierarchy)
}
