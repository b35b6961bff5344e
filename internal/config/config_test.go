package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "directory.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "https://api.app.outscraper.com", cfg.Outscraper.BaseURL)
	assert.Equal(t, 100, cfg.Outscraper.Limit)
	assert.Equal(t, "en", cfg.Outscraper.Language)
	assert.Equal(t, 15, cfg.Scrape.TimeoutSecs)
	assert.Equal(t, 4, cfg.Enrich.Concurrency)
	assert.Equal(t, 50, cfg.Enrich.CheckpointEvery)
	assert.Equal(t, 500, cfg.Export.BatchSize)
	assert.Equal(t, "config", cfg.Keywords.Dir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("THERAPISTINDEX_STORE_DRIVER", "postgres")
	t.Setenv("THERAPISTINDEX_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
	assert.Error(t, err)
}
