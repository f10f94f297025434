package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Equal(t, time.Hour, c.SessionValidity)
	assert.Equal(t, 6, c.MinPasswordLength)
	assert.Equal(t, "avatars", c.S3.Bucket)
	assert.Equal(t, float64(1), c.GenerateRPS)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoad_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("THUMBKEEPER_GENERATE_ENDPOINT", "http://env:1")
	t.Setenv("THUMBKEEPER_LOG_LEVEL", "warn")

	path := writeTempJSON(t, "", "", map[string]any{
		"generate_endpoint": "http://json:2",
		"database_driver":   "pgx",
	})

	cfg, err := Load([]string{"-c", path, "-d", "sqlite", "-unrelated", "1"})
	require.NoError(t, err)

	assert.Equal(t, "http://json:2", cfg.GenerateEndpoint, "JSON overrides env")
	assert.Equal(t, "sqlite", cfg.DatabaseDriver, "flags override JSON")
	assert.Equal(t, "warn", cfg.LogLevel, "env overrides defaults")
	assert.Equal(t, "avatars", cfg.S3.Bucket)
}

func TestLoad_BadFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load([]string{"-rps", "fast"})
	require.Error(t, err)
}
