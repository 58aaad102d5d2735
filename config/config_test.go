package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_USER", "memberchat")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "memberchat")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Feed.PageSize)
	assert.Equal(t, 100, cfg.Feed.MaxPageSize)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("PORT", "9000")
	t.Setenv("FEED_PAGE_SIZE", "20")
	t.Setenv("FEED_MAX_PAGE_SIZE", "40")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6432, cfg.DB.Port)
	assert.Equal(t, 25, cfg.DB.MaxSize)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 20, cfg.Feed.PageSize)
	assert.Equal(t, 40, cfg.Feed.MaxPageSize)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "memberchat")
	// DB_PASSWORD and DB_NAME intentionally unset.

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestLoadConfigCollectsAllErrors(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("FEED_PAGE_SIZE", "0")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "FEED_PAGE_SIZE")
}

func TestLoadConfigPoolSizeClamped(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_POOL_SIZE", "1000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.DB.MaxSize)
}

func TestLoadConfigBcryptCostBounds(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BCRYPT_COST", "99")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestLoadConfigMaxPageSizeBelowDefault(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FEED_PAGE_SIZE", "50")
	t.Setenv("FEED_MAX_PAGE_SIZE", "25")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEED_MAX_PAGE_SIZE")
}
