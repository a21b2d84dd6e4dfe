package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JANUS_SECRET", validSecret)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	assert.Equal(t, time.Hour, cfg.RefreshTTL)
	assert.NotEmpty(t, cfg.RedisURL)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JANUS_SECRET", validSecret)
	t.Setenv("JANUS_ADDR", ":8080")
	t.Setenv("JANUS_ACCESS_TTL", "5m")
	t.Setenv("JANUS_REFRESH_TTL", "72h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 72*time.Hour, cfg.RefreshTTL)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("JANUS_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JANUS_SECRET")
}

func TestLoadShortSecret(t *testing.T) {
	t.Setenv("JANUS_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "at least"))
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("JANUS_SECRET", validSecret)
	t.Setenv("JANUS_ACCESS_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}
