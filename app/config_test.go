package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.Nil(t, err)

	assert.Equal(t, 5000, config.Port)
	assert.Equal(t, "0.0.0.0", config.Hostname)
	assert.Equal(t, "./chat.db", config.SQLite.File)
	assert.Equal(t, "./migrations", config.SQLite.Migrations)
	assert.Equal(t, 15*time.Second, config.Sweep.Interval)
	assert.Equal(t, 10*time.Second, config.Sweep.IdleAfter)
	assert.Equal(t, []string{"*"}, config.AllowedOrigins)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("SWEEP_IDLE_AFTER", "1m")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	config, err := LoadConfig()
	require.Nil(t, err)

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, 30*time.Second, config.Sweep.Interval)
	assert.Equal(t, time.Minute, config.Sweep.IdleAfter)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.AllowedOrigins)
}
