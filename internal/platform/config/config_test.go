package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("MEETSCHED_ADDR", ":9999")
		t.Setenv("MEETSCHED_SHUTDOWN_TIMEOUT", "5s")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	})
}
