package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendBolt, cfg.Storage.Backend)
	assert.Equal(t, "tasknest_tasks", cfg.Storage.Key)
	assert.Equal(t, 30*time.Second, cfg.Resync.Interval)
	assert.False(t, cfg.Tasks.RetainCompletedAt)
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.Contains(t, cfg.Database.URL, "postgres://tasknest:")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("RESYNC_INTERVAL", "45")
	t.Setenv("TASKS_RETAIN_COMPLETED_AT", "true")
	t.Setenv("TASKS_TIMEZONE", "UTC")
	t.Setenv("NOTIFICATION_CAPACITY", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, 45*time.Second, cfg.Resync.Interval)
	assert.True(t, cfg.Tasks.RetainCompletedAt)
	assert.Equal(t, 8, cfg.Notifications.Capacity)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "localstorage")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsBadTimeZone(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("TASKS_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}
