package config

import (
	"testing"
	"time"

	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("INCIDENT_API_URL", "http://api.local:3000/")
	t.Setenv("API_KEYS", " key-1 , ,key-2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "http://api.local:3000", cfg.IncidentAPIURL)
	assert.Equal(t, 30*time.Second, cfg.PollInterval(models.RoleAdmin))
	assert.Equal(t, 30*time.Second, cfg.PollInterval(models.RolePublic))
	assert.Equal(t, 5*time.Second, cfg.PollInterval(models.RoleWorker))
	assert.Equal(t, []string{"key-1", "key-2"}, cfg.APIKeys)
	assert.InDelta(t, 20.5937, cfg.MapFallbackLat, 1e-9)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("INCIDENT_API_URL", "https://incidents.example.org")
	t.Setenv("WORKER_POLL_INTERVAL", "2s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MAP_FALLBACK_LON", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.WorkerPollInterval)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.InDelta(t, 78.9629, cfg.MapFallbackLon, 1e-9)
}

func TestLoadConfig_InvalidAPIURL(t *testing.T) {
	t.Setenv("INCIDENT_API_URL", "localhost")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INCIDENT_API_URL")
}

func TestLoadConfig_NonPositiveInterval(t *testing.T) {
	t.Setenv("INCIDENT_API_URL", "http://localhost:3000")
	t.Setenv("ADMIN_POLL_INTERVAL", "0s")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_POLL_INTERVAL")
}
