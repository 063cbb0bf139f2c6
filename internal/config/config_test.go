package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/dispatch")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30.0, cfg.AmbulanceRadiusKm)
	assert.Equal(t, 50.0, cfg.HospitalRadiusKm)
	assert.False(t, cfg.IncludeOffline)
	assert.Equal(t, 40.0, cfg.AverageSpeedKmh)
	assert.Equal(t, 60*time.Second, cfg.ConfirmationTimeout)
	assert.Equal(t, 10*time.Second, cfg.WatchdogInterval)
	assert.Equal(t, 3, cfg.WebhookMaxRetries)
	assert.Equal(t, time.Second, cfg.WebhookBaseDelay)
	assert.Equal(t, "dispatch.rooms", cfg.NATSSubjectPrefix)
	assert.Equal(t, 5*time.Minute, cfg.IncidentCacheTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("AMBULANCE_RADIUS_KM", "12.5")
	t.Setenv("DISPATCH_INCLUDE_OFFLINE", "true")
	t.Setenv("CONFIRMATION_TIMEOUT", "90s")
	t.Setenv("API_KEYS", " key-1 , ,key-2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 12.5, cfg.AmbulanceRadiusKm)
	assert.True(t, cfg.IncludeOffline)
	assert.Equal(t, 90*time.Second, cfg.ConfirmationTimeout)
	assert.Equal(t, []string{"key-1", "key-2"}, cfg.APIKeys)
}

func TestLoadConfig_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}
