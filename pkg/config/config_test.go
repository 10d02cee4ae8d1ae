package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "API_PORT", "DB_DRIVER", "DB_DSN", "LOG_LEVEL",
		"LOG_CHANNEL", "NDBC_BASE_URL", "COOPS_BASE_URL", "SPOT_TIMEZONE",
		"FETCH_TIMEOUT", "DEFAULT_USERNAME",
	} {
		// t.Setenv registers the restore; the unset makes the default apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "production", cfg.GetEnv())
	assert.Equal(t, ":5001", cfg.GetAPIPort())
	assert.Equal(t, "mysql", cfg.GetDBDriver())
	assert.Empty(t, cfg.GetDBDSN())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.Equal(t, "stderr", cfg.GetLogChannel())
	assert.Equal(t, 30*time.Second, cfg.GetFetchTimeout())
	assert.Empty(t, cfg.GetDefaultUsername())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("API_PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:test.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SPOT_TIMEZONE", "UTC")
	t.Setenv("FETCH_TIMEOUT", "10")
	t.Setenv("DEFAULT_USERNAME", "roshindelman")

	cfg := Load()

	assert.Equal(t, "development", cfg.GetEnv())
	assert.Equal(t, ":8080", cfg.GetAPIPort())
	assert.Equal(t, "sqlite", cfg.GetDBDriver())
	assert.Equal(t, "file:test.db", cfg.GetDBDSN())
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, time.UTC, cfg.GetSpotTimezone())
	assert.Equal(t, 10*time.Second, cfg.GetFetchTimeout())
	assert.Equal(t, "roshindelman", cfg.GetDefaultUsername())
}

func TestGetSpotTimezoneFallback(t *testing.T) {
	t.Setenv("SPOT_TIMEZONE", "Not/AZone")
	cfg := Load()
	assert.Equal(t, time.UTC, cfg.GetSpotTimezone())
}

func TestGetFetchTimeoutMalformed(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")
	cfg := Load()
	assert.Equal(t, time.Duration(0), cfg.GetFetchTimeout())
}
