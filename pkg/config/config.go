package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	env     string
	apiPort string

	dbDriver string
	dbDSN    string

	logLevel   string
	logChannel string
	logFile    string

	ndbcBaseURL  string
	coopsBaseURL string
	spotTimezone string
	fetchTimeout int

	defaultUsername string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() *Config {
	fetchTimeout, _ := strconv.Atoi(getenv("FETCH_TIMEOUT", "30"))

	return &Config{
		env:             getenv("APP_ENV", "production"),
		apiPort:         getenv("API_PORT", "5001"),
		dbDriver:        getenv("DB_DRIVER", "mysql"),
		dbDSN:           getenv("DB_DSN", ""),
		logLevel:        getenv("LOG_LEVEL", "info"),
		logChannel:      getenv("LOG_CHANNEL", "stderr"),
		logFile:         getenv("LOG_FILE", "storage/logs/session-logger.log"),
		ndbcBaseURL:     getenv("NDBC_BASE_URL", ""),
		coopsBaseURL:    getenv("COOPS_BASE_URL", ""),
		spotTimezone:    getenv("SPOT_TIMEZONE", "US/Pacific"),
		fetchTimeout:    fetchTimeout,
		defaultUsername: getenv("DEFAULT_USERNAME", ""),
	}
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func (c *Config) GetAPIPort() string {
	return ":" + c.apiPort
}

func (c *Config) GetEnv() string {
	return c.env
}

func (c *Config) GetDBDriver() string {
	return c.dbDriver
}

func (c *Config) GetDBDSN() string {
	return c.dbDSN
}

func (c *Config) GetLogLevel() string {
	return c.logLevel
}

func (c *Config) GetLogChannel() string {
	return c.logChannel
}

func (c *Config) GetLogFile() string {
	return c.logFile
}

func (c *Config) GetNDBCBaseURL() string {
	return c.ndbcBaseURL
}

func (c *Config) GetCOOPSBaseURL() string {
	return c.coopsBaseURL
}

// GetSpotTimezone resolves the timezone sessions are submitted in. Falls
// back to UTC when the configured zone cannot be loaded.
func (c *Config) GetSpotTimezone() *time.Location {
	loc, err := time.LoadLocation(c.spotTimezone)
	if err != nil {
		zap.S().Warnf("Unknown SPOT_TIMEZONE %q, falling back to UTC", c.spotTimezone)
		return time.UTC
	}
	return loc
}

func (c *Config) GetFetchTimeout() time.Duration {
	return time.Duration(c.fetchTimeout) * time.Second
}

// GetDefaultUsername is the fallback applied by the submission endpoint when
// a request omits a username. Empty means no fallback: the request fails.
// The ingestion core itself always requires an explicit username.
func (c *Config) GetDefaultUsername() string {
	return c.defaultUsername
}
