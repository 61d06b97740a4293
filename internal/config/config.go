// Package config loads the pipeline settings from environment variables
// (populated from a .env file in main.go) and validates them.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"
)

const (
	DefaultAPIURL  = "http://universities.hipolabs.com/search?country=United+States"
	DefaultDriver  = "sqlite"
	DefaultDSN     = "my_lite_store.db"
	DefaultTable   = "cal_uni"
	DefaultFilter  = "California"
	DefaultLogFile = "etl.log"
	DefaultMongoDB = "mydb"
	DefaultListen  = ":8080"

	defaultTimeoutSecs = 30
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds all configuration for the application.
type Config struct {
	APIURL      string
	HTTPTimeout time.Duration

	DBDriver string
	DBDSN    string
	Table    string

	NameFilter string

	LogFile  string
	LogLevel string

	// MongoConnString enables the Mongo mirror when set.
	MongoConnString string
	MongoDatabase   string

	ListenAddr string
}

// LoadConfig reads settings from the environment, falling back to defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIURL:          getEnv("API_URL", DefaultAPIURL),
		HTTPTimeout:     time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", defaultTimeoutSecs)) * time.Second,
		DBDriver:        getEnv("DB_DRIVER", DefaultDriver),
		DBDSN:           getEnv("DB_DSN", DefaultDSN),
		Table:           getEnv("TABLE_NAME", DefaultTable),
		NameFilter:      getEnv("NAME_FILTER", DefaultFilter),
		LogFile:         getEnv("LOG_FILE", DefaultLogFile),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		MongoConnString: os.Getenv("MONGO_CONNECTION_STRING"),
		MongoDatabase:   getEnv("MONGO_DATABASE", DefaultMongoDB),
		ListenAddr:      getEnv("LISTEN_ADDR", DefaultListen),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the settings are usable.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "sqlserver", "postgres":
	default:
		return fmt.Errorf("unsupported DB driver %q (want sqlite, sqlserver or postgres)", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("database DSN must not be empty")
	}
	if !identPattern.MatchString(c.Table) {
		return fmt.Errorf("invalid table name %q", c.Table)
	}
	if c.NameFilter == "" {
		return errors.New("name filter must not be empty")
	}
	if c.APIURL == "" {
		return errors.New("API URL must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP timeout must be positive")
	}
	return nil
}

// MirrorEnabled reports whether rows are also written to MongoDB.
func (c *Config) MirrorEnabled() bool {
	return c.MongoConnString != ""
}
