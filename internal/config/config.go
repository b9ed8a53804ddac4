package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	DB     DBConfig
	TMDB   TMDBConfig
	Server ServerConfig
}

// DBConfig holds database configuration. The sqlite driver is intended for
// development and tests; mysql is the production driver.
type DBConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"mysql"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"3306"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASSWORD"`
	Database string `envconfig:"DB_NAME" default:"movie_catalog"`
	Path     string `envconfig:"DB_PATH" default:"movie_catalog.db"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
}

// TMDBConfig holds configuration for the external metadata provider. The API
// key is passed explicitly to the client and the importer; nothing reads it
// from ambient process state.
type TMDBConfig struct {
	APIKey      string        `envconfig:"TMDB_API_KEY"`
	BaseURL     string        `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	Language    string        `envconfig:"TMDB_LANGUAGE" default:"en-US"`
	WatchRegion string        `envconfig:"TMDB_WATCH_REGION" default:"US"`
	RateLimit   float64       `envconfig:"TMDB_RATE_LIMIT" default:"4"`
	Timeout     time.Duration `envconfig:"TMDB_TIMEOUT" default:"15s"`
	MaxRetries  int           `envconfig:"TMDB_MAX_RETRIES" default:"3"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DSN returns the MySQL data source name
func (c *DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to load db config: %w", err)
	}

	if err := envconfig.Process("", &cfg.TMDB); err != nil {
		return nil, fmt.Errorf("failed to load tmdb config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverMySQL, DriverSQLite)
	}
	if c.DB.Driver == DriverSQLite && c.DB.Path == "" {
		return fmt.Errorf("DB_PATH is required for the sqlite driver")
	}
	if c.TMDB.RateLimit <= 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must be positive")
	}
	if c.TMDB.MaxRetries < 0 {
		return fmt.Errorf("TMDB_MAX_RETRIES must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	return nil
}
