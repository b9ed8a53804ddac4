package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithEnvVars(t *testing.T) {
	os.Setenv("TMDB_API_KEY", "test-key-123")
	os.Setenv("DB_PASSWORD", "test-password")
	defer func() {
		os.Unsetenv("TMDB_API_KEY")
		os.Unsetenv("DB_PASSWORD")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TMDB.APIKey != "test-key-123" {
		t.Errorf("TMDB.APIKey = %v, want %v", cfg.TMDB.APIKey, "test-key-123")
	}
	if cfg.DB.Password != "test-password" {
		t.Errorf("DB.Password = %v, want %v", cfg.DB.Password, "test-password")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// DB defaults
	if cfg.DB.Driver != DriverMySQL {
		t.Errorf("DB.Driver = %v, want %v", cfg.DB.Driver, DriverMySQL)
	}
	if cfg.DB.Host != "localhost" {
		t.Errorf("DB.Host = %v, want %v", cfg.DB.Host, "localhost")
	}
	if cfg.DB.Port != 3306 {
		t.Errorf("DB.Port = %v, want %v", cfg.DB.Port, 3306)
	}
	if cfg.DB.User != "root" {
		t.Errorf("DB.User = %v, want %v", cfg.DB.User, "root")
	}
	if cfg.DB.Database != "movie_catalog" {
		t.Errorf("DB.Database = %v, want %v", cfg.DB.Database, "movie_catalog")
	}
	if cfg.DB.Path != "movie_catalog.db" {
		t.Errorf("DB.Path = %v, want %v", cfg.DB.Path, "movie_catalog.db")
	}
	if cfg.DB.MaxConns != 10 {
		t.Errorf("DB.MaxConns = %v, want %v", cfg.DB.MaxConns, 10)
	}

	// TMDB defaults
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("TMDB.BaseURL = %v, want %v", cfg.TMDB.BaseURL, "https://api.themoviedb.org/3")
	}
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("TMDB.Language = %v, want %v", cfg.TMDB.Language, "en-US")
	}
	if cfg.TMDB.WatchRegion != "US" {
		t.Errorf("TMDB.WatchRegion = %v, want %v", cfg.TMDB.WatchRegion, "US")
	}
	if cfg.TMDB.RateLimit != 4 {
		t.Errorf("TMDB.RateLimit = %v, want %v", cfg.TMDB.RateLimit, 4)
	}
	if cfg.TMDB.Timeout != 15*time.Second {
		t.Errorf("TMDB.Timeout = %v, want %v", cfg.TMDB.Timeout, 15*time.Second)
	}
	if cfg.TMDB.MaxRetries != 3 {
		t.Errorf("TMDB.MaxRetries = %v, want %v", cfg.TMDB.MaxRetries, 3)
	}

	// Server defaults
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %v, want %v", cfg.Server.Port, 8080)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			DB:     DBConfig{Driver: DriverMySQL, Path: "catalog.db"},
			TMDB:   TMDBConfig{RateLimit: 4, MaxRetries: 3},
			Server: ServerConfig{Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid mysql config", func(c *Config) {}, false},
		{"valid sqlite config", func(c *Config) { c.DB.Driver = DriverSQLite }, false},
		{"unknown driver", func(c *Config) { c.DB.Driver = "postgres" }, true},
		{"sqlite without path", func(c *Config) {
			c.DB.Driver = DriverSQLite
			c.DB.Path = ""
		}, true},
		{"zero rate limit", func(c *Config) { c.TMDB.RateLimit = 0 }, true},
		{"negative retries", func(c *Config) { c.TMDB.MaxRetries = -1 }, true},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := DBConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "secret",
		Database: "testdb",
	}

	expected := "root:secret@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=True&loc=Local"
	if got := cfg.DSN(); got != expected {
		t.Errorf("DSN() = %v, want %v", got, expected)
	}
}
