package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage drivers for guild settings
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Bot Settings
	BotToken string `env:"BOT_TOKEN"`
	BotName  string `env:"BOT_NAME" envDefault:"Iris"`
	Version  string `env:"VERSION" envDefault:"2.0.0"`

	// Settings storage
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"./data/guild_settings.db"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DBMaxConns    int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns    int32  `env:"DB_MIN_CONNS" envDefault:"2"`

	// Playlists
	PlaylistDir       string        `env:"PLAYLIST_DIR" envDefault:"./playlist"`
	MaxPlaylistCount  int           `env:"MAX_PLAYLIST_COUNT" envDefault:"10"`
	PlaylistCacheSize int           `env:"PLAYLIST_CACHE_SIZE" envDefault:"256"`
	PlaylistCacheTTL  time.Duration `env:"PLAYLIST_CACHE_TTL" envDefault:"30m"`
	MaxQueueCount     int           `env:"MAX_QUEUE_COUNT" envDefault:"200"`

	// Logging
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	FailureDir string `env:"FAILURE_DIR" envDefault:"./failures"`

	// Metrics export over OTLP/HTTP, disabled when the endpoint is empty
	MetricsEndpoint string        `env:"METRICS_ENDPOINT"`
	MetricsInterval time.Duration `env:"METRICS_INTERVAL" envDefault:"1m"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.PlaylistDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create playlist directory: %w", err)
	}

	if cfg.StorageDriver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks values that have no safe fallback
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.MaxPlaylistCount <= 0 {
		return fmt.Errorf("MAX_PLAYLIST_COUNT must be positive, got %d", c.MaxPlaylistCount)
	}

	if c.MaxQueueCount <= 0 {
		return fmt.Errorf("MAX_QUEUE_COUNT must be positive, got %d", c.MaxQueueCount)
	}

	return nil
}

// RequireToken validates the gateway token, needed only when connecting
func (c *Config) RequireToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN environment variable is required")
	}

	if len(c.BotToken) < 50 {
		return fmt.Errorf("invalid BOT_TOKEN format (too short)")
	}

	return nil
}

// GetSafeToken returns a masked version of the token for logging
func (c *Config) GetSafeToken() string {
	if len(c.BotToken) < 15 {
		return "***"
	}
	return c.BotToken[:10] + "..." + c.BotToken[len(c.BotToken)-4:]
}
