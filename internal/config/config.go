package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration, loaded from environment
// variables
type Config struct {
	// HTTP server
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"8080"`

	// Remote store backend: "memory" or "redis"
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	// Offline bootstrap snapshot location
	SnapshotPath string `env:"SNAPSHOT_PATH" envDefault:"data/matchmaker-snapshot.json"`

	// Auth session lifetime
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"24h"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
