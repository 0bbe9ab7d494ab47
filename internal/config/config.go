package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the server's environment-driven configuration. Flags on the
// serve command override individual fields after parsing.
type Config struct {
	// Host/Port for the game's TCP listener. Port 0 binds ephemeral.
	Host string `env:"WARGAME_HOST" envDefault:""`
	Port int    `env:"WARGAME_PORT" envDefault:"3336"`

	// HTTPPort serves the introspection API; 0 disables it.
	HTTPPort int `env:"WARGAME_HTTP_PORT" envDefault:"0"`

	// StorageType selects the match-record backend: memory or redis.
	StorageType string `env:"WARGAME_STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"WARGAME_REDIS_URL" envDefault:""`

	// LogLevel: debug, info, warn, or error.
	LogLevel string `env:"WARGAME_LOG_LEVEL" envDefault:"info"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
