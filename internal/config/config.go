package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	ListenAddr   string        `env:"LISTEN_ADDR" envDefault:":8080"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"./orders.db"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"12"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Bootstrap admin account, created at startup if missing.
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin12345"`
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
