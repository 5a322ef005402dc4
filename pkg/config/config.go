package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cbodonnell/savestate/pkg/codec"
	"github.com/cbodonnell/savestate/pkg/log"
)

// Config is the savestate server configuration, read from the environment.
type Config struct {
	DatabaseURL      string        `env:"SAVESTATE_DATABASE_URL" envDefault:"sqlite://savestate.db"`
	Format           string        `env:"SAVESTATE_FORMAT" envDefault:"flatbuffers"`
	AutosaveInterval time.Duration `env:"SAVESTATE_AUTOSAVE_INTERVAL" envDefault:"1m"`
	TickInterval     time.Duration `env:"SAVESTATE_TICK_INTERVAL" envDefault:"50ms"`
	APIPort          int           `env:"SAVESTATE_API_PORT" envDefault:"8080"`
	SlotVersion      int           `env:"SAVESTATE_SLOT_VERSION" envDefault:"1"`
	LogLevel         string        `env:"SAVESTATE_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses a Config from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := codec.ForFormat(c.Format); err != nil {
		return fmt.Errorf("invalid SAVESTATE_FORMAT: %w", err)
	}
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid SAVESTATE_LOG_LEVEL: %w", err)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("invalid SAVESTATE_TICK_INTERVAL: must be positive")
	}
	if c.AutosaveInterval < 0 {
		return fmt.Errorf("invalid SAVESTATE_AUTOSAVE_INTERVAL: must not be negative")
	}
	if c.SlotVersion < 1 {
		return fmt.Errorf("invalid SAVESTATE_SLOT_VERSION: must be at least 1")
	}
	if c.APIPort < 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid SAVESTATE_API_PORT: %d", c.APIPort)
	}
	return nil
}
