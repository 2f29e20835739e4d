package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings holds the process-level options read from the environment
type Settings struct {
	ConfigDir     string        `env:"MEMORY_CONFIG_DIR"     envDefault:"configs"`
	DefaultConfig string        `env:"MEMORY_DEFAULT_CONFIG" envDefault:"classic"`
	SessionTTL    time.Duration `env:"MEMORY_SESSION_TTL"    envDefault:"24h"`
	Debug         bool          `env:"MEMORY_DEBUG"`
	Seed          int64         `env:"MEMORY_SEED"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings reads Settings from the environment, applying defaults
func LoadSettings() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	if s.SessionTTL < 0 {
		return Settings{}, fmt.Errorf("%w: MEMORY_SESSION_TTL must not be negative, got %s", ErrInvalidConfig, s.SessionTTL)
	}
	return s, nil
}
