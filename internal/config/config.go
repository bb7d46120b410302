// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/roach88/swiss/internal/pairing"
)

// Config holds settings shared by every command.
type Config struct {
	Database string `env:"SWISS_DB"        envDefault:"swiss.db"`
	Strategy string `env:"SWISS_STRATEGY"  envDefault:"greedy"`
	MaxSteps int    `env:"SWISS_MAX_STEPS" envDefault:"100000"`
	LogLevel string `env:"SWISS_LOG_LEVEL" envDefault:"info"`
	Jobs     int    `env:"SWISS_JOBS"      envDefault:"4"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path is empty")
	}
	if _, err := pairing.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max steps must not be negative, got %d", c.MaxSteps)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// PairingOptions converts the pairing settings for the engine.
func (c Config) PairingOptions() (pairing.Options, error) {
	strategy, err := pairing.ParseStrategy(c.Strategy)
	if err != nil {
		return pairing.Options{}, err
	}
	return pairing.Options{Strategy: strategy, MaxSteps: c.MaxSteps}, nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
