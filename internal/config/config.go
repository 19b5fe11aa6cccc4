// Package config loads host settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	UITerminal = "term"
	UIWindow   = "gui"
)

// Config holds the settings shared by the fallgrid hosts.
type Config struct {
	TickInterval time.Duration `env:"FALLGRID_TICK_INTERVAL" envDefault:"800ms"`
	Width        int           `env:"FALLGRID_WIDTH" envDefault:"10"`
	Height       int           `env:"FALLGRID_HEIGHT" envDefault:"20"`
	DBPath       string        `env:"FALLGRID_DB_PATH" envDefault:"fallgrid.db"`
	Sound        bool          `env:"FALLGRID_SOUND" envDefault:"true"`
	UI           string        `env:"FALLGRID_UI" envDefault:"term"`
	LogPath      string        `env:"FALLGRID_LOG_PATH"`
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

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.Width < 4 {
		return fmt.Errorf("width must be at least 4, got %d", c.Width)
	}
	if c.Height < 4 {
		return fmt.Errorf("height must be at least 4, got %d", c.Height)
	}
	switch c.UI {
	case UITerminal, UIWindow:
	default:
		return fmt.Errorf("unknown ui %q: must be %q or %q", c.UI, UITerminal, UIWindow)
	}
	return nil
}
