// Package server provides configuration helpers that define runtime defaults,
// environment overrides, and rate-limiting parameters for the Parlor service.
package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/parlorchat/parlor/internal/chat"
)

// RateLimitConfig defines the parameters for per-connection frame rate limiting.
type RateLimitConfig struct {
	Burst          int           `env:"RATE_LIMIT_BURST"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL"`
}

// Config holds the server settings, including security controls and the
// history sweep interval.
type Config struct {
	Port           string        `env:"SERVER_PORT"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS"`
	MaxFrameSize   int64         `env:"MAX_FRAME_SIZE"`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL"`
	RateLimit      RateLimitConfig
}

// NewConfig creates a Config populated with default values for all settings.
func NewConfig() *Config {
	return &Config{
		Port:           ":8080",
		AllowedOrigins: []string{"http://localhost:8080"},
		MaxFrameSize:   4096,
		SweepInterval:  chat.DefaultSweepInterval,
		RateLimit: RateLimitConfig{
			Burst:          10,
			RefillInterval: time.Second,
		},
	}
}

// NewConfigFromEnv loads configuration from environment variables on top of
// the defaults. Unset variables keep their default values.
func NewConfigFromEnv() (*Config, error) {
	cfg := NewConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.sanitize()
	return cfg, nil
}

// sanitize clamps invalid values back to their defaults.
func (c *Config) sanitize() {
	defaults := NewConfig()
	if c.Port == "" {
		c.Port = defaults.Port
	}
	if c.MaxFrameSize <= 0 {
		c.MaxFrameSize = defaults.MaxFrameSize
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = defaults.SweepInterval
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = defaults.RateLimit.Burst
	}
	if c.RateLimit.RefillInterval <= 0 {
		c.RateLimit.RefillInterval = defaults.RateLimit.RefillInterval
	}
}
