package config

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/caarlos0/env/v11"

	"github.com/tatianab/escape-room/internal/i18n"
)

// Config holds the application configuration.
type Config struct {
	TimeLimit    int        `env:"ESCAPE_TIME_LIMIT" envDefault:"600"`
	RoomFile     string     `env:"ESCAPE_ROOM_FILE"`
	Locale       string     `env:"ESCAPE_LOCALE" envDefault:"en"`
	LogFile      string     `env:"ESCAPE_LOG_FILE" envDefault:"escape-room.log"`
	LogLevel     slog.Level `env:"ESCAPE_LOG_LEVEL" envDefault:"info"`
	GeminiAPIKey string     `env:"GEMINI_API_KEY"`
	GeminiModel  string     `env:"ESCAPE_MODEL" envDefault:"gemini-2.5-flash"`
	// Headless forces the line-oriented runner even on a terminal.
	Headless bool `env:"ESCAPE_HEADLESS"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values env parsing cannot.
func (c *Config) Validate() error {
	if c.TimeLimit <= 0 {
		return fmt.Errorf("ESCAPE_TIME_LIMIT must be positive, got %d", c.TimeLimit)
	}
	if !slices.Contains(i18n.Locales(), c.Locale) {
		return fmt.Errorf("ESCAPE_LOCALE %q is not supported", c.Locale)
	}
	return nil
}

// NarratorEnabled reports whether an LLM narrator can be used.
func (c *Config) NarratorEnabled() bool {
	return c.GeminiAPIKey != ""
}
