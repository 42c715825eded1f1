package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DBPath           string `envconfig:"NEBULA_DB_PATH" default:"./data/nebula.sqlite"`
	Port             int    `envconfig:"NEBULA_PORT" default:"8080"`
	LogLevel         string `envconfig:"NEBULA_LOG_LEVEL" default:"info"`
	LogDir           string `envconfig:"NEBULA_LOG_DIR" default:"./logs"`
	MnemonicStrength int    `envconfig:"NEBULA_MNEMONIC_STRENGTH" default:"128"`
	GenerateRPS      int    `envconfig:"NEBULA_GENERATE_RPS" default:"5"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// godotenv does NOT override already-set env vars.
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Info("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if !validStrength(c.MnemonicStrength) {
		return fmt.Errorf("%w: mnemonic strength must be one of 128, 160, 192, 224, 256, got %d", ErrInvalidConfig, c.MnemonicStrength)
	}
	if c.GenerateRPS < 1 {
		return fmt.Errorf("%w: generate rps must be >= 1, got %d", ErrInvalidConfig, c.GenerateRPS)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db path must not be empty", ErrInvalidConfig)
	}
	return nil
}

func validStrength(bits int) bool {
	return bits >= MinMnemonicStrength && bits <= MaxMnemonicStrength && bits%32 == 0
}
