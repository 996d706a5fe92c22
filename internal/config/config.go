package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN,required"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`

	// Settings store backend: "file" or "postgres".
	SettingsStore string `env:"SETTINGS_STORE" envDefault:"file"`
	SettingsPath  string `env:"SETTINGS_PATH" envDefault:"settings.yaml"`

	PollTimeout time.Duration `env:"POLL_TIMEOUT" envDefault:"30s"`
	UpdateLimit int           `env:"UPDATE_LIMIT" envDefault:"100"`

	DBHost     string `env:"DB_HOST"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.SettingsStore {
	case "file":
		if cfg.SettingsPath == "" {
			return nil, fmt.Errorf("SETTINGS_PATH is required for the file store")
		}
	case "postgres":
		if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
			return nil, fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required for the postgres store")
		}
	default:
		return nil, fmt.Errorf("unknown settings store %q", cfg.SettingsStore)
	}

	if cfg.PollTimeout < time.Second {
		return nil, fmt.Errorf("POLL_TIMEOUT must be at least one second")
	}

	return &cfg, nil
}
