package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

// Config is the process configuration, loaded from environment variables.
type Config struct {
	// DBPath overrides the default database location (~/.lvlup.db).
	DBPath string `env:"LVLUP_DB"`
	// DaemonSpec is the cron expression for the daily reset daemon.
	DaemonSpec string `env:"LVLUP_DAEMON_SPEC" envDefault:"5 0 * * *"`
}

// Load parses configuration from the environment and fills defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		path, err := storage.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	return cfg, nil
}
