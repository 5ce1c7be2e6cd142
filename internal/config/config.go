// Package config loads daemon configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration of the hearthome daemon.
type Config struct {
	DBPath       string        `env:"HEARTHOME_DB" envDefault:"data/hearthome.db"`
	ArchiveDir   string        `env:"HEARTHOME_ARCHIVE_DIR" envDefault:"data/archives"`
	APIPort      int           `env:"HEARTHOME_PORT" envDefault:"8780"`
	AdminKey     string        `env:"HEARTHOME_ADMIN_KEY"` // empty disables POST endpoints
	TickInterval time.Duration `env:"HEARTHOME_TICK_INTERVAL" envDefault:"30s"`
	SaveInterval time.Duration `env:"HEARTHOME_SAVE_INTERVAL" envDefault:"5m"`
	DayLength    time.Duration `env:"HEARTHOME_DAY_LENGTH" envDefault:"24h"`
	ClimateSeed  int64         `env:"HEARTHOME_CLIMATE_SEED" envDefault:"42"`
	CatalogDir   string        `env:"HEARTHOME_CATALOG_DIR"` // empty uses embedded defaults
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
