package cliparse

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port           int    `env:"PORT" envDefault:"3318"`
	DatabaseURL    string `env:"DATABASE_URL"`
	DatabaseType   string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	DeleteKeySalt  string `env:"DELETE_KEY_SALT"`
	MasterDataFile string `env:"MASTERDATA_FILE"`
}

// ParseFlags reads the environment, then lets flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("scenario-share", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.MasterDataFile, "seed", cfg.MasterDataFile, "YAML file of stages and weapons to seed")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.DeleteKeySalt, "delete-salt", cfg.DeleteKeySalt, "Delete key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	switch cfg.DatabaseType {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.DeleteKeySalt == "" {
		return Config{}, errors.New("DELETE_KEY_SALT required")
	}

	return cfg, nil
}
