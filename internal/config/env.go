package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

// Env is the process configuration read from SURVIVAL_* variables.
type Env struct {
	HTTPAddr      string        `env:"SURVIVAL_HTTP_ADDR" envDefault:":8080"`
	Store         string        `env:"SURVIVAL_STORE" envDefault:"sqlite"`
	SQLitePath    string        `env:"SURVIVAL_SQLITE_PATH" envDefault:"data/survival.db"`
	DBDSN         string        `env:"SURVIVAL_DB_DSN"`
	MigrationsDir string        `env:"SURVIVAL_MIGRATIONS_DIR" envDefault:"migrations/postgres"`
	TuningPath    string        `env:"SURVIVAL_TUNING_PATH"`
	SnapshotPath  string        `env:"SURVIVAL_SNAPSHOT_PATH" envDefault:"data/engine.snap"`
	TickInterval  time.Duration `env:"SURVIVAL_TICK_INTERVAL" envDefault:"50ms"`
	WorldSeed     int64         `env:"SURVIVAL_WORLD_SEED" envDefault:"1"`
	Agents        int           `env:"SURVIVAL_AGENTS" envDefault:"4"`
	LogLevel      string        `env:"SURVIVAL_LOG_LEVEL" envDefault:"info"`
	CORSOrigins   []string      `env:"SURVIVAL_CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load parses the environment and validates the result.
func Load() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Env{}, err
	}
	return cfg, nil
}

func (c Env) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("%w: SURVIVAL_DB_DSN is required for the postgres store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive", ErrInvalidConfig)
	}
	if c.Agents < 0 {
		return fmt.Errorf("%w: agents must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Env) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return lvl, nil
}
