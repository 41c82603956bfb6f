package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SURVIVAL_HTTP_ADDR", "SURVIVAL_STORE", "SURVIVAL_TICK_INTERVAL", "SURVIVAL_AGENTS", "SURVIVAL_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.Store != StoreSQLite || cfg.TickInterval != 50*time.Millisecond || cfg.Agents != 4 {
		t.Fatalf("defaults got=%+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SURVIVAL_STORE", "memory")
	t.Setenv("SURVIVAL_TICK_INTERVAL", "10ms")
	t.Setenv("SURVIVAL_WORLD_SEED", "99")
	t.Setenv("SURVIVAL_LOG_LEVEL", "debug")
	t.Setenv("SURVIVAL_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreMemory || cfg.TickInterval != 10*time.Millisecond || cfg.WorldSeed != 99 {
		t.Fatalf("overrides got=%+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors origins got=%v", cfg.CORSOrigins)
	}
	if lvl, _ := cfg.Level(); lvl != slog.LevelDebug {
		t.Fatalf("level got=%v want=%v", lvl, slog.LevelDebug)
	}
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("SURVIVAL_AGENTS", "many")
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEnv_Validate(t *testing.T) {
	base := Env{Store: StoreSQLite, TickInterval: time.Second, LogLevel: "info"}
	tests := []struct {
		name   string
		mutate func(*Env)
		ok     bool
	}{
		{"valid", func(*Env) {}, true},
		{"postgres without dsn", func(e *Env) { e.Store = StorePostgres }, false},
		{"postgres with dsn", func(e *Env) { e.Store, e.DBDSN = StorePostgres, "postgres://x" }, true},
		{"unknown store", func(e *Env) { e.Store = "redis" }, false},
		{"zero interval", func(e *Env) { e.TickInterval = 0 }, false},
		{"negative agents", func(e *Env) { e.Agents = -1 }, false},
		{"bad level", func(e *Env) { e.LogLevel = "loud" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got=%v want=%v", err, ErrInvalidConfig)
			}
		})
	}
}
