package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	httpadapter "survivalcore/internal/adapter/http"
	metricsinmem "survivalcore/internal/adapter/metrics/inmemory"
	gormrepo "survivalcore/internal/adapter/repo/gorm"
	"survivalcore/internal/adapter/repo/memory"
	sqliterepo "survivalcore/internal/adapter/repo/sqlite"
	"survivalcore/internal/adapter/snapshot"
	worldruntime "survivalcore/internal/adapter/world/runtime"
	"survivalcore/internal/app/engine"
	"survivalcore/internal/app/ports"
	"survivalcore/internal/app/status"
	"survivalcore/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("survival server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		return fmt.Errorf("load tuning: %w", err)
	}

	ctx := context.Background()
	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	host := worldruntime.NewHost(worldruntime.Config{Seed: cfg.WorldSeed, Agents: cfg.Agents, Logger: logger})
	kpiRecorder := metricsinmem.NewRecorder()
	eng, err := engine.New(engine.Options{
		Host:        host,
		Events:      host,
		Persistence: store,
		Metrics:     kpiRecorder,
		Tuning:      tuning.Survival,
		Settings:    tuning.Engine,
		Rand:        rand.New(rand.NewSource(cfg.WorldSeed)),
		Logger:      logger,
		Interval:    cfg.TickInterval,
	})
	if err != nil {
		return err
	}
	if err := eng.Load(ctx); err != nil {
		return fmt.Errorf("load engine state: %w", err)
	}
	snap := snapshot.NewFile(cfg.SnapshotPath)
	restoreSnapshot(eng, snap, logger)

	h := httpadapter.Handler{
		StatusUC:     status.UseCase{Agents: eng.Store, Climate: eng.Climate, Devices: eng.Devices, Seasons: eng},
		Events:       eng,
		KPI:          kpiRecorder,
		Journal:      func() any { return host.Journal().Entries() },
		AllowOrigins: cfg.CORSOrigins,
	}
	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- eng.Run(runCtx) }()

	logger.Info("survival server listening", "addr", cfg.HTTPAddr, "store", cfg.Store, "agents", cfg.Agents)
	s.Spin()

	cancel()
	if err := <-done; err != nil {
		logger.Error("engine loop failed", "err", err)
	}
	shutdown(ctx, eng, snap, logger)
	return nil
}

func newLogger(cfg config.Env) (*slog.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func buildStore(ctx context.Context, cfg config.Env) (ports.Persistence, func() error, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memory.NewStore(), func() error { return nil }, nil
	case config.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("sqlite dir: %w", err)
		}
		db, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case config.StorePostgres:
		db, err := gormrepo.OpenPostgres(cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.MigrationsDir != "" {
			applied, err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir)
			if err != nil {
				return nil, nil, fmt.Errorf("apply migrations: %w", err)
			}
			if len(applied) > 0 {
				slog.Info("migrations applied", "versions", applied)
			}
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return gormrepo.NewStore(db), sqlDB.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
}

func restoreSnapshot(eng *engine.Engine, file snapshot.File, logger *slog.Logger) {
	snap, h, ok, err := file.Load()
	if err != nil {
		logger.Warn("snapshot ignored", "path", file.Path, "err", err)
		return
	}
	if !ok {
		return
	}
	eng.Restore(snap)
	logger.Info("snapshot restored", "path", file.Path, "run", h.RunID, "tick", snap.Tick, "agents", len(snap.Agents), "devices", len(snap.Devices))
}

func shutdown(ctx context.Context, eng *engine.Engine, file snapshot.File, logger *slog.Logger) {
	if err := eng.Persist(ctx); err != nil {
		logger.Warn("final persist failed", "err", err)
	}
	if err := file.Save(eng.Snapshot()); err != nil {
		logger.Warn("snapshot failed", "path", file.Path, "err", err)
		return
	}
	logger.Info("snapshot written", "path", file.Path, "run", file.RunID, "tick", eng.Tick())
}
