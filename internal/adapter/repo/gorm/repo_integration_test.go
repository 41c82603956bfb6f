package gormrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/world"
)

var _ ports.Persistence = Store{}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("SURVIVAL_DB_DSN")
	if dsn == "" {
		t.Skip("SURVIVAL_DB_DSN is required for integration test")
	}
	return dsn
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "postgres")
}

func openMigrated(t *testing.T) Store {
	t.Helper()
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if _, err := ApplyMigrations(context.Background(), db, migrationsDir(t)); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return NewStore(db)
}

func TestScalarRepo_Upsert(t *testing.T) {
	s := openMigrated(t)
	ctx := context.Background()
	scope := "it-scalar-agent"
	_ = s.ScalarRepo.db.Exec("DELETE FROM survival_scalars WHERE scope = ?", scope).Error

	if _, ok, err := s.GetScalar(ctx, scope, ports.ScalarThirst); err != nil || ok {
		t.Fatalf("expected missing scalar, got ok=%v err=%v", ok, err)
	}
	if err := s.SetScalar(ctx, scope, ports.ScalarThirst, 14); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetScalar(ctx, scope, ports.ScalarThirst, 9.5); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.GetScalar(ctx, scope, ports.ScalarThirst)
	if err != nil || !ok || v != 9.5 {
		t.Fatalf("get got=(%v,%v,%v) want=(9.5,true,nil)", v, ok, err)
	}
}

func TestDeviceRepo_Lifecycle(t *testing.T) {
	s := openMigrated(t)
	ctx := context.Background()
	d := device.New(device.KindPurifier, world.DimensionOverworld, world.BlockPos{X: -9001, Y: 64, Z: 7})
	_ = s.DeleteDevice(ctx, d.Key())

	d.WaterLevel, d.IsDirty, d.HasFilter, d.FilterUsesLeft = 3, true, true, 8
	if err := s.SaveDevice(ctx, d); err != nil {
		t.Fatalf("save: %v", err)
	}
	d.ProgressTicks = 40
	if err := s.SaveDevice(ctx, d); err != nil {
		t.Fatalf("update: %v", err)
	}
	all, err := s.ListDevices(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var found bool
	for _, got := range all {
		if got.Key() == d.Key() {
			found = true
			if got != d {
				t.Fatalf("round trip got=%+v want=%+v", got, d)
			}
		}
	}
	if !found {
		t.Fatalf("device %s not listed", d.Key())
	}
	if err := s.DeleteDevice(ctx, d.Key()); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	s := openMigrated(t)
	ctx := context.Background()
	scope := "it-tx-agent"
	_ = s.ScalarRepo.db.Exec("DELETE FROM survival_scalars WHERE scope = ?", scope).Error

	boom := errors.New("boom")
	err := s.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.SetScalar(ctx, scope, ports.ScalarThirst, 3); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, ok, _ := s.GetScalar(ctx, scope, ports.ScalarThirst); ok {
		t.Fatalf("expected write rolled back")
	}
}
