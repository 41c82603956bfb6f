package gormrepo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_devices.sql", "0001_scalars.sql", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "0003_dir.sql"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := migrationFiles(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0] != "0001_scalars.sql" || got[1] != "0002_devices.sql" {
		t.Fatalf("files got=%v want=[0001_scalars.sql 0002_devices.sql]", got)
	}
}

func TestMigrationFiles_MissingDir(t *testing.T) {
	if _, err := migrationFiles(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

func TestRepoMigrations_Present(t *testing.T) {
	got, err := migrationFiles(migrationsDir(t))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("expected at least one postgres migration")
	}
}
