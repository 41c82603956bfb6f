package gormrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

const migrationsTable = "survival_schema_migrations"

// ApplyMigrations runs every *.sql file in dir that is not yet recorded,
// in file name order, each in its own transaction. It returns the
// versions it applied.
func ApplyMigrations(ctx context.Context, db *gorm.DB, dir string) ([]string, error) {
	createMeta := `CREATE TABLE IF NOT EXISTS ` + migrationsTable + ` (
  version TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	if err := db.WithContext(ctx).Exec(createMeta).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", migrationsTable, err)
	}

	files, err := migrationFiles(dir)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range files {
		version := strings.TrimSuffix(name, ".sql")
		var count int64
		if err := db.WithContext(ctx).Table(migrationsTable).Where("version = ?", version).Count(&count).Error; err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if count > 0 {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
			return tx.Exec(`INSERT INTO `+migrationsTable+`(version, applied_at) VALUES (?, ?)`, version, time.Now()).Error
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, version)
	}
	return applied, nil
}

func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migration dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}
