package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/traineehub/internal/db"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

const createTrackingTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// Migrator applies numbered SQL files ("001_init.sql") once each, in order.
type Migrator struct {
	pool *pgxpool.Pool
}

// NewMigrator creates a new migrator
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool}
}

// MigrateFromDirectory applies every pending *.sql file in dirPath.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	files, err := pendingFiles(dirPath)
	if err != nil {
		return err
	}

	if _, err := m.pool.Exec(ctx, createTrackingTable); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	applied := 0
	for _, name := range files {
		ok, err := m.apply(ctx, filepath.Join(dirPath, name))
		if err != nil {
			return err
		}
		if ok {
			applied++
		}
	}

	logger.Info().Int("applied", applied).Int("total", len(files)).Msg("Database migrations complete")
	return nil
}

// pendingFiles lists the SQL files of dirPath sorted by name.
func pendingFiles(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// versionOf extracts the numeric prefix of a migration file name.
func versionOf(path string) string {
	version, _, _ := strings.Cut(filepath.Base(path), "_")
	return version
}

// apply runs one file and records it in the same transaction. It returns false
// when the version was already applied.
func (m *Migrator) apply(ctx context.Context, path string) (bool, error) {
	version := versionOf(path)
	appliedNow := false

	err := db.WithTransaction(ctx, m.pool, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			logger.Debug().Str("file", filepath.Base(path)).Msg("Migration already applied, skipping")
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration file: %w", err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", filepath.Base(path), err)
		}

		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}

		appliedNow = true
		logger.Info().Str("file", filepath.Base(path)).Msg("Migration applied")
		return nil
	})

	return appliedNow, err
}
