package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const upSuffix = ".up.sql"

// Migrations lists the embedded up migrations in apply order.
func Migrations() ([]string, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), upSuffix) {
			names = append(names, strings.TrimSuffix(e.Name(), upSuffix))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Migrate applies every embedded up migration that has not run yet and
// returns the names it applied.
func Migrate(ctx context.Context, db *sql.DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	names, err := Migrations()
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range names {
		ok, err := apply(ctx, db, name)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, name)
		}
	}
	return applied, nil
}

// MigrateOne applies the single migration whose name contains match, even if
// it ran before.
func MigrateOne(ctx context.Context, db *sql.DB, match string) (string, error) {
	names, err := Migrations()
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if strings.Contains(name, match) {
			content, err := migrationFiles.ReadFile("migrations/" + name + upSuffix)
			if err != nil {
				return "", err
			}
			if _, err := db.ExecContext(ctx, string(content)); err != nil {
				return "", fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			return name, nil
		}
	}
	return "", fmt.Errorf("migration %q not found", match)
}

func apply(ctx context.Context, db *sql.DB, name string) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", name, err)
	}
	if exists {
		return false, nil
	}

	content, err := migrationFiles.ReadFile("migrations/" + name + upSuffix)
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return false, fmt.Errorf("failed to execute migration %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return false, fmt.Errorf("failed to record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit migration %s: %w", name, err)
	}
	return true, nil
}
