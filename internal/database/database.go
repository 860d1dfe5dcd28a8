// Package database owns the Postgres schema and its migrations.
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const versionTable = "goose_db_version"

// Migrate applies all pending migrations to the database at dsn.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetTableName(versionTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// SchemaVersion returns the newest applied migration version, or 0 when
// no migration has been applied yet.
func SchemaVersion(ctx context.Context, db *sql.DB) (int64, error) {
	const query = `SELECT version_id FROM goose_db_version WHERE is_applied ORDER BY id DESC LIMIT 1`

	var version int64
	err := db.QueryRowContext(ctx, query).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
