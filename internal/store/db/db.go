// Package db owns the catalog database lifecycle: opening the sqlite file
// and keeping its schema current.
package db // import "github.com/jebrand/jebman/internal/store/db"

import (
	"context"
	"database/sql"
	"embed"

	"github.com/jebrand/jebman/internal/version"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

//go:embed schema
var schemaFS embed.FS

const latestSchemaFileName = "schema/LATEST_SCHEMA.sql"

type DB struct {
	*sql.DB
}

func Open(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("database path is required")
	}

	d, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening database %s", dsn)
	}
	return &DB{d}, nil
}

// Migrate applies the embedded schema when the catalog is new or was
// written by an older release. The schema file only uses IF NOT EXISTS
// statements, so re-applying it is idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	schemaVersion := version.GetSchemaVersion(version.GetCurrentVersion())

	exists, err := d.tableExists(ctx, "migration_history")
	if err != nil {
		return errors.Wrap(err, "checking migration history table")
	}
	if exists {
		latest, err := d.latestVersion(ctx)
		if err != nil {
			return errors.Wrap(err, "reading migration history")
		}
		if latest != "" && !version.IsVersionGreaterThan(schemaVersion, latest) {
			return nil
		}
	}

	if err := d.applyLatestSchema(ctx); err != nil {
		return errors.Wrap(err, "applying latest schema")
	}
	return d.upsertMigrationHistory(ctx, schemaVersion)
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	buf, err := schemaFS.ReadFile(latestSchemaFileName)
	if err != nil {
		return errors.Wrapf(err, "reading schema file %q", latestSchemaFileName)
	}
	return d.execute(ctx, string(buf))
}

func (d *DB) tableExists(ctx context.Context, name string) (bool, error) {
	stmt := `SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`
	var exists bool
	if err := d.QueryRowContext(ctx, stmt, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (d *DB) latestVersion(ctx context.Context) (string, error) {
	rows, err := d.QueryContext(ctx, `SELECT version FROM migration_history`)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	latest := ""
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return "", err
		}
		if latest == "" || version.IsVersionGreaterThan(v, latest) {
			latest = v
		}
	}
	return latest, rows.Err()
}

func (d *DB) upsertMigrationHistory(ctx context.Context, v string) error {
	stmt := `
		INSERT INTO migration_history (version)
		VALUES (?)
		ON CONFLICT(version) DO UPDATE SET version = EXCLUDED.version`
	_, err := d.ExecContext(ctx, stmt, v)
	return err
}

// execute runs a SQL script within a transaction.
func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return tx.Commit()
}
