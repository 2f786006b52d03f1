package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			code      TEXT PRIMARY KEY,
			label     TEXT NOT NULL,
			level     INTEGER NOT NULL CHECK (level >= 1),
			direction TEXT NOT NULL CHECK (direction IN ('', 'debit', 'credit')),
			rgs       TEXT NOT NULL DEFAULT '',
			flip      TEXT NOT NULL DEFAULT '',
			zzp       INTEGER NOT NULL DEFAULT 0,
			ez        INTEGER NOT NULL DEFAULT 0,
			bv        INTEGER NOT NULL DEFAULT 0,
			svc       INTEGER NOT NULL DEFAULT 0,
			branche   INTEGER NOT NULL DEFAULT 0,
			position  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_rgs ON accounts(rgs)`,

		`CREATE TABLE IF NOT EXISTS snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,

		// Amounts are stored as decimal text so no precision is lost.
		`CREATE TABLE IF NOT EXISTS balances (
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			code        TEXT NOT NULL,
			amount      TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, code)
		)`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	for i, r := range stmt {
		if r == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}
