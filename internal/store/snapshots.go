package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot describes one stored set of raw balances.
type Snapshot struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Accounts  int       `json:"accounts"`
}

// SaveSnapshot stores balances under name, replacing any snapshot with the
// same name.
func (s *Store) SaveSnapshot(ctx context.Context, name string, balances map[string]decimal.Decimal) (int64, error) {
	if name == "" {
		return 0, errors.New("snapshot name is required")
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name); err != nil {
		return 0, fmt.Errorf("delete old snapshot: %w", err)
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO snapshots (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO balances (snapshot_id, code, amount) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for code, amount := range balances {
		if _, err := stmt.ExecContext(ctx, id, code, amount.String()); err != nil {
			return 0, fmt.Errorf("insert balance %s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// LoadSnapshot returns the balances stored under name.
func (s *Store) LoadSnapshot(ctx context.Context, name string) (map[string]decimal.Decimal, error) {
	var id int64
	err := s.reader.QueryRowContext(ctx, `SELECT id FROM snapshots WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot: %w", err)
	}

	rows, err := s.reader.QueryContext(ctx, `SELECT code, amount FROM balances WHERE snapshot_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var code, amount string
		if err := rows.Scan(&code, &amount); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse balance %s: %w", code, err)
		}
		out[code] = d
	}
	return out, rows.Err()
}

// ListSnapshots returns every snapshot, newest first.
func (s *Store) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.reader.QueryContext(ctx, `
		SELECT s.id, s.name, s.created_at, COUNT(b.code)
		FROM snapshots s LEFT JOIN balances b ON b.snapshot_id = s.id
		GROUP BY s.id
		ORDER BY s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt string
		if err := rows.Scan(&snap.ID, &snap.Name, &createdAt, &snap.Accounts); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, snap)
	}
	return out, rows.Err()
}

// LatestSnapshot returns the most recently saved snapshot.
func (s *Store) LatestSnapshot(ctx context.Context) (Snapshot, error) {
	snaps, err := s.ListSnapshots(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if len(snaps) == 0 {
		return Snapshot{}, ErrSnapshotNotFound
	}
	return snaps[0], nil
}
