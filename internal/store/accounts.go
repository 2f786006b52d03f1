package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleared-dev/rgs/internal/model"
)

const accountColumns = `code, label, level, direction, rgs, flip, zzp, ez, bv, svc, branche`

// ReplaceAccounts swaps the stored catalog for accounts in one transaction.
// Catalog order is preserved; of repeated codes the first is kept.
func (s *Store) ReplaceAccounts(ctx context.Context, accounts []model.Account) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO accounts (`+accountColumns+`, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range accounts {
		_, err := stmt.ExecContext(ctx,
			a.Code, a.Label, a.Level, string(a.Direction), a.Identifiers.RGS, a.Identifiers.Flip,
			boolToInt(a.Applicability.ZZP), boolToInt(a.Applicability.EZ), boolToInt(a.Applicability.BV),
			boolToInt(a.Applicability.SVC), boolToInt(a.Applicability.Branche), i,
		)
		if err != nil {
			return fmt.Errorf("insert account %s: %w", a.Code, err)
		}
	}
	return tx.Commit()
}

// GetAccount returns one account by code.
func (s *Store) GetAccount(ctx context.Context, code string) (model.Account, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE code = ?`, code)
	acct, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, code)
	}
	return acct, err
}

// ListAccounts returns the catalog in the order it was stored.
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.reader.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (model.Account, error) {
	var acct model.Account
	var dir string
	var zzp, ez, bv, svc, bra int
	err := row.Scan(&acct.Code, &acct.Label, &acct.Level, &dir, &acct.Identifiers.RGS, &acct.Identifiers.Flip,
		&zzp, &ez, &bv, &svc, &bra)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("scan account: %w", err)
	}
	acct.Direction = model.Direction(dir)
	acct.Applicability = model.Applicability{ZZP: zzp == 1, EZ: ez == 1, BV: bv == 1, SVC: svc == 1, Branche: bra == 1}
	return acct, nil
}
