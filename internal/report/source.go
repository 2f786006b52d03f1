package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rgs/internal/accounts"
	"github.com/cleared-dev/rgs/internal/balances"
	"github.com/cleared-dev/rgs/internal/model"
	"github.com/cleared-dev/rgs/internal/store"
)

// Source supplies the catalog and raw balances a report is built from.
type Source interface {
	Accounts(ctx context.Context) ([]model.Account, error)
	Balances(ctx context.Context) (map[string]decimal.Decimal, error)
}

// FileSource reads the project CSV files on every call.
type FileSource struct {
	AccountsPath string
	BalancesPath string
}

func (f FileSource) Accounts(_ context.Context) ([]model.Account, error) {
	svc, err := accounts.LoadFile(f.AccountsPath)
	if err != nil {
		return nil, err
	}
	return svc.All(), nil
}

func (f FileSource) Balances(_ context.Context) (map[string]decimal.Decimal, error) {
	return balances.LoadFile(f.BalancesPath)
}

// StoreSource reads the catalog and one balance snapshot from the database.
// An empty Snapshot selects the most recent one.
type StoreSource struct {
	Store    *store.Store
	Snapshot string
}

func (s StoreSource) Accounts(ctx context.Context) ([]model.Account, error) {
	return s.Store.ListAccounts(ctx)
}

func (s StoreSource) Balances(ctx context.Context) (map[string]decimal.Decimal, error) {
	name := s.Snapshot
	if name == "" {
		latest, err := s.Store.LatestSnapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("latest snapshot: %w", err)
		}
		name = latest.Name
	}
	return s.Store.LoadSnapshot(ctx, name)
}

// BuildFrom loads the catalog and balances from src and builds a report.
func (b *Builder) BuildFrom(ctx context.Context, src Source) (*Report, []model.Account, error) {
	accts, err := src.Accounts(ctx)
	if err != nil {
		return nil, nil, err
	}
	bals, err := src.Balances(ctx)
	if err != nil {
		return nil, nil, err
	}
	return b.Build(accts, bals), accts, nil
}
