package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/rgs/internal/config"
	"github.com/cleared-dev/rgs/internal/hierarchy"
	"github.com/cleared-dev/rgs/internal/model"
	"github.com/cleared-dev/rgs/internal/report"
	"github.com/cleared-dev/rgs/internal/store"
)

// project is an opened rgs project directory.
type project struct {
	root string
	cfg  *config.Config
	log  *slog.Logger
}

func openProject(cmd *cobra.Command, opts *options) (*project, error) {
	root, err := filepath.Abs(opts.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s has no %s; run rgs init first", root, config.FileName)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.FileName, err)
	}

	return &project{root: root, cfg: cfg, log: opts.logger(cmd.ErrOrStderr())}, nil
}

func (p *project) path(rel string) string {
	return config.Resolve(p.root, rel)
}

func (p *project) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, p.path(p.cfg.Paths.Database))
}

// source selects the project files, or a stored snapshot when one is named.
func (p *project) source(st *store.Store, snapshot string) report.Source {
	if st != nil {
		return report.StoreSource{Store: st, Snapshot: snapshot}
	}
	return report.FileSource{
		AccountsPath: p.path(p.cfg.Paths.Accounts),
		BalancesPath: p.path(p.cfg.Paths.Balances),
	}
}

// build compiles the report from the project files, or from the database
// when fromStore is set.
func (p *project) build(ctx context.Context, fromStore bool, snapshot string) (*report.Report, []model.Account, error) {
	var st *store.Store
	if fromStore {
		var err error
		st, err = p.openStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		defer st.Close()
	}

	rep, accts, err := p.cfg.Builder().BuildFrom(ctx, p.source(st, snapshot))
	if err != nil {
		return nil, nil, err
	}
	logDiagnostics(p.log, rep.Result.Diagnostics)
	return rep, accts, nil
}

func logDiagnostics(log *slog.Logger, d hierarchy.Diagnostics) {
	for _, f := range d.Flips {
		log.Debug("flip applied", "from", f.From, "to", f.To, "amount", f.Amount.StringFixed(2))
	}
	for _, s := range d.SkippedFlips {
		log.Info("flip skipped", "code", s.Code, "target", s.Target, "balance", s.Balance.StringFixed(2), "reason", s.Reason)
	}
	for _, c := range d.Orphans {
		log.Info("orphan promoted to root", "code", c)
	}
	for _, c := range d.Duplicates {
		log.Info("duplicate code ignored", "code", c)
	}
	for _, c := range d.UnknownRoots {
		log.Info("root excluded from statements", "code", c)
	}
}
