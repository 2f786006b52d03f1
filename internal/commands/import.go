package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/rgs/internal/accounts"
	"github.com/cleared-dev/rgs/internal/balances"
	"github.com/cleared-dev/rgs/internal/importer"
	"github.com/cleared-dev/rgs/internal/model"
)

// DefaultSnapshot names the snapshot written when --snapshot is not given.
const DefaultSnapshot = "current"

func newImportCommand(opts *options) *cobra.Command {
	var balancesPath string
	var snapshot string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import reference tables and sync the project into the database",
		Long: `Import merges reference tables (csv or xlsx) into the chart of accounts.
Without arguments it reads every supported file in import/ and moves it
to import/processed/ afterwards.

The resulting catalog and the balances are then stored in the project
database, the balances under the snapshot name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			reg := importer.DefaultRegistry()

			var scanned []string
			paths := args
			if len(paths) == 0 {
				files, err := reg.Scan(p.root)
				if err != nil {
					return err
				}
				for _, f := range files {
					paths = append(paths, f.Path)
					scanned = append(scanned, f.Name)
				}
			}

			catalogPath := p.path(p.cfg.Paths.Accounts)
			catalog, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			for _, path := range paths {
				imported, err := reg.ImportFile(path)
				if err != nil {
					return err
				}
				catalog = importer.Merge(catalog, imported)
				p.log.Info("imported reference table", "file", path, "accounts", len(imported))
				fmt.Fprintf(out, "Imported %d accounts from %s\n", len(imported), path)
			}

			if len(paths) > 0 {
				if err := accounts.NewService(catalog).SaveFile(catalogPath); err != nil {
					return err
				}
			}

			if balancesPath == "" {
				balancesPath = p.path(p.cfg.Paths.Balances)
			}
			bals, err := balances.LoadFile(balancesPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := p.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.ReplaceAccounts(ctx, catalog); err != nil {
				return err
			}
			if _, err := st.SaveSnapshot(ctx, snapshot, bals); err != nil {
				return err
			}
			fmt.Fprintf(out, "Stored %d accounts and %d balances as snapshot %q\n", len(catalog), len(bals), snapshot)

			for _, name := range scanned {
				if err := importer.MarkProcessed(p.root, name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&balancesPath, "balances", "", "balances CSV to store (default: the project balances file)")
	cmd.Flags().StringVar(&snapshot, "snapshot", DefaultSnapshot, "snapshot name for the stored balances")

	return cmd
}

// loadCatalog reads the chart of accounts, treating a missing file as empty.
func loadCatalog(path string) ([]model.Account, error) {
	svc, err := accounts.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return svc.All(), nil
}
