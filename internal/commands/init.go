package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/rgs/internal/accounts"
	"github.com/cleared-dev/rgs/internal/balances"
	"github.com/cleared-dev/rgs/internal/config"
	"github.com/cleared-dev/rgs/internal/model"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string
	var all bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new rgs project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, model.EntityType(entityType), all)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", string(model.EntityCorporation), "entity type: zzp, ez, bv or svc")
	cmd.Flags().BoolVar(&all, "all", false, "keep accounts that do not apply to the entity type")

	return cmd
}

func runInit(out io.Writer, dir, name string, entityType model.EntityType, all bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	cfg := config.Default(name, entityType)
	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, d := range []string{"accounts", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	svc := accounts.NewService(accounts.DefaultChart())
	if !all {
		svc = accounts.NewService(svc.ApplicableTo(entityType))
	}
	if err := svc.SaveFile(config.Resolve(dir, cfg.Paths.Accounts)); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	if err := balances.SaveFile(config.Resolve(dir, cfg.Paths.Balances), nil); err != nil {
		return fmt.Errorf("writing balances: %w", err)
	}

	gitignore := cfg.Paths.Database + "\n" + cfg.Paths.Database + "-*\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized rgs project at %s (%d accounts)\n", dir, len(svc.All()))
	return nil
}
