package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/rgs/internal/accounts"
	"github.com/cleared-dev/rgs/internal/audit"
	"github.com/cleared-dev/rgs/internal/balances"
	"github.com/cleared-dev/rgs/internal/render"
)

func newCheckCommand(opts *options) *cobra.Command {
	var strict bool
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit the compiled hierarchy and statements",
		Long: `Check verifies aggregation, flip conservation and the balance sheet
equation, and validates the balances file against the chart of accounts.

It exits non-zero when an invariant is broken. With --strict, warnings
such as orphans, skipped flips and unknown balance codes fail as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := src.validate(); err != nil {
				return err
			}
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			rep, accts, err := p.build(cmd.Context(), src.fromStore(), src.snapshot)
			if err != nil {
				return err
			}

			findings := rep.Findings
			for _, v := range balances.Validate(rep.Result.Raw, accounts.NewService(accts)) {
				findings = append(findings, audit.Finding{
					Check:       checkBalanceFile,
					Severity:    audit.SeverityWarning,
					Code:        v.Code,
					Description: v.Description,
				})
			}

			if err := render.Findings(cmd.OutOrStdout(), findings); err != nil {
				return err
			}
			return checkResult(findings, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as failures")
	src.register(cmd)

	return cmd
}

const checkBalanceFile audit.Check = "balance-file"

func checkResult(findings []audit.Finding, strict bool) error {
	var errs, warns int
	for _, f := range findings {
		if f.Severity == audit.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	if errs > 0 {
		return fmt.Errorf("check failed: %d error(s), %d warning(s)", errs, warns)
	}
	if strict && warns > 0 {
		return fmt.Errorf("check failed: %d warning(s) in strict mode", warns)
	}
	return nil
}
