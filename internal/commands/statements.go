package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/rgs/internal/render"
	"github.com/cleared-dev/rgs/internal/statements"
)

func newStatementsCommand(opts *options) *cobra.Command {
	var format string
	var output string
	var withFindings bool
	var src sourceFlags

	cmd := &cobra.Command{
		Use:       "statements [income|balance|cashflow|all]",
		Short:     "Generate financial statements",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"income", "balance", "cashflow", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := statements.Kinds
			if len(args) == 1 && args[0] != "all" {
				k, err := statements.ParseKind(args[0])
				if err != nil {
					return err
				}
				kinds = []statements.Kind{k}
			}
			if err := src.validate(); err != nil {
				return err
			}

			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			rep, _, err := p.build(cmd.Context(), src.fromStore(), src.snapshot)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				for i, k := range kinds {
					if i > 0 {
						fmt.Fprintln(out)
					}
					n, _ := rep.Statements.ByKind(k)
					if err := render.Statement(out, n); err != nil {
						return err
					}
				}
				if withFindings {
					fmt.Fprintln(out)
					return render.Findings(out, rep.Findings)
				}
				return nil
			case "yaml":
				doc := render.NewDocument(rep.Statements, kinds, nil)
				if withFindings {
					doc.Findings = rep.Findings
				}
				return render.YAML(out, doc)
			case "xlsx":
				if output == "" {
					return errors.New("--output is required for xlsx")
				}
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				if err := render.XLSX(f, rep.Statements, kinds); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("closing %s: %w", output, err)
				}
				fmt.Fprintf(out, "Wrote %s\n", output)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text, yaml or xlsx)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, yaml or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (xlsx only)")
	cmd.Flags().BoolVar(&withFindings, "findings", false, "append audit findings")
	src.register(cmd)

	return cmd
}
