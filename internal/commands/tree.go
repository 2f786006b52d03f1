package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/rgs/internal/render"
)

func newTreeCommand(opts *options) *cobra.Command {
	var format string
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the compiled account hierarchy with aggregated balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
				return render.Tree(out, rep.Forest())
			case "yaml":
				return render.YAML(out, render.TreeNodes(rep.Forest()))
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")
	src.register(cmd)

	return cmd
}

// sourceFlags selects where accounts and balances are read from.
type sourceFlags struct {
	from     string
	snapshot string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.from, "from", "files", "read accounts and balances from files or store")
	cmd.Flags().StringVar(&s.snapshot, "snapshot", "", "balance snapshot to read with --from store (default latest)")
}

func (s *sourceFlags) fromStore() bool {
	return s.from == "store"
}

func (s *sourceFlags) validate() error {
	switch s.from {
	case "files", "store":
		return nil
	default:
		return fmt.Errorf("unknown source %q (want files or store)", s.from)
	}
}
