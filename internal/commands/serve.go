package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/rgs/internal/server"
	"github.com/cleared-dev/rgs/internal/store"
)

func newServeCommand(opts *options) *cobra.Command {
	var addr string
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart, hierarchy and statements over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := src.validate(); err != nil {
				return err
			}
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = p.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var st *store.Store
			if src.fromStore() {
				st, err = p.openStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			// Request logs are always on; --verbose adds debug output.
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			srv := server.New(p.source(st, src.snapshot), p.cfg.Builder(), addr, log)
			log.Info("listening", "addr", addr, "source", src.from)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from rgs.yaml)")
	src.register(cmd)

	return cmd
}
