package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/rgs/internal/buildinfo"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	repo    string
	verbose bool
}

// logger writes diagnostics to stderr. Without --verbose only errors pass.
func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "rgs",
		Short:   "Financial statements from a standardized chart of accounts",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.repo, "repo", ".", "project directory")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log compiler diagnostics to stderr")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newTreeCommand(opts))
	rootCmd.AddCommand(newStatementsCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}
