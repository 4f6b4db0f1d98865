package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/cli/commands"
	"github.com/salesdash/salesdash/internal/cliopt"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// usageError marks bad flags or arguments; Execute exits 2 for these.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// NewRootCmd builds the command tree around g.
func NewRootCmd(g *cliopt.GlobalOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "salesdash",
		Short: "Search, filter, sort and page retail sales transactions",
		Long: `salesdash serves and queries a table of retail sales transactions.

Sales come from a CSV export. The memory backend reads the CSV on first use;
the sqlite and postgres backends hold an imported copy.

Configuration is read from salesdash.yaml (or --config), SALESDASH_* environment
variables and the global flags below, in increasing priority.`,
		Example: `  salesdash serve --port 5151
  salesdash --backend sqlite init && salesdash --backend sqlite import data/sales.csv
  salesdash query --gender Female --sort quantity --order desc -n 20`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if commands.SkipsConfig(cmd) {
				return nil
			}
			return g.Load()
		},
	}
	root.SetOut(g.Stdout)
	root.SetErr(g.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cliopt.BindGlobalFlags(root.PersistentFlags(), g)

	root.AddCommand(
		commands.NewServeCmd(g),
		commands.NewInitCmd(g),
		commands.NewImportCmd(g),
		commands.NewClearCmd(g),
		commands.NewQueryCmd(g),
		commands.NewFiltersCmd(g),
		commands.NewStatsCmd(g),
		commands.NewConfigCmd(g),
		commands.NewVersionCmd(g, Version),
	)
	return root
}

// Execute runs the CLI and returns an exit code.
func Execute(ctx context.Context, argv []string) int {
	g := cliopt.DefaultGlobalOptions()
	return execute(ctx, g, argv)
}

func execute(ctx context.Context, g *cliopt.GlobalOptions, argv []string) int {
	root := NewRootCmd(g)
	root.SetArgs(argv)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	fmt.Fprintln(g.Stderr, "error:", err)

	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}
