package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/cliopt"
	"github.com/salesdash/salesdash/internal/cliutil"
)

func NewClearCmd(g *cliopt.GlobalOptions) *cobra.Command {
	var optimize bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every sale from the SQL store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return withWriteLock(cmd, g, func() error {
				store, err := cliutil.OpenStore(ctx, g.Config, g.Log, false)
				if err != nil {
					return err
				}
				defer store.Close()

				before, err := store.Count(ctx)
				if err != nil {
					return err
				}
				if err := store.Clear(ctx); err != nil {
					return err
				}
				if optimize {
					if err := store.Optimize(ctx); err != nil {
						return err
					}
				}
				fmt.Fprintf(g.Stdout, "deleted %d sales\n", before)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&optimize, "optimize", false, "reclaim space after deleting")
	return cmd
}
