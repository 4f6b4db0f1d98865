package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/cliopt"
	"github.com/salesdash/salesdash/internal/cliutil"
)

func NewInitCmd(g *cliopt.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the SQL store schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := cliutil.OpenStore(cmd.Context(), g.Config, g.Log, true)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintf(g.Stdout, "initialized %s store %s\n", store.Backend(), store.ID())
			return nil
		},
	}
}
