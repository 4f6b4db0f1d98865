package commands

import (
	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/cliopt"
	"github.com/salesdash/salesdash/internal/cliutil"
)

func NewFiltersCmd(g *cliopt.GlobalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the distinct values offered by each filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			opened, err := cliutil.OpenEngine(ctx, g.Config, g.Log)
			if err != nil {
				return err
			}
			defer opened.Engine.Close()

			opts, err := opened.Engine.FilterOptions(ctx)
			if err != nil {
				return err
			}
			cliutil.PrintOptions(g.Stdout, cliutil.ParseOutputFormat(format), opts)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(cliutil.FormatPretty), "output: pretty|json")
	return cmd
}
