package commands

import (
	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/cliopt"
	"github.com/salesdash/salesdash/internal/cliutil"
)

// NewStatsCmd reports totals over every sale matching the filters. Paging
// flags do not apply.
func NewStatsCmd(g *cliopt.GlobalOptions) *cobra.Command {
	var q cliopt.QueryFlags
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize revenue and quantity of matching sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			opened, err := cliutil.OpenEngine(ctx, g.Config, g.Log)
			if err != nil {
				return err
			}
			defer opened.Engine.Close()

			sum, err := opened.Engine.Summary(ctx, q.Params())
			if err != nil {
				return err
			}
			cliutil.PrintSummary(g.Stdout, cliutil.ParseOutputFormat(format), sum)
			return nil
		},
	}
	cliopt.BindQueryFlags(cmd.Flags(), &q, false)
	cmd.Flags().StringVarP(&format, "format", "f", string(cliutil.FormatPretty), "output: pretty|json")
	return cmd
}
