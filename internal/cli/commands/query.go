package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/cliopt"
	"github.com/salesdash/salesdash/internal/cliutil"
	"github.com/salesdash/salesdash/salesdash"
)

func NewQueryCmd(g *cliopt.GlobalOptions) *cobra.Command {
	var q cliopt.QueryFlags
	var format string
	var explain bool

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print one page of matching sales",
		Example: `  salesdash query --region North --region East --sort date --order desc
  salesdash query -s sharma --tag sale --format table
  salesdash --backend sqlite query --age-min 25 --age-max 35 --explain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			opened, err := cliutil.OpenEngine(ctx, g.Config, g.Log)
			if err != nil {
				return err
			}
			defer opened.Engine.Close()

			c := opened.Engine.Normalize(q.Params())
			out := cliutil.ParseOutputFormat(format)

			if explain {
				store, ok := opened.Engine.Backend().(*salesdash.Store)
				if !ok {
					return salesdash.New(salesdash.ErrConfig, "--explain needs a SQL backend")
				}
				res, err := store.Explain(ctx, c)
				if err != nil {
					return err
				}
				cliutil.PrintPage(g.Stdout, out, res.Page)
				if len(res.ExplainSteps) > 0 {
					fmt.Fprintln(g.Stdout, "\nPlan:")
					for _, s := range res.ExplainSteps {
						fmt.Fprintf(g.Stdout, "  - %s\n", s)
					}
				}
				if res.ExplainSQL != "" {
					fmt.Fprintf(g.Stdout, "\nQuery:\n%s\n", res.ExplainSQL)
				}
				return nil
			}

			page, err := opened.Engine.QueryCriteria(ctx, c)
			if err != nil {
				return err
			}
			cliutil.PrintPage(g.Stdout, out, page)
			return nil
		},
	}

	cliopt.BindQueryFlags(cmd.Flags(), &q, true)
	cmd.Flags().StringVarP(&format, "format", "f", string(cliutil.FormatPretty), "output: pretty|table|json")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the compiled plan and SQL")
	return cmd
}
