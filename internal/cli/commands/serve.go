package commands

import (
	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/api"
	"github.com/salesdash/salesdash/internal/cliopt"
	"github.com/salesdash/salesdash/internal/cliutil"
)

func NewServeCmd(g *cliopt.GlobalOptions) *cobra.Command {
	var port int
	var lazy bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serve the sales API:

  GET /api/sales           one page of matching sales
  GET /api/sales/filters   distinct values for filter controls
  GET /api/sales/summary   totals over the matching sales
  GET /api/health          liveness and load state`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := g.Config
			log := g.Log

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("lazy") {
				cfg.Server.Preload = !lazy
			}

			opened, err := cliutil.OpenEngine(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer opened.Engine.Close()

			if opened.Preload != nil && cfg.Server.Preload {
				log.Info().Str("csv", cfg.Data.CSV).Msg("Preloading records")
				if err := opened.Preload(ctx); err != nil {
					return err
				}
			}

			handler := api.NewRouter(api.RouterConfig{
				Engine:       opened.Engine,
				Backend:      opened.Backend,
				Ready:        opened.Ready,
				QueryTimeout: cfg.Server.QueryTimeout,
				Logger:       log,
			})
			return api.NewServer(cfg.Server.Port, handler, log).ListenAndRun(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", api.DefaultPort, "HTTP port")
	cmd.Flags().BoolVar(&lazy, "lazy", false, "load the CSV on the first request instead of at startup")
	return cmd
}
