package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/cliopt"
	"github.com/salesdash/salesdash/internal/cliutil"
	"github.com/salesdash/salesdash/internal/config"
	"github.com/salesdash/salesdash/salesdash"
	"github.com/salesdash/salesdash/salesdash/loader"
	"github.com/salesdash/salesdash/salesdash/record"
)

// lockWait bounds how long import and clear wait for another writer.
const lockWait = 5 * time.Second

// withWriteLock runs fn while holding the cross-process lock of a SQLite
// store. Other backends run fn directly.
func withWriteLock(cmd *cobra.Command, g *cliopt.GlobalOptions, fn func() error) error {
	if g.Config.Storage.Backend != config.BackendSQLite {
		return fn()
	}
	unlock, err := cliutil.AcquireLock(cmd.Context(), cliutil.ResolveSQLitePath(g.Config.Storage.SQLite.Path), lockWait)
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()
	return fn()
}

func NewImportCmd(g *cliopt.GlobalOptions) *cobra.Command {
	var batchSize int
	var create, replace, quiet bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Load a CSV export into the SQL store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			if !cmd.Flags().Changed("batch-size") {
				batchSize = g.Config.Import.BatchSize
			}

			return withWriteLock(cmd, g, func() error {
				store, err := cliutil.OpenStore(ctx, g.Config, g.Log, create)
				if err != nil {
					return err
				}
				defer store.Close()

				if replace {
					if err := store.Clear(ctx); err != nil {
						return err
					}
				}

				f, err := os.Open(path)
				if err != nil {
					return salesdash.Wrap(salesdash.ErrIO, "open CSV", err)
				}
				defer f.Close()

				size := int64(-1)
				if fi, err := f.Stat(); err == nil {
					size = fi.Size()
				}
				bar := progressbar.NewOptions64(size,
					progressbar.OptionSetWriter(g.Stderr),
					progressbar.OptionSetVisibility(!quiet),
					progressbar.OptionShowBytes(true),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSetDescription("Importing sales"),
					progressbar.OptionShowElapsedTimeOnFinish(),
					progressbar.OptionOnCompletion(func() { fmt.Fprintln(g.Stderr) }),
				)
				pr := progressbar.NewReader(f, bar)

				loc, err := g.Config.Location()
				if err != nil {
					return err
				}
				r := loader.NewReader(&pr, loader.Options{Location: loc, Logger: g.Log})

				start := time.Now()
				inserted := 0
				err = r.ForEachBatch(ctx, batchSize, func(batch []record.Transaction) error {
					n, err := store.InsertBatch(ctx, batch)
					if err != nil {
						return err
					}
					inserted += n
					g.Log.Debug().Int("inserted", inserted).Msg("Batch committed")
					return nil
				})
				_ = bar.Finish()
				if err != nil {
					return err
				}

				st := r.Stats()
				g.Log.Info().
					Int("inserted", inserted).
					Int("skipped", st.Skipped).
					Dur("took", time.Since(start)).
					Msg("Import finished")
				fmt.Fprintf(g.Stdout, "imported %d sales (%d rows skipped) in %s\n",
					inserted, st.Skipped, time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", loader.DefaultBatchSize, "rows per insert transaction")
	cmd.Flags().BoolVar(&create, "create", false, "create the store schema first")
	cmd.Flags().BoolVar(&replace, "replace", false, "delete existing sales before importing")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}
