package ops

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/salesdash/salesdash/salesdash/planner"
	"github.com/salesdash/salesdash/salesdash/query"
	"github.com/salesdash/salesdash/salesdash/record"
	"github.com/salesdash/salesdash/salesdash/storage"
	"github.com/salesdash/salesdash/salesdash/storage/sqlbuilder"
)

// QueryOptions configures a query operation
type QueryOptions struct {
	// Location is attached to the dates of returned records.
	Location *time.Location
	Explain  bool
	// Logger receives a warning for every row that fails to decode.
	Logger zerolog.Logger
}

// QueryResult is the result of a query operation
type QueryResult struct {
	Page         query.Page
	ExplainSQL   string
	ExplainSteps []string
	Skipped      int
}

// compile composes the criteria into a predicate tree and compiles it for
// the adapter's dialect.
func compile(adapter storage.Adapter, c query.Criteria) (*planner.CompileOutput, *sqlbuilder.Builder, error) {
	builder := sqlbuilder.New(adapter.PlaceholderStyle())
	compiled, err := planner.Compile(adapter.Dialect(), builder, query.Compose(c))
	if err != nil {
		return nil, nil, fmt.Errorf("compile query: %w", err)
	}
	return compiled, builder, nil
}

// Query executes the criteria against the sales table and returns one page.
// The total and the page rows are fetched concurrently.
func Query(ctx context.Context, db *sql.DB, adapter storage.Adapter, c query.Criteria, opts QueryOptions) (*QueryResult, error) {
	compiled, builder, err := compile(adapter, c)
	if err != nil {
		return nil, err
	}
	args := builder.Args()

	start, inRange := c.Offset()

	pageSQL, err := planner.BuildPageSQL(adapter.Dialect(), compiled, c.Sort, c.Order, c.PageSize, start)
	if err != nil {
		return nil, fmt.Errorf("build page SQL: %w", err)
	}
	countSQL := planner.BuildCountSQL(compiled)

	var total, skipped int
	data := []record.Transaction{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := db.QueryRowContext(gctx, countSQL, args...).Scan(&total); err != nil {
			return fmt.Errorf("count matches: %w", err)
		}
		return nil
	})
	if inRange {
		g.Go(func() error {
			rows, err := db.QueryContext(gctx, pageSQL, args...)
			if err != nil {
				return fmt.Errorf("execute page query: %w", err)
			}
			defer rows.Close()

			for rows.Next() {
				tx, err := scanTransaction(rows, opts.Location)
				if err != nil {
					skipped++
					opts.Logger.Warn().Err(err).Msg("skipping undecodable sale row")
					continue
				}
				data = append(data, tx)
			}
			if err := rows.Err(); err != nil {
				return fmt.Errorf("iterate rows: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &QueryResult{
		Page: query.Page{
			Data:       data,
			Pagination: query.NewPagination(total, c.Page, c.PageSize),
		},
		Skipped: skipped,
	}
	if opts.Explain {
		result.ExplainSQL = pageSQL
		result.ExplainSteps = compiled.ExplainSteps
	}
	return result, nil
}

// Count returns the number of stored sales.
func Count(ctx context.Context, db *sql.DB, adapter storage.Adapter) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, adapter.SQL().CountSales).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}
