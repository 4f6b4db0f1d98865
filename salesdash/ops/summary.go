package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/salesdash/salesdash/salesdash/planner"
	"github.com/salesdash/salesdash/salesdash/query"
	"github.com/salesdash/salesdash/salesdash/record"
	"github.com/salesdash/salesdash/salesdash/storage"
)

// Summary aggregates every sale matching c. Paging fields of c are ignored.
func Summary(ctx context.Context, db *sql.DB, adapter storage.Adapter, c query.Criteria) (query.Summary, error) {
	compiled, builder, err := compile(adapter, c)
	if err != nil {
		return query.Summary{}, err
	}

	rows, err := db.QueryContext(ctx, planner.BuildSummarySQL(compiled), builder.Args()...)
	if err != nil {
		return query.Summary{}, fmt.Errorf("execute summary query: %w", err)
	}
	defer rows.Close()

	var b query.SummaryBuilder
	for rows.Next() {
		var (
			final    decimal.NullDecimal
			quantity sql.NullInt64
		)
		if err := rows.Scan(&final, &quantity); err != nil {
			return query.Summary{}, fmt.Errorf("scan summary row: %w", err)
		}
		var q *int
		if quantity.Valid {
			q = record.IntPtr(int(quantity.Int64))
		}
		b.Add(final.Decimal, q)
	}
	if err := rows.Err(); err != nil {
		return query.Summary{}, fmt.Errorf("iterate summary rows: %w", err)
	}
	return b.Summary(), nil
}
