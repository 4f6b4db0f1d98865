package ops

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/salesdash/salesdash/salesdash/planner"
	"github.com/salesdash/salesdash/salesdash/query"
)

// DistinctValues returns the sorted distinct non-empty values of field
// across every stored sale.
func DistinctValues(ctx context.Context, db *sql.DB, field query.Field) ([]string, error) {
	querySQL, err := planner.BuildDistinctSQL(field)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, querySQL)
	if err != nil {
		return nil, fmt.Errorf("query distinct %s: %w", field, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan distinct %s: %w", field, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distinct %s: %w", field, err)
	}
	// Sorted in Go so the order does not depend on the database collation.
	return query.SortedValues(values), nil
}

// DistinctOptions returns the distinct values of every filterable dimension.
func DistinctOptions(ctx context.Context, db *sql.DB) (query.FilterOptions, error) {
	var opts query.FilterOptions
	targets := []struct {
		field query.Field
		dst   *[]string
	}{
		{query.FieldCustomerRegion, &opts.CustomerRegions},
		{query.FieldGender, &opts.Genders},
		{query.FieldProductCategory, &opts.ProductCategories},
		{query.FieldPaymentMethod, &opts.PaymentMethods},
		{query.FieldTags, &opts.Tags},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		g.Go(func() error {
			values, err := DistinctValues(gctx, db, t.field)
			if err != nil {
				return err
			}
			*t.dst = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return query.FilterOptions{}, err
	}
	return opts, nil
}
