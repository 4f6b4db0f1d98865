package planner

import (
	"fmt"
	"strings"

	"github.com/salesdash/salesdash/salesdash/query"
	"github.com/salesdash/salesdash/salesdash/storage"
)

// BuildPageSQL builds the SELECT returning one page of matching sales in
// the requested order. Rows come back in storage.SelectColumns order.
func BuildPageSQL(
	dialect storage.Dialect,
	compiled *CompileOutput,
	key query.SortKey,
	order query.SortOrder,
	limit, offset int,
) (string, error) {
	orderClause, err := buildOrderClause(dialect, key, order)
	if err != nil {
		return "", err
	}

	sql := fmt.Sprintf(`%s
SELECT %s
FROM sales s
JOIN %s r ON r.sale_id = s.id
%s
LIMIT %d OFFSET %d`,
		withClause(compiled),
		storage.SelectList("s"),
		compiled.ResultCTE,
		orderClause,
		limit,
		offset,
	)
	return sql, nil
}

// BuildCountSQL builds the SELECT counting every matching sale.
func BuildCountSQL(compiled *CompileOutput) string {
	return fmt.Sprintf("%sSELECT COUNT(*) FROM %s", withClause(compiled), compiled.ResultCTE)
}

// BuildSummarySQL builds the SELECT streaming the amounts aggregated by a
// summary. Totals are computed by the caller so both backends round the same way.
func BuildSummarySQL(compiled *CompileOutput) string {
	return fmt.Sprintf(`%s
SELECT s.final_amount, s.quantity
FROM sales s
JOIN %s r ON r.sale_id = s.id`,
		withClause(compiled),
		compiled.ResultCTE,
	)
}

// BuildDistinctSQL builds the SELECT listing the distinct non-empty values
// of a categorical column across the whole table.
func BuildDistinctSQL(field query.Field) (string, error) {
	if field == query.FieldTags {
		return "SELECT DISTINCT tag FROM sale_tags WHERE tag <> ''", nil
	}
	col, err := valueColumn(field)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT DISTINCT %s FROM sales WHERE %s IS NOT NULL AND %s <> ''", col, col, col), nil
}

func buildOrderClause(dialect storage.Dialect, key query.SortKey, order query.SortOrder) (string, error) {
	dir := "ASC"
	nulls := "NULLS FIRST"
	if order == query.Desc {
		dir = "DESC"
		nulls = "NULLS LAST"
	}

	var terms []string
	switch key {
	case query.SortNone:
	case query.SortDate:
		terms = append(terms, fmt.Sprintf("s.date_ms %s %s", dir, nulls))
	case query.SortQuantity:
		terms = append(terms, fmt.Sprintf("COALESCE(s.quantity, 0) %s", dir))
	case query.SortCustomerName:
		terms = append(terms, fmt.Sprintf("%s %s", dialect.OrderText("s.customer_name_lc"), dir))
	default:
		return "", fmt.Errorf("unknown sort key: %s", key)
	}
	// Load order breaks ties.
	terms = append(terms, "s.id ASC")
	return "ORDER BY " + strings.Join(terms, ", "), nil
}
