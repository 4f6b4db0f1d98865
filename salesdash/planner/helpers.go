package planner

import (
	"fmt"
	"strings"

	"github.com/salesdash/salesdash/salesdash/query"
)

// searchColumn maps a searchable field to its lower-cased shadow column.
func searchColumn(f query.Field) (string, error) {
	switch f {
	case query.FieldCustomerName:
		return "customer_name_lc", nil
	case query.FieldPhoneNumber:
		return "phone_lc", nil
	default:
		return "", fmt.Errorf("field is not searchable: %s", f)
	}
}

// valueColumn maps a categorical field to its column.
func valueColumn(f query.Field) (string, error) {
	switch f {
	case query.FieldCustomerRegion:
		return "customer_region", nil
	case query.FieldGender:
		return "gender", nil
	case query.FieldProductCategory:
		return "product_category", nil
	case query.FieldPaymentMethod:
		return "payment_method", nil
	case query.FieldCustomerName:
		return "customer_name", nil
	case query.FieldPhoneNumber:
		return "phone_number", nil
	default:
		return "", fmt.Errorf("unknown field: %s", f)
	}
}

func intColumn(f query.Field) (string, error) {
	if f == query.FieldAge {
		return "age", nil
	}
	return "", fmt.Errorf("field is not an integer: %s", f)
}

func intBound(v *int) string {
	if v == nil {
		return "*"
	}
	return fmt.Sprintf("%d", *v)
}

func msBound(ms int64, ok bool) string {
	if !ok {
		return "*"
	}
	return fmt.Sprintf("%d", ms)
}

// withClause renders the CTE list of compiled as a WITH prefix.
func withClause(compiled *CompileOutput) string {
	if len(compiled.CTEs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(compiled.CTEs))
	for _, cte := range compiled.CTEs {
		parts = append(parts, fmt.Sprintf("%s AS (%s)", cte.Name, cte.SQL))
	}
	return "WITH " + strings.Join(parts, ", ") + " "
}
