package query

import (
	"sort"
	"strings"

	"github.com/salesdash/salesdash/salesdash/record"
)

// Compare orders a and b by key in ascending order. Missing dates rank
// lowest, a missing quantity counts as 0 and names compare case-insensitively.
func Compare(key SortKey, a, b *record.Transaction) int {
	switch key {
	case SortDate:
		switch {
		case a.Date == nil && b.Date == nil:
			return 0
		case a.Date == nil:
			return -1
		case b.Date == nil:
			return 1
		}
		return a.Date.Compare(*b.Date)
	case SortQuantity:
		qa, qb := a.QuantityOrZero(), b.QuantityOrZero()
		switch {
		case qa < qb:
			return -1
		case qa > qb:
			return 1
		}
		return 0
	case SortCustomerName:
		return strings.Compare(strings.ToLower(a.CustomerName), strings.ToLower(b.CustomerName))
	default:
		return 0
	}
}

// Sort orders records in place. The sort is stable and equal keys keep
// their input order in both directions. SortNone leaves records untouched.
func Sort(records []record.Transaction, key SortKey, order SortOrder) {
	if key == SortNone || len(records) < 2 {
		return
	}
	sign := 1
	if order == Desc {
		sign = -1
	}
	sort.SliceStable(records, func(i, j int) bool {
		return sign*Compare(key, &records[i], &records[j]) < 0
	})
}
