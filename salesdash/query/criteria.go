package query

import "time"

// SortKey is one of the fixed sortable fields.
type SortKey string

const (
	SortNone         SortKey = ""
	SortDate         SortKey = "date"
	SortQuantity     SortKey = "quantity"
	SortCustomerName SortKey = "customerName"
)

// ParseSortKey maps a raw sortBy value onto a SortKey. Unknown values mean
// no sort.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDate, SortQuantity, SortCustomerName:
		return SortKey(s)
	default:
		return SortNone
	}
}

// SortOrder is the sort direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortOrder maps a raw sortOrder value; anything but "desc" is ascending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == Desc {
		return Desc
	}
	return Asc
}

// Criteria is the normalized form of a query. Empty value sets and nil
// bounds are inactive dimensions.
type Criteria struct {
	Search string

	Regions        []string
	Genders        []string
	Categories     []string
	Tags           []string
	PaymentMethods []string

	AgeMin *int
	AgeMax *int

	DateStart *time.Time
	DateEnd   *time.Time // inclusive, already extended to the end of its day

	Sort  SortKey
	Order SortOrder

	Page     int
	PageSize int
}

// Offset returns the zero-based index of the first record on the page.
// ok is false when the page can never hold records.
func (c Criteria) Offset() (int, bool) {
	return Offset(c.Page, c.PageSize)
}
