package query

import "github.com/salesdash/salesdash/salesdash/record"

// Execute evaluates c against records in process: filter, stable sort,
// then paginate. records is not modified.
func Execute(records []record.Transaction, c Criteria) Page {
	matched := Filter(Compose(c), records)
	Sort(matched, c.Sort, c.Order)
	return Paginate(matched, c.Page, c.PageSize)
}
