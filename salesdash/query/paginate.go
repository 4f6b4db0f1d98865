package query

import (
	"math"

	"github.com/salesdash/salesdash/salesdash/record"
)

// TotalPages is ceil(total/pageSize), and 0 when total is 0.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// NewPagination builds pagination metadata for a filtered total.
func NewPagination(total, page, pageSize int) Pagination {
	return Pagination{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}

// PageBounds returns the [start, end) slice bounds of page within a
// sequence of n items. ok is false when the page is out of range.
func PageBounds(n, page, pageSize int) (start, end int, ok bool) {
	if page < 1 || pageSize < 1 || page > TotalPages(n, pageSize) {
		return 0, 0, false
	}
	start = (page - 1) * pageSize
	end = start + pageSize
	if end > n {
		end = n
	}
	return start, end, true
}

// Paginate slices the filtered and sorted records into the requested page.
// An out-of-range page is empty, never an error.
func Paginate(records []record.Transaction, page, pageSize int) Page {
	out := Page{
		Data:       []record.Transaction{},
		Pagination: NewPagination(len(records), page, pageSize),
	}
	if start, end, ok := PageBounds(len(records), page, pageSize); ok {
		out.Data = append(out.Data, records[start:end]...)
	}
	return out
}

// Offset returns the number of rows preceding page. ok is false when page
// is below 1 or the offset would overflow.
func Offset(page, pageSize int) (offset int, ok bool) {
	if page < 1 || pageSize < 1 {
		return 0, false
	}
	if page-1 > math.MaxInt/pageSize {
		return 0, false
	}
	return (page - 1) * pageSize, true
}
