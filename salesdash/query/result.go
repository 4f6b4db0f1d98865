package query

import (
	"github.com/shopspring/decimal"

	"github.com/salesdash/salesdash/salesdash/record"
)

// Pagination is the metadata returned alongside a page.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of matching records.
type Page struct {
	Data       []record.Transaction `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// FilterOptions are the distinct values of each filterable dimension.
type FilterOptions struct {
	CustomerRegions   []string `json:"customerRegions"`
	Genders           []string `json:"genders"`
	ProductCategories []string `json:"productCategories"`
	PaymentMethods    []string `json:"paymentMethods"`
	Tags              []string `json:"tags"`
}

// Summary aggregates the full filtered set.
type Summary struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalOrders   int             `json:"totalOrders"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
	TotalQuantity int64           `json:"totalQuantity"`
}
