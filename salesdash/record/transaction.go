// Package record defines the canonical transaction shape shared by every
// part of salesdash. Column names of external sources are mapped onto it by
// the loader and never leak past it.
package record

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are emitted as JSON numbers, matching the dashboard API.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is one retail sale line item.
type Transaction struct {
	TransactionID string     `json:"transactionId"`
	Date          *time.Time `json:"date"` // nil when the source date was unparseable

	CustomerID     string `json:"customerId"`
	CustomerName   string `json:"customerName"`
	PhoneNumber    string `json:"phoneNumber"`
	Gender         string `json:"gender"`
	Age            *int   `json:"age"` // nil when the source age was not an integer
	CustomerRegion string `json:"customerRegion"`
	CustomerType   string `json:"customerType"`

	ProductID       string   `json:"productId"`
	ProductName     string   `json:"productName"`
	Brand           string   `json:"brand"`
	ProductCategory string   `json:"productCategory"`
	Tags            []string `json:"tags"`

	Quantity           *int            `json:"quantity"`
	PricePerUnit       decimal.Decimal `json:"pricePerUnit"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	FinalAmount        decimal.Decimal `json:"finalAmount"`

	PaymentMethod string `json:"paymentMethod"`
	OrderStatus   string `json:"orderStatus"`
	DeliveryType  string `json:"deliveryType"`

	StoreID       string `json:"storeId"`
	StoreLocation string `json:"storeLocation"`
	SalespersonID string `json:"salespersonId"`
	EmployeeName  string `json:"employeeName"`
}

// QuantityOrZero returns the quantity, treating a missing value as 0.
func (t *Transaction) QuantityOrZero() int {
	if t.Quantity == nil {
		return 0
	}
	return *t.Quantity
}

// HasTag reports whether any of the given tags is attached to t.
func (t *Transaction) HasTag(tags []string) bool {
	for _, have := range t.Tags {
		for _, want := range tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// SplitTags normalizes a raw comma-separated tag field into trimmed,
// non-empty tokens. Order is preserved and duplicates are dropped.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// IntPtr is a small helper for building records in code.
func IntPtr(v int) *int { return &v }

// TimePtr is a small helper for building records in code.
func TimePtr(v time.Time) *time.Time { return &v }
