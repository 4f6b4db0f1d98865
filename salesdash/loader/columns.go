package loader

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesdash/salesdash/salesdash/record"
)

// setter stores one raw cell into a transaction.
type setter func(tx *record.Transaction, raw string, loc *time.Location)

func text(field func(*record.Transaction) *string) setter {
	return func(tx *record.Transaction, raw string, _ *time.Location) {
		*field(tx) = strings.TrimSpace(raw)
	}
}

func integer(field func(*record.Transaction) **int) setter {
	return func(tx *record.Transaction, raw string, _ *time.Location) {
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			*field(tx) = &v
		}
	}
}

func money(field func(*record.Transaction) *decimal.Decimal) setter {
	return func(tx *record.Transaction, raw string, _ *time.Location) {
		if d, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
			*field(tx) = d
		}
	}
}

func date(tx *record.Transaction, raw string, loc *time.Location) {
	t, err := record.ParseDate(raw, loc)
	if err != nil {
		return
	}
	// Stored dates have millisecond precision.
	t = t.In(loc).Truncate(time.Millisecond)
	tx.Date = &t
}

func tags(tx *record.Transaction, raw string, _ *time.Location) {
	tx.Tags = record.SplitTags(raw)
}

// columns maps normalized CSV header names to setters.
var columns = map[string]setter{
	"transaction id": text(func(t *record.Transaction) *string { return &t.TransactionID }),
	"date":           date,

	"customer id":     text(func(t *record.Transaction) *string { return &t.CustomerID }),
	"customer name":   text(func(t *record.Transaction) *string { return &t.CustomerName }),
	"phone number":    text(func(t *record.Transaction) *string { return &t.PhoneNumber }),
	"gender":          text(func(t *record.Transaction) *string { return &t.Gender }),
	"age":             integer(func(t *record.Transaction) **int { return &t.Age }),
	"customer region": text(func(t *record.Transaction) *string { return &t.CustomerRegion }),
	"customer type":   text(func(t *record.Transaction) *string { return &t.CustomerType }),

	"product id":       text(func(t *record.Transaction) *string { return &t.ProductID }),
	"product name":     text(func(t *record.Transaction) *string { return &t.ProductName }),
	"brand":            text(func(t *record.Transaction) *string { return &t.Brand }),
	"product category": text(func(t *record.Transaction) *string { return &t.ProductCategory }),
	"tags":             tags,

	"quantity":            integer(func(t *record.Transaction) **int { return &t.Quantity }),
	"price per unit":      money(func(t *record.Transaction) *decimal.Decimal { return &t.PricePerUnit }),
	"discount percentage": money(func(t *record.Transaction) *decimal.Decimal { return &t.DiscountPercentage }),
	"total amount":        money(func(t *record.Transaction) *decimal.Decimal { return &t.TotalAmount }),
	"final amount":        money(func(t *record.Transaction) *decimal.Decimal { return &t.FinalAmount }),

	"payment method": text(func(t *record.Transaction) *string { return &t.PaymentMethod }),
	"order status":   text(func(t *record.Transaction) *string { return &t.OrderStatus }),
	"delivery type":  text(func(t *record.Transaction) *string { return &t.DeliveryType }),

	"store id":       text(func(t *record.Transaction) *string { return &t.StoreID }),
	"store location": text(func(t *record.Transaction) *string { return &t.StoreLocation }),
	"salesperson id": text(func(t *record.Transaction) *string { return &t.SalespersonID }),
	"employee name":  text(func(t *record.Transaction) *string { return &t.EmployeeName }),
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
