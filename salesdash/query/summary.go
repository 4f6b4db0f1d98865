package query

import (
	"github.com/shopspring/decimal"

	"github.com/salesdash/salesdash/salesdash/record"
)

// SummaryBuilder accumulates summary statistics one record at a time so the
// in-memory and SQL paths share the same arithmetic.
type SummaryBuilder struct {
	revenue  decimal.Decimal
	orders   int
	quantity int64
}

// Add folds one record's final amount and quantity into the summary.
func (b *SummaryBuilder) Add(finalAmount decimal.Decimal, quantity *int) {
	b.revenue = b.revenue.Add(finalAmount)
	b.orders++
	if quantity != nil {
		b.quantity += int64(*quantity)
	}
}

// Summary returns the accumulated statistics.
func (b *SummaryBuilder) Summary() Summary {
	avg := decimal.Zero
	if b.orders > 0 {
		avg = b.revenue.Div(decimal.NewFromInt(int64(b.orders))).Round(2)
	}
	return Summary{
		TotalRevenue:  b.revenue,
		TotalOrders:   b.orders,
		AvgOrderValue: avg,
		TotalQuantity: b.quantity,
	}
}

// Summarize aggregates records, which should already be filtered.
func Summarize(records []record.Transaction) Summary {
	var b SummaryBuilder
	for i := range records {
		b.Add(records[i].FinalAmount, records[i].Quantity)
	}
	return b.Summary()
}
