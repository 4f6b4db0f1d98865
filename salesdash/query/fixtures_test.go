package query_test

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesdash/salesdash/salesdash/record"
)

func day(y int, m time.Month, d, h int) *time.Time {
	t := time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	return &t
}

// sampleRecords returns 25 records with a spread of every dimension. Record
// i has ID "T%02d" so order checks can compare IDs.
func sampleRecords() []record.Transaction {
	regions := []string{"North", "South", "East", "West"}
	genders := []string{"Female", "Male"}
	categories := []string{"Clothing", "Electronics", "Beauty"}
	payments := []string{"Cash", "Credit Card", "UPI"}
	tagSets := []string{"sale, clearance", "new", "", "organic,sale", "gift"}
	names := []string{"alice", "Bob", "carol", "Dave", "eve"}

	out := make([]record.Transaction, 0, 25)
	for i := 0; i < 25; i++ {
		tx := record.Transaction{
			TransactionID:   fmt.Sprintf("T%02d", i),
			CustomerID:      fmt.Sprintf("C%02d", i%7),
			CustomerName:    names[i%len(names)],
			PhoneNumber:     fmt.Sprintf("+91 98765%05d", i),
			Gender:          genders[i%len(genders)],
			Age:             record.IntPtr(20 + i),
			CustomerRegion:  regions[i%len(regions)],
			ProductCategory: categories[i%len(categories)],
			Tags:            record.SplitTags(tagSets[i%len(tagSets)]),
			Quantity:        record.IntPtr(i % 6),
			FinalAmount:     decimal.NewFromFloat(10.25).Mul(decimal.NewFromInt(int64(i + 1))),
			PaymentMethod:   payments[i%len(payments)],
			Date:            day(2024, time.January, 1+i%10, i%24),
		}
		out = append(out, tx)
	}
	return out
}

func ids(records []record.Transaction) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.TransactionID
	}
	return out
}
