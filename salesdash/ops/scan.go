package ops

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesdash/salesdash/salesdash/record"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads one row projected with storage.SelectColumns.
func scanTransaction(rows rowScanner, loc *time.Location) (record.Transaction, error) {
	var (
		tx       record.Transaction
		id       int64
		dateMS   sql.NullInt64
		age      sql.NullInt64
		quantity sql.NullInt64
		tags     string

		price, discount, total, final decimal.NullDecimal
	)
	err := rows.Scan(
		&id, &tx.TransactionID, &dateMS,
		&tx.CustomerID, &tx.CustomerName, &tx.PhoneNumber,
		&tx.Gender, &age, &tx.CustomerRegion, &tx.CustomerType,
		&tx.ProductID, &tx.ProductName, &tx.Brand, &tx.ProductCategory, &tags,
		&quantity, &price, &discount, &total, &final,
		&tx.PaymentMethod, &tx.OrderStatus, &tx.DeliveryType,
		&tx.StoreID, &tx.StoreLocation, &tx.SalespersonID, &tx.EmployeeName,
	)
	if err != nil {
		return record.Transaction{}, err
	}

	if loc == nil {
		loc = time.UTC
	}
	if dateMS.Valid {
		tx.Date = record.TimePtr(time.UnixMilli(dateMS.Int64).In(loc))
	}
	if age.Valid {
		tx.Age = record.IntPtr(int(age.Int64))
	}
	if quantity.Valid {
		tx.Quantity = record.IntPtr(int(quantity.Int64))
	}
	tx.Tags = record.SplitTags(tags)
	tx.PricePerUnit = price.Decimal
	tx.DiscountPercentage = discount.Decimal
	tx.TotalAmount = total.Decimal
	tx.FinalAmount = final.Decimal
	return tx, nil
}
