package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/salesdash/salesdash/salesdash/record"
	"github.com/salesdash/salesdash/salesdash/storage"
)

// saleArgs returns the insert arguments for tx in storage.SaleColumns order.
func saleArgs(tx *record.Transaction) []any {
	var dateMS, age, quantity any
	if tx.Date != nil {
		dateMS = tx.Date.UnixMilli()
	}
	if tx.Age != nil {
		age = int64(*tx.Age)
	}
	if tx.Quantity != nil {
		quantity = int64(*tx.Quantity)
	}
	return []any{
		tx.TransactionID, dateMS,
		tx.CustomerID, tx.CustomerName, strings.ToLower(tx.CustomerName), tx.PhoneNumber, strings.ToLower(tx.PhoneNumber),
		tx.Gender, age, tx.CustomerRegion, tx.CustomerType,
		tx.ProductID, tx.ProductName, tx.Brand, tx.ProductCategory, strings.Join(tx.Tags, ","),
		quantity, tx.PricePerUnit.String(), tx.DiscountPercentage.String(), tx.TotalAmount.String(), tx.FinalAmount.String(),
		tx.PaymentMethod, tx.OrderStatus, tx.DeliveryType,
		tx.StoreID, tx.StoreLocation, tx.SalespersonID, tx.EmployeeName,
	}
}

// InsertBatch appends records in a single transaction, preserving their
// order as the load order. It returns the number of rows written.
func InsertBatch(ctx context.Context, db *sql.DB, adapter storage.Adapter, records []record.Transaction) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	sqlt := adapter.SQL()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	saleStmt, err := tx.PrepareContext(ctx, sqlt.InsertSale)
	if err != nil {
		return 0, fmt.Errorf("prepare sale insert: %w", err)
	}
	defer saleStmt.Close()

	tagStmt, err := tx.PrepareContext(ctx, sqlt.InsertTag)
	if err != nil {
		return 0, fmt.Errorf("prepare tag insert: %w", err)
	}
	defer tagStmt.Close()

	for i := range records {
		rec := &records[i]
		var id int64
		if err := saleStmt.QueryRowContext(ctx, saleArgs(rec)...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert sale %q: %w", rec.TransactionID, err)
		}
		for pos, tag := range rec.Tags {
			if _, err := tagStmt.ExecContext(ctx, id, pos, tag); err != nil {
				return 0, fmt.Errorf("insert tag %q for sale %q: %w", tag, rec.TransactionID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(records), nil
}

// Clear removes every stored sale.
func Clear(ctx context.Context, db *sql.DB, adapter storage.Adapter) error {
	sqlt := adapter.SQL()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, sqlt.DeleteTags); err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlt.DeleteSales); err != nil {
		return fmt.Errorf("delete sales: %w", err)
	}
	return tx.Commit()
}
