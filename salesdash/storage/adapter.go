package storage

import (
	"context"
	"database/sql"

	"github.com/salesdash/salesdash/salesdash/storage/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Store metadata written by CreateStore and checked by OpenStore.
const (
	MetaMagicKey   = "salesdash_magic"
	MetaMagicValue = "salesdash"
	MetaVersionKey = "salesdash_version"
	SchemaVersion  = "1"
)

// Adapter abstracts database-specific operations
type Adapter interface {
	Backend() Backend
	PlaceholderStyle() sqlbuilder.PlaceholderStyle
	StoreID() string

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	CreateStore(ctx context.Context, db *sql.DB) error
	OpenStore(ctx context.Context, db *sql.DB) (version string, err error)
	Optimize(ctx context.Context, db *sql.DB) error

	SQL() SQL
	Dialect() Dialect
}

// SQL holds prepared SQL templates for common operations
type SQL struct {
	GetMeta string
	SetMeta string

	// InsertSale takes the columns in SaleColumns order and returns the new id.
	InsertSale string
	InsertTag  string

	CountSales  string
	DeleteTags  string
	DeleteSales string
}

// Dialect covers the expressions that differ between engines.
type Dialect interface {
	// Contains returns a boolean expression that is true when col contains
	// the value bound to ph as a substring.
	Contains(col, ph string) string
	// OrderText makes a text sort expression compare bytewise.
	OrderText(expr string) string
}

// Builder interface for placeholder management
type Builder interface {
	Arg(v any) string
	List(values []string) string
	Args() []any
	Len() int
}

// SaleColumns lists the insertable columns of the sales table in the order
// expected by SQL.InsertSale.
var SaleColumns = []string{
	"transaction_id", "date_ms",
	"customer_id", "customer_name", "customer_name_lc", "phone_number", "phone_lc",
	"gender", "age", "customer_region", "customer_type",
	"product_id", "product_name", "brand", "product_category", "tags",
	"quantity", "price_per_unit", "discount_percentage", "total_amount", "final_amount",
	"payment_method", "order_status", "delivery_type",
	"store_id", "store_location", "salesperson_id", "employee_name",
}

// SelectColumns is the projection used when reading sales back, prefixed
// with the row id.
var SelectColumns = []string{
	"id", "transaction_id", "date_ms",
	"customer_id", "customer_name", "phone_number",
	"gender", "age", "customer_region", "customer_type",
	"product_id", "product_name", "brand", "product_category", "tags",
	"quantity", "price_per_unit", "discount_percentage", "total_amount", "final_amount",
	"payment_method", "order_status", "delivery_type",
	"store_id", "store_location", "salesperson_id", "employee_name",
}
