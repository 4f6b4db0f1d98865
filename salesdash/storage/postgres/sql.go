package postgres

import (
	"github.com/salesdash/salesdash/salesdash/storage"
	"github.com/salesdash/salesdash/salesdash/storage/sqlbuilder"
)

var SQLTemplates = storage.SQL{
	GetMeta:     "SELECT value FROM meta WHERE key = $1",
	SetMeta:     "INSERT INTO meta(key,value) VALUES($1,$2) ON CONFLICT(key) DO UPDATE SET value=EXCLUDED.value",
	InsertSale:  storage.InsertSaleStatement(sqlbuilder.PlaceholderDollar),
	InsertTag:   "INSERT INTO sale_tags(sale_id, position, tag) VALUES($1, $2, $3) ON CONFLICT(sale_id, position) DO NOTHING",
	CountSales:  "SELECT COUNT(*) FROM sales",
	DeleteTags:  "DELETE FROM sale_tags",
	DeleteSales: "DELETE FROM sales",
}

type dialect struct{}

func (dialect) Contains(col, ph string) string { return "strpos(" + col + ", " + ph + ") > 0" }

func (dialect) OrderText(expr string) string { return expr + ` COLLATE "C"` }
