package sqlite

import (
	"github.com/salesdash/salesdash/salesdash/storage"
	"github.com/salesdash/salesdash/salesdash/storage/sqlbuilder"
)

var SQLTemplates = storage.SQL{
	GetMeta:     "SELECT value FROM meta WHERE key = ?1",
	SetMeta:     "INSERT INTO meta(key,value) VALUES(?1,?2) ON CONFLICT(key) DO UPDATE SET value=excluded.value",
	InsertSale:  storage.InsertSaleStatement(sqlbuilder.PlaceholderQuestion),
	InsertTag:   "INSERT OR IGNORE INTO sale_tags(sale_id, position, tag) VALUES(?1, ?2, ?3)",
	CountSales:  "SELECT COUNT(*) FROM sales",
	DeleteTags:  "DELETE FROM sale_tags",
	DeleteSales: "DELETE FROM sales",
}

type dialect struct{}

func (dialect) Contains(col, ph string) string { return "instr(" + col + ", " + ph + ") > 0" }

// SQLite's default collation is already BINARY.
func (dialect) OrderText(expr string) string { return expr }
