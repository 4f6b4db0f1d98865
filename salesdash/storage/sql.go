package storage

import (
	"fmt"
	"strings"

	"github.com/salesdash/salesdash/salesdash/storage/sqlbuilder"
)

// InsertSaleStatement renders the INSERT for SaleColumns in the given
// placeholder style, returning the generated id.
func InsertSaleStatement(style sqlbuilder.PlaceholderStyle) string {
	phs := make([]string, len(SaleColumns))
	for i := range SaleColumns {
		if style == sqlbuilder.PlaceholderDollar {
			phs[i] = fmt.Sprintf("$%d", i+1)
		} else {
			phs[i] = fmt.Sprintf("?%d", i+1)
		}
	}
	return fmt.Sprintf("INSERT INTO sales(%s) VALUES(%s) RETURNING id",
		strings.Join(SaleColumns, ", "), strings.Join(phs, ", "))
}

// SelectList renders SelectColumns qualified with alias.
func SelectList(alias string) string {
	cols := make([]string, len(SelectColumns))
	for i, c := range SelectColumns {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}
