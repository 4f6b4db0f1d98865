package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salesdash/salesdash/salesdash/storage"
	"github.com/salesdash/salesdash/salesdash/storage/sqlbuilder"
)

func TestSchemaValidation(t *testing.T) {
	assert.NoError(t, New("", "salesdash").validSchema())
	assert.NoError(t, New("", "_s2").validSchema())
	assert.Error(t, New("", "").validSchema())
	assert.Error(t, New("", `bad"name`).validSchema())
	assert.Error(t, New("", "1abc").validSchema())
}

func TestTemplatesUseDollarPlaceholders(t *testing.T) {
	a := New("postgres://localhost/db", "salesdash")
	assert.Equal(t, sqlbuilder.PlaceholderDollar, a.PlaceholderStyle())
	assert.Equal(t, "postgres:salesdash", a.StoreID())

	insert := a.SQL().InsertSale
	assert.True(t, strings.HasSuffix(insert, "RETURNING id"))
	assert.Contains(t, insert, "$28")
	assert.NotContains(t, insert, "?")
	assert.Len(t, storage.SaleColumns, 28)
}

func TestDialect(t *testing.T) {
	d := New("", "s").Dialect()
	assert.Equal(t, "strpos(s.phone_lc, $1) > 0", d.Contains("s.phone_lc", "$1"))
	assert.Equal(t, `s.customer_name_lc COLLATE "C"`, d.OrderText("s.customer_name_lc"))
}
