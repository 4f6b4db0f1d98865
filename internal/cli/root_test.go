package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/salesdash/salesdash/internal/cliopt"
)

const salesCSV = `Transaction ID,Date,Customer ID,Customer Name,Phone Number,Gender,Age,Customer Region,Customer Type,Product ID,Product Name,Brand,Product Category,Tags,Quantity,Price per Unit,Discount Percentage,Total Amount,Final Amount,Payment Method,Order Status,Delivery Type,Store ID,Store Location,Salesperson ID,Employee Name
1,2023-03-15,C1,Neha Sharma,+91 9123456780,Female,34,North,Loyal,P1,Lipstick,Lakme,Beauty,"organic,sale",2,499.50,10,999.00,899.10,UPI,Completed,Standard,S1,Delhi,E1,Ravi
2,2023-04-01,C2,Arjun,+91 9876543210,Male,41,South,New,P2,Shirt,Zara,Clothing,new,1,1000,0,1000,1000,Cash,Returned,Express,S2,Chennai,E2,Anu
3,2023-05-20,C3,Meera,+91 9000000000,Female,27,East,Returning,P3,Phone,Apple,Electronics,sale,3,100,0,300,300,Card,Completed,Standard,S3,Kolkata,E3,Sam
`

type run struct {
	code   int
	stdout string
	stderr string
}

func execArgs(t *testing.T, args ...string) run {
	t.Helper()
	g := cliopt.DefaultGlobalOptions()
	var stdout, stderr bytes.Buffer
	g.Stdout = &stdout
	g.Stderr = &stderr
	code := execute(context.Background(), g, args)
	return run{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeCSV(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(salesCSV), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	r := execArgs(t, "version")
	assert.Equal(t, 0, r.code)
	assert.Equal(t, "salesdash dev\n", r.stdout)
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	writeCSV(t)
	r := execArgs(t, "query", "--no-such-flag")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "no-such-flag")
}

func TestInvalidBackend(t *testing.T) {
	writeCSV(t)
	r := execArgs(t, "--backend", "mongo", "filters")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "invalid storage backend")
}

func TestQueryMemoryJSON(t *testing.T) {
	csv := writeCSV(t)
	r := execArgs(t, "--csv", csv, "--timezone", "UTC", "--log-level", "error",
		"query", "--gender", "Female", "--sort", "quantity", "--order", "desc", "--format", "json")
	require.Equal(t, 0, r.code, r.stderr)

	var page struct {
		Data []struct {
			TransactionID string `json:"transactionId"`
		} `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &page))
	assert.Equal(t, 2, page.Pagination.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "3", page.Data[0].TransactionID)
	assert.Equal(t, "1", page.Data[1].TransactionID)
}

func TestExplainNeedsSQLBackend(t *testing.T) {
	csv := writeCSV(t)
	r := execArgs(t, "--csv", csv, "--log-level", "error", "query", "--explain")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "SQL backend")
}

func TestSQLiteImportQueryClear(t *testing.T) {
	csv := writeCSV(t)
	db := filepath.Join(filepath.Dir(csv), "sales.db")
	global := []string{"--backend", "sqlite", "--sqlite-path", db, "--timezone", "UTC", "--log-level", "error"}
	with := func(args ...string) []string { return append(append([]string{}, global...), args...) }

	r := execArgs(t, with("import", "--create", "--quiet", csv)...)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "imported 3 sales")

	r = execArgs(t, with("stats", "--tag", "sale", "--format", "json")...)
	require.Equal(t, 0, r.code, r.stderr)
	var sum struct {
		TotalOrders   int             `json:"totalOrders"`
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalQuantity int64           `json:"totalQuantity"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &sum))
	assert.Equal(t, 2, sum.TotalOrders)
	assert.True(t, decimal.RequireFromString("1199.1").Equal(sum.TotalRevenue), "got %s", sum.TotalRevenue)
	assert.Contains(t, r.stdout, `"totalRevenue": 1199.1`, "amounts are JSON numbers")
	assert.Equal(t, int64(5), sum.TotalQuantity)

	r = execArgs(t, with("query", "--region", "South", "--explain")...)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Arjun")
	assert.Contains(t, r.stdout, "Query:")

	r = execArgs(t, with("filters", "--format", "json")...)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"tags": [`)

	r = execArgs(t, with("clear")...)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "deleted 3 sales\n", r.stdout)
}

func TestConfigDump(t *testing.T) {
	writeCSV(t)
	r := execArgs(t, "--backend", "sqlite", "config")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "backend: sqlite")
}
