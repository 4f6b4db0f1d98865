package loader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdash/salesdash/salesdash/record"
)

const header = "Transaction ID,Date,Customer ID,Customer Name,Phone Number,Gender,Age,Customer Region,Customer Type," +
	"Product ID,Product Name,Brand,Product Category,Tags,Quantity,Price per Unit,Discount Percentage," +
	"Total Amount,Final Amount,Payment Method,Order Status,Delivery Type,Store ID,Store Location," +
	"Salesperson ID,Employee Name"

const sampleCSV = header + "\n" +
	`1,2023-03-15,C1,Neha Sharma,+91 9123456780,Female,34,North,Loyal,P1,Lipstick,Lakme,Beauty,"organic, sale ,",2,499.50,10,999.00,899.10,UPI,Completed,Standard,S1,Delhi,E1,Ravi` + "\n" +
	`2,not a date,C2,Arjun,+91 9876543210,Male,abc,South,New,P2,Shirt,Zara,Clothing,,x,1.5,0,1.5,oops,Cash,Returned,Express,S2,Chennai,E2,Anu` + "\n" +
	`3,2023-03-16,C3,Short,row` + "\n" +
	`4,03/17/2023,C4,Meera,+91 9000000000,Female,51,East,Returning,P3,Phone,Apple,Electronics,new,1,100,0,100,100,Card,Completed,Standard,S3,Kolkata,E3,Sam` + "\n"

func newTestReader(csv string) *Reader {
	return NewReader(strings.NewReader(csv), Options{Location: time.UTC})
}

func TestReader_ReadAll(t *testing.T) {
	r := newTestReader(sampleCSV)
	records, err := r.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "1", first.TransactionID)
	require.NotNil(t, first.Date)
	assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), *first.Date)
	assert.Equal(t, "Neha Sharma", first.CustomerName)
	assert.Equal(t, record.IntPtr(34), first.Age)
	assert.Equal(t, []string{"organic", "sale"}, first.Tags)
	assert.Equal(t, record.IntPtr(2), first.Quantity)
	assert.True(t, decimal.RequireFromString("899.10").Equal(first.FinalAmount))
	assert.Equal(t, "Ravi", first.EmployeeName)

	second := records[1]
	assert.Nil(t, second.Date, "unparseable date")
	assert.Nil(t, second.Age, "non-numeric age")
	assert.Nil(t, second.Quantity)
	assert.True(t, second.FinalAmount.IsZero(), "invalid money becomes zero")
	assert.NotNil(t, second.Tags)
	assert.Empty(t, second.Tags)

	assert.Equal(t, "4", records[2].TransactionID)
	require.NotNil(t, records[2].Date)
	assert.Equal(t, time.March, records[2].Date.Month())

	assert.Equal(t, Stats{Rows: 4, Loaded: 3, Skipped: 1}, r.Stats())
}

func TestReader_HeaderMapping(t *testing.T) {
	csv := "\ufeff  CUSTOMER   name ,Unknown Column,Gender\nAsha,whatever,Female\n"
	records, err := newTestReader(csv).ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Asha", records[0].CustomerName)
	assert.Equal(t, "Female", records[0].Gender)
}

func TestReader_BadHeader(t *testing.T) {
	_, err := newTestReader("").ReadAll(context.Background())
	assert.Error(t, err)

	_, err = newTestReader("foo,bar\n1,2\n").ReadAll(context.Background())
	assert.Error(t, err)
}

func TestReader_EmptyBody(t *testing.T) {
	records, err := newTestReader(header + "\n").ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReader_ForEachBatch(t *testing.T) {
	var b strings.Builder
	b.WriteString("Transaction ID,Quantity\n")
	for i := 0; i < 7; i++ {
		b.WriteString("t,1\n")
	}

	var sizes []int
	err := newTestReader(b.String()).ForEachBatch(context.Background(), 3, func(batch []record.Transaction) error {
		sizes = append(sizes, len(batch))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 1}, sizes)

	stop := errors.New("stop")
	err = newTestReader(b.String()).ForEachBatch(context.Background(), 2, func([]record.Transaction) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)
}

func TestReader_ForEachBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := newTestReader(sampleCSV).ForEachBatch(ctx, 10, func([]record.Transaction) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_NextEOF(t *testing.T) {
	r := newTestReader("Transaction ID\nonly\n")
	tx, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "only", tx.TransactionID)
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	records, err := FileLoader(path, Options{Location: time.UTC})(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = FileLoader(filepath.Join(t.TempDir(), "missing.csv"), Options{})(context.Background())
	assert.Error(t, err)
}
