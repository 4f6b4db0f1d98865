package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdash/salesdash/internal/api/middleware"
	"github.com/salesdash/salesdash/salesdash"
	"github.com/salesdash/salesdash/salesdash/memstore"
	"github.com/salesdash/salesdash/salesdash/query"
	"github.com/salesdash/salesdash/salesdash/record"
)

func testEngine() *salesdash.Engine {
	records := []record.Transaction{
		{TransactionID: "1", CustomerName: "Neha", PhoneNumber: "+91 9876543210", Gender: "Female", CustomerRegion: "North",
			Tags: record.SplitTags("sale"), Quantity: record.IntPtr(2), FinalAmount: decimal.RequireFromString("10.50")},
		{TransactionID: "2", CustomerName: "Arjun", PhoneNumber: "+91 9000000000", Gender: "Male", CustomerRegion: "South",
			Tags: record.SplitTags("new"), Quantity: record.IntPtr(1), FinalAmount: decimal.RequireFromString("4.50")},
		{TransactionID: "3", CustomerName: "Meera", PhoneNumber: "+91 9111111111", Gender: "Female", CustomerRegion: "East",
			Tags: record.SplitTags(""), FinalAmount: decimal.RequireFromString("1")},
	}
	opts := salesdash.DefaultEngineOptions()
	opts.Location = time.UTC
	return salesdash.NewEngine(memstore.FromRecords(records), opts)
}

func newTestRouter(engine *salesdash.Engine) http.Handler {
	return NewRouter(RouterConfig{
		Engine:  engine,
		Backend: "memory",
		Ready:   func() bool { return true },
		Logger:  zerolog.Nop(),
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListSales(t *testing.T) {
	h := newTestRouter(testEngine())

	rec := get(t, h, "/api/sales?gender[]=Female&pageSize=1&sortBy=customerName")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	var page struct {
		Data       []map[string]any `json:"data"`
		Pagination query.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, query.Pagination{Total: 2, Page: 1, PageSize: 1, TotalPages: 2}, page.Pagination)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Meera", page.Data[0]["customerName"])
	assert.Equal(t, []any{}, page.Data[0]["tags"])
	assert.Equal(t, 1.0, page.Data[0]["finalAmount"])
}

func TestListSales_SearchPhone(t *testing.T) {
	rec := get(t, newTestRouter(testEngine()), "/api/sales?search=9876")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transactionId":"1"`)
	assert.NotContains(t, rec.Body.String(), `"transactionId":"2"`)
}

func TestFilterOptions(t *testing.T) {
	rec := get(t, newTestRouter(testEngine()), "/api/sales/filters")
	require.Equal(t, http.StatusOK, rec.Code)

	var opts query.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"East", "North", "South"}, opts.CustomerRegions)
	assert.Equal(t, []string{"new", "sale"}, opts.Tags)
}

func TestSummary(t *testing.T) {
	rec := get(t, newTestRouter(testEngine()), "/api/sales/summary?gender=Female")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalRevenue":11.5,"totalOrders":2,"avgOrderValue":5.75,"totalQuantity":2}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestRouter(testEngine()), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["ready"])
	assert.Equal(t, "memory", body["backend"])
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/sales", nil)
	rec := httptest.NewRecorder()
	newTestRouter(testEngine()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/sales", nil)
	rec := httptest.NewRecorder()
	newTestRouter(testEngine()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter(testEngine()).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestLoadFailureIs500(t *testing.T) {
	failing := memstore.New(func(context.Context) ([]record.Transaction, error) {
		return nil, errors.New("open data/sales.csv: no such file")
	}, memstore.Options{})
	h := newTestRouter(salesdash.NewEngine(failing, salesdash.DefaultEngineOptions()))

	for _, target := range []string{"/api/sales", "/api/sales/filters", "/api/sales/summary"} {
		rec := get(t, h, target)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, target)

		var body middleware.ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Internal server error", body.Error)
		assert.Contains(t, body.Message, "no such file")
	}
}

func TestRecovery(t *testing.T) {
	h := middleware.Recovery(zerolog.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := get(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServerRunShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(0, newTestRouter(testEngine()), zerolog.Nop())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
