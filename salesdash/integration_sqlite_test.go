package salesdash_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/salesdash/salesdash/salesdash"
	"github.com/salesdash/salesdash/salesdash/memstore"
	"github.com/salesdash/salesdash/salesdash/query"
	"github.com/salesdash/salesdash/salesdash/record"
	"github.com/salesdash/salesdash/salesdash/storage/sqlite"
)

func dataset() []record.Transaction {
	names := []string{"Neha Sharma", "arjun", "ARJUN", "Meera", "", "Zoë Das", "bob", "Bob"}
	genders := []string{"Female", "Male", "Other"}
	regions := []string{"North", "South", "East", "West", ""}
	categories := []string{"Beauty", "Clothing", "Electronics", "Home"}
	payments := []string{"UPI", "Cash", "Credit Card"}
	tagSets := []string{"sale, clearance", "new", "", "organic,sale", " gift ,new,"}

	out := make([]record.Transaction, 0, 40)
	for i := 0; i < 40; i++ {
		tx := record.Transaction{
			TransactionID:   fmt.Sprintf("T%02d", i),
			CustomerID:      fmt.Sprintf("C%02d", i%9),
			CustomerName:    names[i%len(names)],
			PhoneNumber:     fmt.Sprintf("+91 98%08d", i*7919),
			Gender:          genders[i%len(genders)],
			CustomerRegion:  regions[i%len(regions)],
			ProductCategory: categories[i%len(categories)],
			PaymentMethod:   payments[i%len(payments)],
			Tags:            record.SplitTags(tagSets[i%len(tagSets)]),
			PricePerUnit:    decimal.NewFromInt(int64(10 + i)),
			TotalAmount:     decimal.NewFromInt(int64(i * 37 % 500)),
			FinalAmount:     decimal.NewFromInt(int64(i*37%500)).Div(decimal.NewFromInt(4)),
			OrderStatus:     "Completed",
			StoreLocation:   "Delhi",
		}
		if i%6 != 0 {
			tx.Age = record.IntPtr(18 + (i*13)%50)
		}
		if i%7 != 0 {
			tx.Date = record.TimePtr(time.Date(2023, time.Month(1+i%12), 1+(i*5)%28, (i*3)%24, 0, 0, 0, time.UTC))
		}
		if i%5 != 0 {
			tx.Quantity = record.IntPtr(i % 4)
		}
		out = append(out, tx)
	}
	return out
}

func newStore(t *testing.T) (*salesdash.Store, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	opts := salesdash.DefaultStoreOptions()
	opts.Location = time.UTC

	st, err := salesdash.Create(context.Background(), sqlite.New(dbPath), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, dbPath
}

func engineOptions() salesdash.EngineOptions {
	opts := salesdash.DefaultEngineOptions()
	opts.Location = time.UTC
	return opts
}

func paramGrid() []query.Params {
	return []query.Params{
		{},
		query.Params{}.Set(query.ParamGender, "Female"),
		query.Params{}.Set(query.ParamCustomerRegion, "North", "East"),
		query.Params{}.Set(query.ParamSearch, "ARJ"),
		query.Params{}.Set(query.ParamSearch, "98"),
		query.Params{}.Set(query.ParamSearch, "zoë"),
		query.Params{}.Set(query.ParamTags, "sale"),
		query.Params{}.Set(query.ParamTags, "gift", "clearance"),
		query.Params{}.Set(query.ParamAgeMin, "30").Set(query.ParamAgeMax, "40"),
		query.Params{}.Set(query.ParamAgeMax, "25"),
		query.Params{}.Set(query.ParamDateStart, "2023-03-01").Set(query.ParamDateEnd, "2023-06-30"),
		query.Params{}.Set(query.ParamDateStart, "2023-11-01"),
		query.Params{}.Set(query.ParamProductCategory, "Beauty").Set(query.ParamPaymentMethod, "UPI", "Cash"),
		query.Params{}.Set(query.ParamSortBy, "date"),
		query.Params{}.Set(query.ParamSortBy, "date").Set(query.ParamSortOrder, "desc").Set(query.ParamPageSize, "40"),
		query.Params{}.Set(query.ParamSortBy, "quantity").Set(query.ParamSortOrder, "desc").Set(query.ParamPage, "2"),
		query.Params{}.Set(query.ParamSortBy, "quantity").Set(query.ParamPageSize, "7").Set(query.ParamPage, "3"),
		query.Params{}.Set(query.ParamSortBy, "customerName").Set(query.ParamPageSize, "40"),
		query.Params{}.Set(query.ParamSortBy, "customerName").Set(query.ParamSortOrder, "desc").Set(query.ParamPageSize, "15"),
		query.Params{}.Set(query.ParamPage, "0"),
		query.Params{}.Set(query.ParamPage, "99"),
		query.Params{}.
			Set(query.ParamSearch, "a").
			Set(query.ParamGender, "Male", "Female").
			Set(query.ParamTags, "new").
			Set(query.ParamAgeMin, "20").
			Set(query.ParamSortBy, "date").
			Set(query.ParamSortOrder, "desc"),
		query.Params{}.Set(query.ParamGender, "Nobody"),
	}
}

func TestMemoryAndSQLiteAgree(t *testing.T) {
	st, _ := newStore(t)
	assertAgreesWithMemory(t, st)
}

// assertAgreesWithMemory loads dataset() into st and checks that every query
// in paramGrid() answers exactly as the memory store does.
func assertAgreesWithMemory(t *testing.T, st *salesdash.Store) {
	t.Helper()
	ctx := context.Background()
	records := dataset()

	n, err := st.InsertBatch(ctx, records[:25])
	require.NoError(t, err)
	assert.Equal(t, 25, n)
	_, err = st.InsertBatch(ctx, records[25:])
	require.NoError(t, err)

	mem := salesdash.NewEngine(memstore.FromRecords(records), engineOptions())
	db := salesdash.NewEngine(st, engineOptions())

	for i, p := range paramGrid() {
		t.Run(fmt.Sprintf("params_%02d", i), func(t *testing.T) {
			want, err := mem.Query(ctx, p)
			require.NoError(t, err)
			got, err := db.Query(ctx, p)
			require.NoError(t, err)
			assertSameJSON(t, want, got)

			wantSum, err := mem.Summary(ctx, p)
			require.NoError(t, err)
			gotSum, err := db.Summary(ctx, p)
			require.NoError(t, err)
			assertSameJSON(t, wantSum, gotSum)
		})
	}

	wantOpts, err := mem.FilterOptions(ctx)
	require.NoError(t, err)
	gotOpts, err := db.FilterOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantOpts, gotOpts)
	assert.Equal(t, []string{"clearance", "gift", "new", "organic", "sale"}, gotOpts.Tags)
}

func assertSameJSON(t *testing.T, want, got any) {
	t.Helper()
	wb, err := json.Marshal(want)
	require.NoError(t, err)
	gb, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(wb), string(gb))
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	st, dbPath := newStore(t)

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = st.InsertBatch(ctx, dataset())
	require.NoError(t, err)
	n, err = st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, n)
	require.NoError(t, st.Close())

	opts := salesdash.DefaultStoreOptions()
	opts.Location = time.UTC
	reopened, err := salesdash.Open(ctx, sqlite.New(dbPath), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	n, err = reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, n)

	require.NoError(t, reopened.Clear(ctx))
	n, err = reopened.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	opts2, err := reopened.FilterOptions(ctx)
	require.NoError(t, err)
	assert.Empty(t, opts2.Tags)

	require.NoError(t, reopened.Optimize(ctx))
}

func TestStore_OpenRejectsForeignDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "other.db")
	raw, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = raw.Exec("CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT); INSERT INTO meta VALUES ('salesdash_magic', 'nope')")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	_, err = salesdash.Open(context.Background(), sqlite.New(dbPath), salesdash.DefaultStoreOptions())
	require.Error(t, err)
	assert.True(t, salesdash.IsKind(err, salesdash.ErrSchema))
}

func TestStore_Explain(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)
	_, err := st.InsertBatch(ctx, dataset())
	require.NoError(t, err)

	c := salesdash.NewEngine(st, engineOptions()).Normalize(query.Params{}.Set(query.ParamGender, "Male").Set(query.ParamSortBy, "date"))
	res, err := st.Explain(ctx, c)
	require.NoError(t, err)
	assert.Contains(t, res.ExplainSQL, "ORDER BY s.date_ms ASC NULLS FIRST, s.id ASC")
	assert.NotEmpty(t, res.ExplainSteps)
	assert.NotZero(t, res.Page.Pagination.Total)
}

func TestEngine_LoadErrorIsNotAnEmptyPage(t *testing.T) {
	failing := memstore.New(func(context.Context) ([]record.Transaction, error) {
		return nil, fmt.Errorf("csv missing")
	}, memstore.Options{})
	e := salesdash.NewEngine(failing, engineOptions())

	_, err := e.Query(context.Background(), query.Params{})
	require.Error(t, err)
	assert.True(t, salesdash.IsKind(err, salesdash.ErrLoad))
}
