// Package loader reads sales transactions from CSV exports. Column names
// are mapped onto record.Transaction here and nowhere else.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesdash/salesdash/salesdash/record"
)

// DefaultBatchSize is the number of records handed to a batch callback.
const DefaultBatchSize = 20000

// Options configures a Reader
type Options struct {
	// Location interprets dates without a zone. Nil means time.Local.
	Location *time.Location
	Logger   zerolog.Logger
}

// Stats counts what a Reader has consumed so far
type Stats struct {
	Rows    int `json:"rows"`
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// Reader decodes transactions from a CSV stream with a header row.
// Malformed rows are skipped and counted, never fatal.
type Reader struct {
	csv   *csv.Reader
	loc   *time.Location
	log   zerolog.Logger
	cols  []setter // by column index; nil for ignored columns
	width int
	stats Stats
}

// NewReader returns a Reader over r. The header is read on first use.
func NewReader(r io.Reader, opts Options) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = true

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Reader{csv: cr, loc: loc, log: opts.Logger}
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("missing header row")
		}
		return fmt.Errorf("read header: %w", err)
	}
	r.width = len(header)
	r.cols = make([]setter, len(header))
	known := 0
	for i, h := range header {
		if set, ok := columns[normalizeHeader(h)]; ok {
			r.cols[i] = set
			known++
		}
	}
	if known == 0 {
		return fmt.Errorf("header has no known columns")
	}
	return nil
}

// Next returns the next well-formed transaction, or io.EOF at the end.
func (r *Reader) Next() (record.Transaction, error) {
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			return record.Transaction{}, err
		}
	}
	for {
		row, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return record.Transaction{}, io.EOF
		}
		r.stats.Rows++

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			r.skip(parseErr.StartLine, parseErr)
			continue
		}
		if err != nil {
			return record.Transaction{}, fmt.Errorf("read row: %w", err)
		}
		if len(row) != r.width {
			line, _ := r.csv.FieldPos(0)
			r.skip(line, fmt.Errorf("expected %d fields, got %d", r.width, len(row)))
			continue
		}

		tx := record.Transaction{Tags: []string{}}
		for i, cell := range row {
			if set := r.cols[i]; set != nil {
				set(&tx, cell, r.loc)
			}
		}
		r.stats.Loaded++
		return tx, nil
	}
}

func (r *Reader) skip(line int, err error) {
	r.stats.Skipped++
	r.log.Warn().Int("line", line).Err(err).Msg("skipping malformed CSV row")
}

// ForEachBatch streams transactions to fn in slices of at most size.
// The slice passed to fn is reused between calls.
func (r *Reader) ForEachBatch(ctx context.Context, size int, fn func([]record.Transaction) error) error {
	if size <= 0 {
		size = DefaultBatchSize
	}
	batch := make([]record.Transaction, 0, size)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tx, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		batch = append(batch, tx)
		if len(batch) == size {
			if err := fn(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}

// ReadAll materializes every remaining transaction in file order.
func (r *Reader) ReadAll(ctx context.Context) ([]record.Transaction, error) {
	var out []record.Transaction
	err := r.ForEachBatch(ctx, DefaultBatchSize, func(batch []record.Transaction) error {
		out = append(out, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []record.Transaction{}
	}
	return out, nil
}

// Stats reports rows read, loaded and skipped so far.
func (r *Reader) Stats() Stats {
	return r.stats
}

// FileLoader returns a function that reads every transaction from the CSV
// file at path. It fits memstore.Loader.
func FileLoader(path string, opts Options) func(context.Context) ([]record.Transaction, error) {
	return func(ctx context.Context) ([]record.Transaction, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		r := NewReader(f, opts)
		records, err := r.ReadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		st := r.Stats()
		opts.Logger.Info().
			Str("path", path).
			Int("loaded", st.Loaded).
			Int("skipped", st.Skipped).
			Msg("CSV read")
		return records, nil
	}
}
