package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/salesdash/salesdash/salesdash/record"
)

const (
	DefaultPage        = 1
	DefaultPageSize    = 10
	DefaultMaxPageSize = 1000
)

// NormalizeOptions configures parameter normalization.
type NormalizeOptions struct {
	// Location is used to interpret calendar dates. Nil means time.Local.
	Location *time.Location
	// MaxPageSize caps pageSize; zero disables the cap.
	MaxPageSize int
}

// DefaultNormalizeOptions returns the standard options.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{
		Location:    time.Local,
		MaxPageSize: DefaultMaxPageSize,
	}
}

// Normalize converts raw parameters into Criteria. It never fails: every
// malformed value degrades to "no constraint" or to a default.
func Normalize(p Params, opts NormalizeOptions) Criteria {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	c := Criteria{
		Search:         strings.TrimSpace(p.First(ParamSearch)),
		Regions:        p.List(ParamCustomerRegion),
		Genders:        p.List(ParamGender),
		Categories:     p.List(ParamProductCategory),
		Tags:           p.List(ParamTags),
		PaymentMethods: p.List(ParamPaymentMethod),
		AgeMin:         parseIntParam(p.First(ParamAgeMin)),
		AgeMax:         parseIntParam(p.First(ParamAgeMax)),
		Sort:           ParseSortKey(p.First(ParamSortBy)),
		Order:          ParseSortOrder(p.First(ParamSortOrder)),
		Page:           DefaultPage,
		PageSize:       DefaultPageSize,
	}

	if start, err := record.ParseDate(p.First(ParamDateStart), loc); err == nil {
		c.DateStart = &start
	}
	if end, err := record.ParseDate(p.First(ParamDateEnd), loc); err == nil {
		end = record.EndOfDay(end)
		c.DateEnd = &end
	}

	if n := parseIntParam(p.First(ParamPage)); n != nil {
		c.Page = *n
	}
	if n := parseIntParam(p.First(ParamPageSize)); n != nil && *n >= 1 {
		c.PageSize = *n
	}
	if opts.MaxPageSize > 0 && c.PageSize > opts.MaxPageSize {
		c.PageSize = opts.MaxPageSize
	}
	return c
}

func parseIntParam(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
