package cliopt

import (
	"github.com/spf13/pflag"

	"github.com/salesdash/salesdash/salesdash/query"
)

// QueryFlags mirror the HTTP query parameters of GET /api/sales.
type QueryFlags struct {
	Search         string
	Regions        []string
	Genders        []string
	Categories     []string
	Tags           []string
	PaymentMethods []string
	AgeMin         string
	AgeMax         string
	DateStart      string
	DateEnd        string
	SortBy         string
	SortOrder      string
	Page           string
	PageSize       string
}

// BindQueryFlags registers the filter flags, plus sort and paging flags
// when paging is true.
func BindQueryFlags(fs *pflag.FlagSet, q *QueryFlags, paging bool) {
	fs.StringVarP(&q.Search, "search", "s", "", "substring of customer name or phone number")
	fs.StringSliceVar(&q.Regions, "region", nil, "customer region (repeatable or comma-separated)")
	fs.StringSliceVar(&q.Genders, "gender", nil, "gender (repeatable or comma-separated)")
	fs.StringSliceVar(&q.Categories, "category", nil, "product category (repeatable or comma-separated)")
	fs.StringArrayVar(&q.Tags, "tag", nil, "tag (repeatable)")
	fs.StringSliceVar(&q.PaymentMethods, "payment", nil, "payment method (repeatable or comma-separated)")
	fs.StringVar(&q.AgeMin, "age-min", "", "minimum age, inclusive")
	fs.StringVar(&q.AgeMax, "age-max", "", "maximum age, inclusive")
	fs.StringVar(&q.DateStart, "from", "", "first calendar day, YYYY-MM-DD")
	fs.StringVar(&q.DateEnd, "to", "", "last calendar day, YYYY-MM-DD (whole day included)")
	if !paging {
		return
	}
	fs.StringVar(&q.SortBy, "sort", "", "sort key: date|quantity|customerName")
	fs.StringVar(&q.SortOrder, "order", "", "sort order: asc|desc")
	fs.StringVarP(&q.Page, "page", "p", "", "page number (default 1)")
	fs.StringVarP(&q.PageSize, "page-size", "n", "", "page size (default 10)")
}

// Params converts the flags into engine parameters. Unset flags are omitted.
func (q QueryFlags) Params() query.Params {
	p := query.Params{}
	scalar := func(name, v string) {
		if v != "" {
			p.Set(name, v)
		}
	}
	list := func(name string, vs []string) {
		if len(vs) > 0 {
			p.Set(name, vs...)
		}
	}

	scalar(query.ParamSearch, q.Search)
	list(query.ParamCustomerRegion, q.Regions)
	list(query.ParamGender, q.Genders)
	list(query.ParamProductCategory, q.Categories)
	list(query.ParamTags, q.Tags)
	list(query.ParamPaymentMethod, q.PaymentMethods)
	scalar(query.ParamAgeMin, q.AgeMin)
	scalar(query.ParamAgeMax, q.AgeMax)
	scalar(query.ParamDateStart, q.DateStart)
	scalar(query.ParamDateEnd, q.DateEnd)
	scalar(query.ParamSortBy, q.SortBy)
	scalar(query.ParamSortOrder, q.SortOrder)
	scalar(query.ParamPage, q.Page)
	scalar(query.ParamPageSize, q.PageSize)
	return p
}
