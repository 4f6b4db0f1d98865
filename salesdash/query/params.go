package query

import (
	"net/url"
	"strings"
)

// Parameter names accepted by Normalize.
const (
	ParamSearch          = "search"
	ParamCustomerRegion  = "customerRegion"
	ParamGender          = "gender"
	ParamAgeMin          = "ageMin"
	ParamAgeMax          = "ageMax"
	ParamProductCategory = "productCategory"
	ParamTags            = "tags"
	ParamPaymentMethod   = "paymentMethod"
	ParamDateStart       = "dateStart"
	ParamDateEnd         = "dateEnd"
	ParamSortBy          = "sortBy"
	ParamSortOrder       = "sortOrder"
	ParamPage            = "page"
	ParamPageSize        = "pageSize"
)

// Params is the raw, loosely typed parameter record. Every parameter may be
// absent, a single value, or a list of values.
type Params map[string][]string

// ParamsFromValues converts URL query values. Keys of the form "name[]" are
// merged into "name", which is how browser clients encode arrays.
func ParamsFromValues(v url.Values) Params {
	p := make(Params, len(v))
	for k, vals := range v {
		k = strings.TrimSuffix(k, "[]")
		p[k] = append(p[k], vals...)
	}
	return p
}

// Set replaces the values for key and returns p for chaining.
func (p Params) Set(key string, values ...string) Params {
	p[key] = values
	return p
}

// Add appends values for key.
func (p Params) Add(key string, values ...string) {
	p[key] = append(p[key], values...)
}

// First returns the first value for key, or "" when absent.
func (p Params) First(key string) string {
	if vs := p[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// List returns the non-empty values for key.
func (p Params) List(key string) []string {
	vs := p[key]
	if len(vs) == 0 {
		return nil
	}
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
