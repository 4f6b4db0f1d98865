package query

import (
	"sort"

	"github.com/salesdash/salesdash/salesdash/record"
)

// valueSet collects distinct non-empty values.
type valueSet map[string]struct{}

func (s valueSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

// SortedValues returns the distinct non-empty values of vs in ascending order.
func SortedValues(vs []string) []string {
	set := valueSet{}
	for _, v := range vs {
		set.add(v)
	}
	return set.sorted()
}

func (s valueSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DistinctOptions scans the full collection and returns the sorted distinct
// values of every filterable dimension.
func DistinctOptions(records []record.Transaction) FilterOptions {
	regions, genders, categories, payments, tags := valueSet{}, valueSet{}, valueSet{}, valueSet{}, valueSet{}
	for i := range records {
		tx := &records[i]
		regions.add(tx.CustomerRegion)
		genders.add(tx.Gender)
		categories.add(tx.ProductCategory)
		payments.add(tx.PaymentMethod)
		for _, t := range tx.Tags {
			tags.add(t)
		}
	}
	return FilterOptions{
		CustomerRegions:   regions.sorted(),
		Genders:           genders.sorted(),
		ProductCategories: categories.sorted(),
		PaymentMethods:    payments.sorted(),
		Tags:              tags.sorted(),
	}
}
