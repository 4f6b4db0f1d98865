package query

import "strings"

// Compose builds the inclusion predicate for c: the AND of every active
// dimension. With no active dimension the result is MatchAll.
func Compose(c Criteria) Expr {
	var preds []Expr

	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		preds = append(preds, Or{
			Left:  Pred{Contains{Field: FieldCustomerName, Needle: needle}},
			Right: Pred{Contains{Field: FieldPhoneNumber, Needle: needle}},
		})
	}
	if len(c.Regions) > 0 {
		preds = append(preds, Pred{In{Field: FieldCustomerRegion, Values: c.Regions}})
	}
	if len(c.Genders) > 0 {
		preds = append(preds, Pred{In{Field: FieldGender, Values: c.Genders}})
	}
	if c.AgeMin != nil || c.AgeMax != nil {
		preds = append(preds, Pred{IntRange{Field: FieldAge, Min: c.AgeMin, Max: c.AgeMax}})
	}
	if len(c.Categories) > 0 {
		preds = append(preds, Pred{In{Field: FieldProductCategory, Values: c.Categories}})
	}
	if len(c.Tags) > 0 {
		preds = append(preds, Pred{TagsAny{Values: c.Tags}})
	}
	if len(c.PaymentMethods) > 0 {
		preds = append(preds, Pred{In{Field: FieldPaymentMethod, Values: c.PaymentMethods}})
	}
	if c.DateStart != nil || c.DateEnd != nil {
		preds = append(preds, Pred{DateRange{Field: FieldDate, Start: c.DateStart, End: c.DateEnd}})
	}

	if len(preds) == 0 {
		return Pred{MatchAll{}}
	}
	expr := preds[0]
	for _, p := range preds[1:] {
		expr = And{Left: expr, Right: p}
	}
	return expr
}

// Describe renders expr in a compact human-readable form for explain output.
func Describe(expr Expr) string {
	var b strings.Builder
	describe(&b, expr)
	return b.String()
}

func describe(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case And:
		b.WriteString("(")
		describe(b, e.Left)
		b.WriteString(" AND ")
		describe(b, e.Right)
		b.WriteString(")")
	case Or:
		b.WriteString("(")
		describe(b, e.Left)
		b.WriteString(" OR ")
		describe(b, e.Right)
		b.WriteString(")")
	case Pred:
		b.WriteString(describePredicate(e.Predicate))
	}
}
