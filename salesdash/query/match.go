package query

import (
	"fmt"
	"strings"

	"github.com/salesdash/salesdash/salesdash/record"
)

// Match evaluates expr against a single record in process.
func Match(expr Expr, tx *record.Transaction) bool {
	switch e := expr.(type) {
	case And:
		return Match(e.Left, tx) && Match(e.Right, tx)
	case Or:
		return Match(e.Left, tx) || Match(e.Right, tx)
	case Pred:
		return matchPredicate(e.Predicate, tx)
	default:
		return false
	}
}

// Filter returns the records matching expr, preserving their order.
func Filter(expr Expr, records []record.Transaction) []record.Transaction {
	out := make([]record.Transaction, 0)
	for i := range records {
		if Match(expr, &records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func matchPredicate(pred Predicate, tx *record.Transaction) bool {
	switch p := pred.(type) {
	case MatchAll:
		return true

	case Contains:
		v, ok := textValue(tx, p.Field)
		return ok && strings.Contains(strings.ToLower(v), p.Needle)

	case In:
		v, ok := textValue(tx, p.Field)
		if !ok {
			return false
		}
		for _, want := range p.Values {
			if v == want {
				return true
			}
		}
		return false

	case TagsAny:
		return tx.HasTag(p.Values)

	case IntRange:
		v := intValue(tx, p.Field)
		if v == nil {
			return false
		}
		if p.Min != nil && *v < *p.Min {
			return false
		}
		if p.Max != nil && *v > *p.Max {
			return false
		}
		return true

	case DateRange:
		if p.Field != FieldDate || tx.Date == nil {
			return false
		}
		if p.Start != nil && tx.Date.Before(*p.Start) {
			return false
		}
		if p.End != nil && tx.Date.After(*p.End) {
			return false
		}
		return true

	default:
		return false
	}
}

func textValue(tx *record.Transaction, f Field) (string, bool) {
	switch f {
	case FieldCustomerName:
		return tx.CustomerName, true
	case FieldPhoneNumber:
		return tx.PhoneNumber, true
	case FieldCustomerRegion:
		return tx.CustomerRegion, true
	case FieldGender:
		return tx.Gender, true
	case FieldProductCategory:
		return tx.ProductCategory, true
	case FieldPaymentMethod:
		return tx.PaymentMethod, true
	default:
		return "", false
	}
}

func intValue(tx *record.Transaction, f Field) *int {
	if f == FieldAge {
		return tx.Age
	}
	return nil
}

func describePredicate(pred Predicate) string {
	switch p := pred.(type) {
	case MatchAll:
		return "ALL"
	case Contains:
		return fmt.Sprintf("%s CONTAINS %q", p.Field, p.Needle)
	case In:
		return fmt.Sprintf("%s IN %q", p.Field, p.Values)
	case TagsAny:
		return fmt.Sprintf("tags ANY %q", p.Values)
	case IntRange:
		return fmt.Sprintf("%s IN [%s, %s]", p.Field, fmtIntBound(p.Min), fmtIntBound(p.Max))
	case DateRange:
		lo, hi := "*", "*"
		if p.Start != nil {
			lo = p.Start.Format("2006-01-02T15:04:05.000Z07:00")
		}
		if p.End != nil {
			hi = p.End.Format("2006-01-02T15:04:05.000Z07:00")
		}
		return fmt.Sprintf("%s IN [%s, %s]", p.Field, lo, hi)
	default:
		return fmt.Sprintf("%T", pred)
	}
}

func fmtIntBound(v *int) string {
	if v == nil {
		return "*"
	}
	return fmt.Sprintf("%d", *v)
}
