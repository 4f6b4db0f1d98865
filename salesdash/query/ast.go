package query

import "time"

// Field names a filterable or searchable attribute of a transaction.
type Field string

const (
	FieldCustomerName    Field = "customerName"
	FieldPhoneNumber     Field = "phoneNumber"
	FieldCustomerRegion  Field = "customerRegion"
	FieldGender          Field = "gender"
	FieldProductCategory Field = "productCategory"
	FieldPaymentMethod   Field = "paymentMethod"
	FieldTags            Field = "tags"
	FieldAge             Field = "age"
	FieldDate            Field = "date"
)

// Expr represents a filter expression
type Expr interface {
	isExpr()
}

// And represents a boolean AND of two expressions
type And struct {
	Left  Expr
	Right Expr
}

func (And) isExpr() {}

// Or represents a boolean OR of two expressions
type Or struct {
	Left  Expr
	Right Expr
}

func (Or) isExpr() {}

// Pred wraps a predicate as an expression
type Pred struct {
	Predicate Predicate
}

func (Pred) isExpr() {}

// Predicate is a single filter dimension
type Predicate interface {
	isPredicate()
}

// MatchAll accepts every record
type MatchAll struct{}

func (MatchAll) isPredicate() {}

// Contains is a case-insensitive substring match. Needle is already lower-cased.
type Contains struct {
	Field  Field
	Needle string
}

func (Contains) isPredicate() {}

// In matches when the field value is one of Values
type In struct {
	Field  Field
	Values []string
}

func (In) isPredicate() {}

// TagsAny matches when the record shares at least one tag with Values
type TagsAny struct {
	Values []string
}

func (TagsAny) isPredicate() {}

// IntRange matches an integer field within [Min, Max]; nil bounds are open.
// Records without a value never match.
type IntRange struct {
	Field Field
	Min   *int
	Max   *int
}

func (IntRange) isPredicate() {}

// DateRange matches a date field within [Start, End]; nil bounds are open.
// Records without a value never match.
type DateRange struct {
	Field Field
	Start *time.Time
	End   *time.Time
}

func (DateRange) isPredicate() {}
