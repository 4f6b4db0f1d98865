package planner

import (
	"fmt"

	"github.com/salesdash/salesdash/salesdash/query"
	"github.com/salesdash/salesdash/salesdash/storage"
)

// CompileOutput is the result of compiling a filter expression
type CompileOutput struct {
	CTEs         []CTE
	ResultCTE    string
	ExplainSteps []string
}

// CTE represents a Common Table Expression
type CTE struct {
	Name string
	SQL  string
}

// Compiler compiles filter expressions to CTEs. Every CTE yields a single
// sale_id column.
type Compiler struct {
	dialect      storage.Dialect
	builder      storage.Builder
	ctes         []CTE
	explainSteps []string
	cteCounter   int
}

// Compile compiles a filter expression into CTEs
func Compile(dialect storage.Dialect, builder storage.Builder, expr query.Expr) (*CompileOutput, error) {
	c := &Compiler{
		dialect: dialect,
		builder: builder,
	}

	resultCTE, err := c.compileExpr(expr)
	if err != nil {
		return nil, err
	}

	return &CompileOutput{
		CTEs:         c.ctes,
		ResultCTE:    resultCTE,
		ExplainSteps: c.explainSteps,
	}, nil
}

func (c *Compiler) nextCTEName() string {
	name := fmt.Sprintf("cte_%d", c.cteCounter)
	c.cteCounter++
	return name
}

func (c *Compiler) emit(sql, step string) string {
	name := c.nextCTEName()
	c.ctes = append(c.ctes, CTE{Name: name, SQL: sql})
	c.explainSteps = append(c.explainSteps, fmt.Sprintf("%s: %s", name, step))
	return name
}

func (c *Compiler) compileExpr(expr query.Expr) (string, error) {
	switch e := expr.(type) {
	case query.And:
		leftName, err := c.compileExpr(e.Left)
		if err != nil {
			return "", err
		}
		rightName, err := c.compileExpr(e.Right)
		if err != nil {
			return "", err
		}
		sql := fmt.Sprintf("SELECT sale_id FROM %s INTERSECT SELECT sale_id FROM %s", leftName, rightName)
		return c.emit(sql, fmt.Sprintf("INTERSECT %s AND %s", leftName, rightName)), nil

	case query.Or:
		leftName, err := c.compileExpr(e.Left)
		if err != nil {
			return "", err
		}
		rightName, err := c.compileExpr(e.Right)
		if err != nil {
			return "", err
		}
		sql := fmt.Sprintf("SELECT sale_id FROM %s UNION SELECT sale_id FROM %s", leftName, rightName)
		return c.emit(sql, fmt.Sprintf("UNION %s OR %s", leftName, rightName)), nil

	case query.Pred:
		return c.compilePredicate(e.Predicate)

	default:
		return "", fmt.Errorf("unknown expression type: %T", expr)
	}
}

func (c *Compiler) compilePredicate(pred query.Predicate) (string, error) {
	switch p := pred.(type) {
	case query.MatchAll:
		return c.emit("SELECT id AS sale_id FROM sales", "ALL"), nil

	case query.Contains:
		col, err := searchColumn(p.Field)
		if err != nil {
			return "", err
		}
		ph := c.builder.Arg(p.Needle)
		sql := fmt.Sprintf("SELECT id AS sale_id FROM sales WHERE %s", c.dialect.Contains(col, ph))
		return c.emit(sql, fmt.Sprintf("CONTAINS %s %q", p.Field, p.Needle)), nil

	case query.In:
		col, err := valueColumn(p.Field)
		if err != nil {
			return "", err
		}
		if len(p.Values) == 0 {
			return "", fmt.Errorf("empty value set for %s", p.Field)
		}
		sql := fmt.Sprintf("SELECT id AS sale_id FROM sales WHERE %s IN (%s)", col, c.builder.List(p.Values))
		return c.emit(sql, fmt.Sprintf("IN %s %q", p.Field, p.Values)), nil

	case query.TagsAny:
		if len(p.Values) == 0 {
			return "", fmt.Errorf("empty tag set")
		}
		sql := fmt.Sprintf("SELECT DISTINCT sale_id FROM sale_tags WHERE tag IN (%s)", c.builder.List(p.Values))
		return c.emit(sql, fmt.Sprintf("TAGS ANY %q", p.Values)), nil

	case query.IntRange:
		col, err := intColumn(p.Field)
		if err != nil {
			return "", err
		}
		where := col + " IS NOT NULL"
		if p.Min != nil {
			where += fmt.Sprintf(" AND %s >= %s", col, c.builder.Arg(int64(*p.Min)))
		}
		if p.Max != nil {
			where += fmt.Sprintf(" AND %s <= %s", col, c.builder.Arg(int64(*p.Max)))
		}
		sql := "SELECT id AS sale_id FROM sales WHERE " + where
		return c.emit(sql, fmt.Sprintf("RANGE %s [%s, %s]", p.Field, intBound(p.Min), intBound(p.Max))), nil

	case query.DateRange:
		if p.Field != query.FieldDate {
			return "", fmt.Errorf("unknown date field: %s", p.Field)
		}
		where := "date_ms IS NOT NULL"
		var lo, hi int64
		hasLo, hasHi := p.Start != nil, p.End != nil
		if hasLo {
			lo = p.Start.UnixMilli()
			where += " AND date_ms >= " + c.builder.Arg(lo)
		}
		if hasHi {
			hi = p.End.UnixMilli()
			where += " AND date_ms <= " + c.builder.Arg(hi)
		}
		sql := "SELECT id AS sale_id FROM sales WHERE " + where
		return c.emit(sql, fmt.Sprintf("DATE [%s, %s]", msBound(lo, hasLo), msBound(hi, hasHi))), nil

	default:
		return "", fmt.Errorf("unknown predicate type: %T", pred)
	}
}
