package sqlbuilder

import "strconv"

type PlaceholderStyle int

const (
	PlaceholderQuestion PlaceholderStyle = iota
	PlaceholderDollar
)

// Builder allocates placeholders and collects their arguments in order.
type Builder struct {
	Style PlaceholderStyle
	args  []any
}

func New(style PlaceholderStyle) *Builder {
	return &Builder{Style: style, args: make([]any, 0)}
}

func (b *Builder) Arg(v any) string {
	b.args = append(b.args, v)
	switch b.Style {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(len(b.args))
	default:
		return "?"
	}
}

// List allocates one placeholder per value and returns them comma-joined,
// ready for an IN (...) list.
func (b *Builder) List(values []string) string {
	out := make([]byte, 0, len(values)*4)
	for i, v := range values {
		if i > 0 {
			out = append(out, ", "...)
		}
		out = append(out, b.Arg(v)...)
	}
	return string(out)
}

func (b *Builder) Args() []any { return b.args }
func (b *Builder) Len() int    { return len(b.args) }
