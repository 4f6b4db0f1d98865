package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Question(t *testing.T) {
	b := New(PlaceholderQuestion)
	assert.Equal(t, "?", b.Arg(1))
	assert.Equal(t, "?, ?", b.List([]string{"a", "b"}))
	assert.Equal(t, []any{1, "a", "b"}, b.Args())
	assert.Equal(t, 3, b.Len())
}

func TestBuilder_Dollar(t *testing.T) {
	b := New(PlaceholderDollar)
	assert.Equal(t, "$1", b.Arg("x"))
	assert.Equal(t, "$2, $3, $4", b.List([]string{"a", "b", "c"}))
	assert.Equal(t, "$5", b.Arg(10))
	assert.Equal(t, 5, b.Len())
}
