package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Defaults(t *testing.T) {
	p := Parse("", "")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestParse_Explicit(t *testing.T) {
	p := Parse("3", "10")

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 20, p.Offset())
}

func TestParse_MalformedInputFallsBack(t *testing.T) {
	p := Parse("abc", "-5")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestParse_LimitClamped(t *testing.T) {
	p := Parse("1", "5000")

	assert.Equal(t, MaxLimit, p.Limit)
}

func TestHasMore(t *testing.T) {
	p := Params{Page: 1, Limit: 20}

	assert.True(t, p.HasMore(20))
	assert.False(t, p.HasMore(19))
	assert.False(t, p.HasMore(0))
}
