package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateMiddlePage(t *testing.T) {
	p := Paginate(seq(25), 2, 10)
	assert.Equal(t, seq(20)[10:], p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 25, p.TotalItems)
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrev())
}

func TestPaginateLastPageIsShort(t *testing.T) {
	p := Paginate(seq(25), 3, 10)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, p.Items)
	assert.False(t, p.HasNext())
}

func TestPaginateClampsPageNumber(t *testing.T) {
	assert.Equal(t, 3, Paginate(seq(25), 9, 10).Number)
	assert.Equal(t, 1, Paginate(seq(25), -2, 10).Number)
	assert.Equal(t, DefaultPerPage, Paginate(seq(25), 1, 0).PerPage)
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]string{}, 1, 10)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.Number)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrev())
}
