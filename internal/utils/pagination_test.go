package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageInfo(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		want       PageInfo
	}{
		{"defaults", 0, 0, PageInfo{Page: 1, Size: 10}},
		{"negative", -3, -1, PageInfo{Page: 1, Size: 10}},
		{"capped", 2, 1000, PageInfo{Page: 2, Size: 100}},
		{"kept", 3, 25, PageInfo{Page: 3, Size: 25}},
		{"huge page clamped", math.MaxInt, 10, PageInfo{Page: MaxPage, Size: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewPageInfo(tc.page, tc.size))
		})
	}
}

func TestLimitOffset(t *testing.T) {
	p := NewPageInfo(3, 20)
	assert.Equal(t, 20, p.Limit())
	assert.Equal(t, 40, p.Offset())
}

func TestTotalPages(t *testing.T) {
	p := NewPageInfo(1, 10)
	assert.Equal(t, 1, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
	assert.Equal(t, 3, p.TotalPages(30))
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, PageSlice(items, NewPageInfo(1, 3)))
	assert.Equal(t, []int{4, 5, 6}, PageSlice(items, NewPageInfo(2, 3)))
	assert.Equal(t, []int{7}, PageSlice(items, NewPageInfo(3, 3)))
	assert.Empty(t, PageSlice(items, NewPageInfo(4, 3)))

	t.Run("huge page is past the end", func(t *testing.T) {
		p := NewPageInfo(math.MaxInt, MaxPageSize)
		assert.GreaterOrEqual(t, p.Offset(), 0)
		assert.NotPanics(t, func() {
			assert.Empty(t, PageSlice(items, p))
		})
		assert.Empty(t, PageSlice(items, PageInfo{Page: math.MaxInt, Size: 10}))
	})

	t.Run("consecutive pages equal one double page", func(t *testing.T) {
		first := PageSlice(items, NewPageInfo(1, 3))
		second := PageSlice(items, NewPageInfo(2, 3))
		double := PageSlice(items, NewPageInfo(1, 6))
		assert.Equal(t, double, append(append([]int{}, first...), second...))
	})
}
