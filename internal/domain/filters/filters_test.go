package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	testCases := []struct {
		name   string
		raw    string
		page   int
		isLast bool
		ok     bool
	}{
		{"empty", "", 1, false, true},
		{"number", "3", 3, false, true},
		{"last", "last", 0, true, true},
		{"zero", "0", 0, false, false},
		{"negative", "-2", 0, false, false},
		{"garbage", "first", 0, false, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, isLast, ok := ParsePage(tc.raw)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.isLast, isLast)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestCalculateMetadata(t *testing.T) {
	first := CalculateMetadata(15, 1, 10)
	assert.True(t, first.IsPaginated)
	assert.True(t, first.PageIsFirst)
	assert.False(t, first.PageIsLast)
	assert.Equal(t, 2, first.LastPage)

	second := CalculateMetadata(15, 2, 10)
	assert.True(t, second.PageIsLast)
	assert.False(t, second.PageIsFirst)

	empty := CalculateMetadata(0, 1, 10)
	assert.False(t, empty.IsPaginated)
	assert.True(t, empty.PageIsFirst)
	assert.True(t, empty.PageIsLast)
}

func TestLimitOffset(t *testing.T) {
	f := Filters{Page: 3, PageSize: 10}
	assert.Equal(t, 10, f.Limit())
	assert.Equal(t, 20, f.Offset())
}

func TestOffsetDoesNotOverflow(t *testing.T) {
	page, _, ok := ParsePage("922337203685477582")
	assert.True(t, ok)
	f := Filters{Page: page, PageSize: 10}
	assert.Equal(t, math.MaxInt, f.Offset())

	f = Filters{Page: math.MaxInt, PageSize: 1}
	assert.Equal(t, math.MaxInt-1, f.Offset())

	f = Filters{Page: 0, PageSize: 10}
	assert.Zero(t, f.Offset())
}
