package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func incomeGrid(t *testing.T) RateGrid {
	t.Helper()
	g := RateGrid{
		{Floor: d(0), Rate: d(0)},
		{Floor: d(10000), Rate: d(0.11)},
		{Floor: d(25000), Rate: d(0.30)},
		{Floor: d(75000), Rate: d(0.41)},
	}
	require.NoError(t, g.Initialize())
	return g
}

func TestRateGridInitialize(t *testing.T) {
	g := incomeGrid(t)
	assert.True(t, g[0].CumulativeDiscount.IsZero())
	assert.True(t, g[1].CumulativeDiscount.Equal(d(1100)), "got %s", g[1].CumulativeDiscount)
	assert.True(t, g[2].CumulativeDiscount.Equal(d(5850)), "got %s", g[2].CumulativeDiscount)
	assert.True(t, g[3].CumulativeDiscount.Equal(d(14100)), "got %s", g[3].CumulativeDiscount)
}

func TestRateGridInitializeRejectsUnsorted(t *testing.T) {
	g := RateGrid{{Floor: d(100), Rate: d(0.1)}, {Floor: d(50), Rate: d(0.2)}}
	assert.ErrorIs(t, g.Initialize(), ErrUnsortedGrid)
}

func TestRateGridSliceBoundaries(t *testing.T) {
	g := incomeGrid(t)
	tests := []struct {
		name     string
		x        float64
		wantRate float64
	}{
		{"first floor", 0, 0},
		{"just below second floor", 9999.99, 0},
		{"at second floor", 10000, 0.11},
		{"just below third floor", 24999.99, 0.11},
		{"at third floor", 25000, 0.30},
		{"at last floor", 75000, 0.41},
		{"far above", 1e7, 0.41},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := g.Slice(d(tt.x))
			require.NoError(t, err)
			assert.True(t, s.Rate.Equal(d(tt.wantRate)), "got %s", s.Rate)
		})
	}
}

func TestRateGridBelowFirstFloor(t *testing.T) {
	g := incomeGrid(t)
	_, err := g.Tax(d(-1))
	assert.ErrorIs(t, err, ErrGridSliceNotFound)

	_, err = RateGrid{}.Slice(d(10))
	assert.ErrorIs(t, err, ErrGridSliceNotFound)
}

func TestRateGridTax(t *testing.T) {
	g := incomeGrid(t)
	tax, err := g.Tax(d(30000))
	require.NoError(t, err)
	// 15000*0.11 + 5000*0.30
	assert.True(t, tax.Equal(d(3150)), "got %s", tax)
}

func TestRateGridTaxIsContinuousAtBoundaries(t *testing.T) {
	g := incomeGrid(t)
	eps := d(0.0001)
	for _, s := range g[1:] {
		below, err := g.Tax(s.Floor.Sub(eps))
		require.NoError(t, err)
		at, err := g.Tax(s.Floor)
		require.NoError(t, err)
		assert.True(t, at.Sub(below).Abs().LessThan(d(0.001)),
			"jump at %s: %s -> %s", s.Floor, below, at)
	}
}

func TestLookupFloor(t *testing.T) {
	entries := []ReferenceDurationEntry{
		{BirthYear: 1958, RequiredQuarters: 167},
		{BirthYear: 1961, RequiredQuarters: 168},
		{BirthYear: 1964, RequiredQuarters: 169},
	}
	key := func(e ReferenceDurationEntry) int { return e.BirthYear }

	_, ok := LookupFloor(entries, key, 1957)
	assert.False(t, ok)

	e, ok := LookupFloor(entries, key, 1963)
	require.True(t, ok)
	assert.Equal(t, 168, e.RequiredQuarters)

	e, ok = LookupFloor(entries, key, 1964)
	require.True(t, ok)
	assert.Equal(t, 169, e.RequiredQuarters)

	e, ok = LookupFloor(entries, key, 2000)
	require.True(t, ok)
	assert.Equal(t, 169, e.RequiredQuarters)
}

func TestZeroOrPositive(t *testing.T) {
	assert.True(t, ZeroOrPositive(d(-5)).IsZero())
	assert.True(t, ZeroOrPositive(d(5)).Equal(d(5)))
}
