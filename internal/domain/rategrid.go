package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RateSlice is one bracket of a progressive grid. CumulativeDiscount is
// derived by RateGrid.Initialize so that tax(x) = x*Rate - CumulativeDiscount
// for any x inside the slice.
type RateSlice struct {
	Floor              decimal.Decimal `yaml:"floor" json:"floor"`
	Rate               decimal.Decimal `yaml:"rate" json:"rate"`
	CumulativeDiscount decimal.Decimal `yaml:"-" json:"cumulative_discount"`
}

// RateGrid is an ascending sequence of slices.
//
// Every threshold lookup in this module follows the same rule: the matching
// slice is the last one whose floor is <= x. A value below the first floor
// matches nothing and yields ErrGridSliceNotFound.
type RateGrid []RateSlice

// Initialize derives the cumulative discount of every slice. It must run once
// after loading and before any Tax call.
func (g RateGrid) Initialize() error {
	for i := range g {
		if i == 0 {
			g[i].CumulativeDiscount = g[i].Floor.Mul(g[i].Rate)
			continue
		}
		if !g[i].Floor.GreaterThan(g[i-1].Floor) {
			return fmt.Errorf("slice %d floor %s after %s: %w", i, g[i].Floor, g[i-1].Floor, ErrUnsortedGrid)
		}
		step := g[i].Floor.Mul(g[i].Rate.Sub(g[i-1].Rate))
		g[i].CumulativeDiscount = g[i-1].CumulativeDiscount.Add(step)
	}
	return nil
}

// Slice returns the last slice whose floor is <= x.
func (g RateGrid) Slice(x decimal.Decimal) (RateSlice, error) {
	idx := sort.Search(len(g), func(i int) bool { return g[i].Floor.GreaterThan(x) })
	if idx == 0 {
		return RateSlice{}, fmt.Errorf("no slice at or below %s: %w", x, ErrGridSliceNotFound)
	}
	return g[idx-1], nil
}

// Tax returns x*rate - cumulativeDiscount for the slice containing x.
func (g RateGrid) Tax(x decimal.Decimal) (decimal.Decimal, error) {
	s, err := g.Slice(x)
	if err != nil {
		return decimal.Zero, err
	}
	return x.Mul(s.Rate).Sub(s.CumulativeDiscount), nil
}

// MarginalRate returns the rate of the slice containing x.
func (g RateGrid) MarginalRate(x decimal.Decimal) (decimal.Decimal, error) {
	s, err := g.Slice(x)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Rate, nil
}

// LookupFloor applies the grid rule to integer-keyed tables: it returns the
// last entry whose key is <= x. entries must be sorted ascending by key.
func LookupFloor[T any](entries []T, key func(T) int, x int) (T, bool) {
	idx := sort.Search(len(entries), func(i int) bool { return key(entries[i]) > x })
	if idx == 0 {
		var zero T
		return zero, false
	}
	return entries[idx-1], true
}

// ascendingKeys reports whether entries are strictly ascending by key.
func ascendingKeys[T any](entries []T, key func(T) int) bool {
	for i := 1; i < len(entries); i++ {
		if key(entries[i]) <= key(entries[i-1]) {
			return false
		}
	}
	return true
}

// ZeroOrPositive clamps negative values to zero.
func ZeroOrPositive(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
