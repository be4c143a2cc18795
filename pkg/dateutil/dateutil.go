// Package dateutil holds the calendar arithmetic shared by the pension and
// succession engines. Everything works on whole months and quarters with
// closed-form arithmetic; nothing loops over dates.
package dateutil

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MonthsPerYear    = 12
	MonthsPerQuarter = 3
	QuartersPerYear  = 4
)

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfYear returns January 1st of year.
func StartOfYear(year int) time.Time {
	return Date(year, time.January, 1)
}

// EndOfYear returns the instant a yearly snapshot refers to: the first day
// of the following year.
func EndOfYear(year int) time.Time {
	return StartOfYear(year + 1)
}

// AddYears shifts t by whole years.
func AddYears(t time.Time, years int) time.Time {
	return t.AddDate(years, 0, 0)
}

// AddQuarters shifts t by whole quarters (negative allowed).
func AddQuarters(t time.Time, quarters int) time.Time {
	return t.AddDate(0, quarters*MonthsPerQuarter, 0)
}

// Later returns the later of a and b.
func Later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// Earlier returns the earlier of a and b.
func Earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// LaterOpt returns the later of a and *b, ignoring a nil b.
func LaterOpt(a time.Time, b *time.Time) time.Time {
	if b == nil {
		return a
	}
	return Later(a, *b)
}

// Age returns the age in completed years at date at.
func Age(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}

// AgeInYear returns the age reached during the given calendar year.
func AgeInYear(birth time.Time, year int) int {
	return year - birth.Year()
}

// MonthsBetween returns the whole months and remaining days from from to to.
// Both results are negative when to is before from.
func MonthsBetween(from, to time.Time) (months, days int) {
	if to.Before(from) {
		m, d := MonthsBetween(to, from)
		return -m, -d
	}
	months = (to.Year()-from.Year())*MonthsPerYear + int(to.Month()) - int(from.Month())
	// AddDate normalizes overflowing days (Nov 30 + 3 months is Mar 2), so
	// the anchor may need to step back more than once.
	anchor := from.AddDate(0, months, 0)
	for anchor.After(to) {
		months--
		anchor = from.AddDate(0, months, 0)
	}
	days = int(to.Sub(anchor).Hours() / 24)
	return months, days
}

// QuartersBetweenDown counts the whole quarters elapsed from from to to,
// rounding any partial quarter down. It is zero when to is not after from.
func QuartersBetweenDown(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	months, _ := MonthsBetween(from, to)
	return months / MonthsPerQuarter
}

// QuartersBetweenUp counts the quarters from from to to, rounding any
// partial quarter up. It is zero when to is not after from.
func QuartersBetweenUp(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	months, days := MonthsBetween(from, to)
	quarters := months / MonthsPerQuarter
	if months%MonthsPerQuarter != 0 || days > 0 {
		quarters++
	}
	return quarters
}

// YearsBetween returns years + months/12 from from to to, ignoring the
// leftover days. It is zero when to is not after from.
func YearsBetween(from, to time.Time) decimal.Decimal {
	if !to.After(from) {
		return decimal.Zero
	}
	months, _ := MonthsBetween(from, to)
	return decimal.NewFromInt(int64(months)).Div(decimal.NewFromInt(MonthsPerYear))
}
