package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FiscalOption is the surviving spouse's choice among the statutory sharing
// schemes when children also survive.
type FiscalOption string

const (
	// FullUsufruct gives the spouse the usufruct of everything; children
	// share the bare ownership.
	FullUsufruct FiscalOption = "full_usufruct"
	// DisposableQuota gives the spouse the disposable quota in full
	// ownership: 1/2, 1/3 or 1/4 for one, two, three or more children.
	DisposableQuota FiscalOption = "disposable_quota"
	// QuarterFullThreeQuartersUsufruct gives the spouse 1/4 in full ownership
	// plus the usufruct of the remaining 3/4.
	QuarterFullThreeQuartersUsufruct FiscalOption = "quarter_full_three_quarters_usufruct"
)

// FiscalOptions lists every option.
var FiscalOptions = []FiscalOption{FullUsufruct, DisposableQuota, QuarterFullThreeQuartersUsufruct}

// Validate rejects unknown options.
func (f FiscalOption) Validate() error {
	for _, known := range FiscalOptions {
		if f == known {
			return nil
		}
	}
	return fmt.Errorf("unknown fiscal option %q", string(f))
}

// HeirShares are the fractions in [0,1] of a transferred right that go to the
// spouse and to each child, split by usufruct and bare component.
type HeirShares struct {
	SpouseUsufruct decimal.Decimal
	SpouseBare     decimal.Decimal
	ChildUsufruct  decimal.Decimal
	ChildBare      decimal.Decimal
}

var (
	one     = decimal.NewFromInt(1)
	quarter = decimal.NewFromFloat(0.25)
)

// Shares returns the per-heir fractions for childCount surviving children.
func (f FiscalOption) Shares(childCount int) (HeirShares, error) {
	if childCount < 1 {
		return HeirShares{}, fmt.Errorf("fiscal option %s needs at least one child", f)
	}
	n := decimalFromInt(childCount)
	switch f {
	case FullUsufruct:
		return HeirShares{
			SpouseUsufruct: one,
			SpouseBare:     decimal.Zero,
			ChildUsufruct:  decimal.Zero,
			ChildBare:      one.Div(n),
		}, nil
	case QuarterFullThreeQuartersUsufruct:
		return HeirShares{
			SpouseUsufruct: one,
			SpouseBare:     quarter,
			ChildUsufruct:  decimal.Zero,
			ChildBare:      one.Sub(quarter).Div(n),
		}, nil
	case DisposableQuota:
		q := DisposableQuotaFraction(childCount)
		child := one.Sub(q).Div(n)
		return HeirShares{
			SpouseUsufruct: q,
			SpouseBare:     q,
			ChildUsufruct:  child,
			ChildBare:      child,
		}, nil
	default:
		return HeirShares{}, f.Validate()
	}
}

// DisposableQuotaFraction is the part of the estate the decedent can freely
// give away given the number of children.
func DisposableQuotaFraction(childCount int) decimal.Decimal {
	switch {
	case childCount <= 0:
		return one
	case childCount == 1:
		return decimal.NewFromFloat(0.5)
	case childCount == 2:
		return one.Div(decimal.NewFromInt(3))
	default:
		return quarter
	}
}

// SpouseTaxableShare returns the fraction of the estate value attributed to
// the spouse for duty purposes. Usufruct is valued from the spouse's age with
// the demembrement grid.
func (f FiscalOption) SpouseTaxableShare(childCount, spouseAge int, grid DemembrementGrid) (decimal.Decimal, error) {
	switch f {
	case DisposableQuota:
		return DisposableQuotaFraction(childCount), nil
	case FullUsufruct, QuarterFullThreeQuartersUsufruct:
		usufruct, err := grid.UsufructFraction(spouseAge)
		if err != nil {
			return decimal.Zero, err
		}
		if f == FullUsufruct {
			return usufruct, nil
		}
		return quarter.Add(one.Sub(quarter).Mul(usufruct)), nil
	default:
		return decimal.Zero, f.Validate()
	}
}

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
