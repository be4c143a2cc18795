package calculation

import (
	"fmt"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/rgehrsitz/patrimoine/internal/succession"
	"github.com/shopspring/decimal"
)

// LEVY AND DUTY ASSUMPTIONS:
//
// 1. Social levies are flat rates on gross pension, no reduced-rate
//    thresholds based on household income.
//
// 2. Inheritance duties ignore prior gifts (no 15-year recall) and disability
//    allowances. The surviving spouse is exempt.
//
// 3. Life-insurance payouts use the per-beneficiary allowance and grid
//    regardless of the insured's age at the time premiums were paid.

// SocialLevies withholds social contributions from gross pensions.
type SocialLevies struct {
	rules domain.SocialLevyRules
}

// NewSocialLevies creates a levy calculator.
func NewSocialLevies(rules domain.SocialLevyRules) SocialLevies {
	return SocialLevies{rules: rules}
}

// Levies returns the amount withheld from gross.
func (s SocialLevies) Levies(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(s.rules.Total()).Div(decimalHundred)
}

// Net returns gross minus levies.
func (s SocialLevies) Net(gross decimal.Decimal) decimal.Decimal {
	return gross.Sub(s.Levies(gross))
}

// InheritanceDutyCalculator computes succession and life-insurance duties
// per heir. It implements succession.DutyCalculator.
type InheritanceDutyCalculator struct {
	rules domain.InheritanceRules
}

var _ succession.DutyCalculator = (*InheritanceDutyCalculator)(nil)

// NewInheritanceDutyCalculator creates a duty calculator over initialized grids.
func NewInheritanceDutyCalculator(rules domain.InheritanceRules) *InheritanceDutyCalculator {
	return &InheritanceDutyCalculator{rules: rules}
}

// Duty returns the succession duty on inherited and the life-insurance duty
// on lifeInsurance for an heir with the given relation.
func (c *InheritanceDutyCalculator) Duty(relation succession.Relation, inherited, lifeInsurance decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if relation == succession.RelationSpouse {
		return decimalZero, decimalZero, nil
	}

	var successionDuty decimal.Decimal
	switch relation {
	case succession.RelationChild:
		base := domain.ZeroOrPositive(inherited.Sub(c.rules.ChildAllowance))
		tax, err := c.rules.ChildGrid.Tax(base)
		if err != nil {
			return decimalZero, decimalZero, fmt.Errorf("child duty on %s: %w", base.StringFixed(2), err)
		}
		successionDuty = tax
	default:
		base := domain.ZeroOrPositive(inherited.Sub(c.rules.OtherAllowance))
		successionDuty = base.Mul(c.rules.OtherRate)
	}

	liBase := domain.ZeroOrPositive(lifeInsurance.Sub(c.rules.LifeInsuranceAllowance))
	liDuty, err := c.rules.LifeInsuranceGrid.Tax(liBase)
	if err != nil {
		return decimalZero, decimalZero, fmt.Errorf("life insurance duty on %s: %w", liBase.StringFixed(2), err)
	}
	return successionDuty, liDuty, nil
}
