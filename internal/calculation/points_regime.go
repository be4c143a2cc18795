package calculation

import (
	"time"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/rgehrsitz/patrimoine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// PointsRegime computes the complementary points pension. The full-rate
// status it depends on comes from the general regime.
type PointsRegime struct {
	rules   domain.PointsRegimeRules
	general *GeneralRegime
}

// NewPointsRegime creates a points regime calculator.
func NewPointsRegime(rules domain.PointsRegimeRules, general *GeneralRegime) *PointsRegime {
	return &PointsRegime{rules: rules, general: general}
}

// MinimumClaimDate returns the earliest date the pension can be claimed.
func (p *PointsRegime) MinimumClaimDate(birthDate time.Time) time.Time {
	return dateutil.AddYears(birthDate, p.rules.MinimumClaimAge)
}

// ProjectedPoints extrapolates the balance to the later of retirement and
// the end of the unemployment allowance. Partial years accrue pro rata by
// month. A snapshot already past both dates is frozen.
func (p *PointsRegime) ProjectedPoints(last domain.PointsRegimeSituation, dateOfRetirement time.Time, dateOfEndOfUnemployAlloc *time.Time) (int, bool) {
	if last.AsOfYear <= 0 {
		return 0, false
	}
	start := dateutil.EndOfYear(last.AsOfYear)
	end := dateutil.LaterOpt(dateOfRetirement, dateOfEndOfUnemployAlloc)
	if !end.After(start) {
		return last.PointsBalance, true
	}
	years := dateutil.YearsBetween(start, end)
	accrued := decimal.NewFromInt(int64(last.PointsPerYear)).Mul(years)
	return last.PointsBalance + int(accrued.IntPart()), true
}

// ChildBonusCoefficient returns the dependent-children majoration.
func (p *PointsRegime) ChildBonusCoefficient(dependentChildCount int) decimal.Decimal {
	switch {
	case dependentChildCount <= 0:
		return decimalOne
	case dependentChildCount == 1:
		return p.rules.OneChildCoefficient
	default:
		return p.rules.TwoChildrenCoefficient
	}
}

// coefficientState is the input of the coefficient decision table.
type coefficientState struct {
	beforeMinimumAge       bool
	beforeFullRate         bool
	yearsSinceLiquidation  int
	relativeToFullRateYear int
	missingQuarters        int
	ageInEvaluationYear    int
}

type coefficientRule struct {
	name    string
	applies func(p *PointsRegime, s coefficientState) bool
	value   func(p *PointsRegime, s coefficientState) (decimal.Decimal, bool)
}

// coefficientTable is evaluated top to bottom; the first matching row wins.
var coefficientTable = []coefficientRule{
	{
		name:    "claimed before minimum age",
		applies: func(_ *PointsRegime, s coefficientState) bool { return s.beforeMinimumAge },
		value:   notPayable,
	},
	{
		name:    "not yet liquidated",
		applies: func(_ *PointsRegime, s coefficientState) bool { return s.yearsSinceLiquidation < 0 },
		value:   notPayable,
	},
	{
		name:    "liquidated before full rate",
		applies: func(_ *PointsRegime, s coefficientState) bool { return s.beforeFullRate },
		value: func(p *PointsRegime, s coefficientState) (decimal.Decimal, bool) {
			e, ok := domain.LookupFloor(p.rules.BeforeFullRate, func(e domain.QuarterCoefficientEntry) int { return e.MissingQuarters }, s.missingQuarters)
			return e.Coefficient, ok
		},
	},
	{
		name: "deferral window",
		applies: func(p *PointsRegime, s coefficientState) bool {
			e, ok := p.deferral(s.relativeToFullRateYear)
			return ok && s.yearsSinceLiquidation < e.WindowYears && s.ageInEvaluationYear < p.rules.CutoffAge
		},
		value: func(p *PointsRegime, s coefficientState) (decimal.Decimal, bool) {
			e, _ := p.deferral(s.relativeToFullRateYear)
			return e.Coefficient, true
		},
	},
	{
		name:    "settled",
		applies: func(*PointsRegime, coefficientState) bool { return true },
		value:   func(*PointsRegime, coefficientState) (decimal.Decimal, bool) { return decimalOne, true },
	},
}

func notPayable(*PointsRegime, coefficientState) (decimal.Decimal, bool) { return decimalZero, false }

func (p *PointsRegime) deferral(delayYears int) (domain.DeferralEntry, bool) {
	return domain.LookupFloor(p.rules.AfterFullRate, func(e domain.DeferralEntry) int { return e.DelayYears }, delayYears)
}

func (p *PointsRegime) state(q PensionQuery) (coefficientState, bool) {
	fullRateDate, ok := p.general.FullRateDate(q.BirthDate, q.General, q.DateOfRetirement, q.DateOfEndOfUnemployAlloc, q.DateOfPensionLiquid)
	if !ok {
		return coefficientState{}, false
	}
	s := coefficientState{
		beforeMinimumAge:       q.DateOfPensionLiquid.Before(p.MinimumClaimDate(q.BirthDate)),
		beforeFullRate:         q.DateOfPensionLiquid.Before(fullRateDate),
		yearsSinceLiquidation:  q.EvaluationYear - q.DateOfPensionLiquid.Year(),
		relativeToFullRateYear: q.DateOfPensionLiquid.Year() - fullRateDate.Year(),
		ageInEvaluationYear:    dateutil.AgeInYear(q.BirthDate, q.EvaluationYear),
	}
	if s.beforeFullRate {
		reference, _ := p.general.ReferenceDuration(q.BirthDate.Year())
		uncapped, _, _ := p.general.InsuredDuration(q.BirthDate, q.General, q.DateOfRetirement, q.DateOfEndOfUnemployAlloc, q.DateOfPensionLiquid)
		if missing, err := p.general.DiscountQuarters(q.BirthDate, uncapped, reference, q.DateOfPensionLiquid); err == nil {
			s.missingQuarters = missing
		}
	}
	return s, true
}

// Coefficient returns the minoration or majoration applied in the query's
// evaluation year, and false when no pension is payable.
func (p *PointsRegime) Coefficient(q PensionQuery) (decimal.Decimal, bool) {
	if q.DateOfPensionLiquid.IsZero() {
		return decimalZero, false
	}
	s, ok := p.state(q)
	if !ok {
		return decimalZero, false
	}
	for _, rule := range coefficientTable {
		if rule.applies(p, s) {
			return rule.value(p, s)
		}
	}
	return decimalZero, false
}

// Pension values the points pension for q. The net amount is left for the
// caller.
func (p *PointsRegime) Pension(q PensionQuery, revaluationRate decimal.Decimal) (domain.PointsPension, bool) {
	points, ok := p.ProjectedPoints(q.Points, q.DateOfRetirement, q.DateOfEndOfUnemployAlloc)
	if !ok {
		return domain.PointsPension{}, false
	}
	coef, ok := p.Coefficient(q)
	if !ok {
		return domain.PointsPension{}, false
	}
	childCoef := p.ChildBonusCoefficient(q.DependentChildCount)
	revaluation := RevaluationCoefficient(q.EvaluationYear, q.DateOfPensionLiquid.Year(), revaluationRate)
	gross := decimal.NewFromInt(int64(points)).
		Mul(p.rules.PointValue).
		Mul(coef).
		Mul(childCoef).
		Mul(revaluation)

	return domain.PointsPension{
		ProjectedPoints:  points,
		Coefficient:      coef,
		ChildCoefficient: childCoef,
		Revaluation:      revaluation,
		Gross:            gross,
	}, true
}
