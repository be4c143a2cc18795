package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/rgehrsitz/patrimoine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var (
	decimalZero    = decimal.Zero
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// GeneralRegime computes the basic wage-earner pension. It only reads its
// rules and is safe for concurrent use.
type GeneralRegime struct {
	rules domain.GeneralRegimeRules
}

// NewGeneralRegime creates a general regime calculator.
func NewGeneralRegime(rules domain.GeneralRegimeRules) *GeneralRegime {
	return &GeneralRegime{rules: rules}
}

func (g *GeneralRegime) reference(birthYear int) (domain.ReferenceDurationEntry, bool) {
	return domain.LookupFloor(g.rules.ReferenceDurations, func(e domain.ReferenceDurationEntry) int { return e.BirthYear }, birthYear)
}

// ReferenceDuration returns the quarters required for full rate.
func (g *GeneralRegime) ReferenceDuration(birthYear int) (int, bool) {
	e, ok := g.reference(birthYear)
	return e.RequiredQuarters, ok
}

// FullRateAge returns the age granting full rate regardless of duration.
func (g *GeneralRegime) FullRateAge(birthYear int) (int, bool) {
	e, ok := g.reference(birthYear)
	return e.FullRateAge, ok
}

// FullRateAgeDate returns the date the full-rate age is reached.
func (g *GeneralRegime) FullRateAgeDate(birthDate time.Time) (time.Time, bool) {
	age, ok := g.FullRateAge(birthDate.Year())
	if !ok {
		return time.Time{}, false
	}
	return dateutil.AddYears(birthDate, age), true
}

// UnemploymentCredit returns the most quarters credited for the
// non-indemnified period after an allowance ending at the given age.
func (g *GeneralRegime) UnemploymentCredit(ageAtEndOfAllowance int) int {
	e, ok := domain.LookupFloor(g.rules.UnemploymentCredits, func(e domain.UnemploymentCreditEntry) int { return e.FromAge }, ageAtEndOfAllowance)
	if !ok {
		return 0
	}
	return e.MaxQuarters
}

// InsuredDuration extrapolates the quarters acquired at liquidation. Quarters
// accrue from the end of the snapshot year to the later of retirement and the
// end of the unemployment allowance, rounded down. When an allowance ends
// before liquidation, the gap is credited up to the unemployment credit cap.
func (g *GeneralRegime) InsuredDuration(birthDate time.Time, last domain.GeneralRegimeSituation, dateOfRetirement time.Time, dateOfEndOfUnemployAlloc *time.Time, dateOfPensionLiquid time.Time) (uncapped, capped int, ok bool) {
	reference, ok := g.ReferenceDuration(birthDate.Year())
	if !ok {
		return 0, 0, false
	}
	accrualEnd := dateutil.LaterOpt(dateOfRetirement, dateOfEndOfUnemployAlloc)
	uncapped = last.AcquiredQuarters + dateutil.QuartersBetweenDown(dateutil.EndOfYear(last.AsOfYear), accrualEnd)
	uncapped += g.creditedQuarters(birthDate, accrualEnd, dateOfEndOfUnemployAlloc, dateOfPensionLiquid)
	return uncapped, min(uncapped, reference), true
}

func (g *GeneralRegime) creditedQuarters(birthDate, accrualEnd time.Time, dateOfEndOfUnemployAlloc *time.Time, dateOfPensionLiquid time.Time) int {
	if dateOfEndOfUnemployAlloc == nil {
		return 0
	}
	gap := dateutil.QuartersBetweenDown(accrualEnd, dateOfPensionLiquid)
	return min(gap, g.UnemploymentCredit(dateutil.Age(birthDate, *dateOfEndOfUnemployAlloc)))
}

// DiscountQuarters returns the quarters of décote. It is only defined below
// the reference duration and returns ErrOutOfBounds otherwise.
func (g *GeneralRegime) DiscountQuarters(birthDate time.Time, insuredDuration, referenceDuration int, dateOfPensionLiquid time.Time) (int, error) {
	if insuredDuration >= referenceDuration {
		return 0, fmt.Errorf("insured %d >= reference %d: %w", insuredDuration, referenceDuration, domain.ErrOutOfBounds)
	}
	fullRateDate, ok := g.FullRateAgeDate(birthDate)
	if !ok {
		return 0, fmt.Errorf("full rate age for %d: %w", birthDate.Year(), domain.ErrImpossibleToCompute)
	}
	byAge := dateutil.QuartersBetweenUp(dateOfPensionLiquid, fullRateDate)
	byDuration := referenceDuration - insuredDuration
	return max(0, min(byAge, byDuration, g.rules.MaxDiscountQuarters)), nil
}

// BonusQuarters returns the quarters of surcote. It is only defined at or
// above the reference duration and returns ErrOutOfBounds otherwise.
func (g *GeneralRegime) BonusQuarters(insuredDuration, referenceDuration int) (int, error) {
	if insuredDuration < referenceDuration {
		return 0, fmt.Errorf("insured %d < reference %d: %w", insuredDuration, referenceDuration, domain.ErrOutOfBounds)
	}
	return insuredDuration - referenceDuration, nil
}

// Quarters returns the discount and bonus quarters; exactly one branch
// applies.
func (g *GeneralRegime) Quarters(birthDate time.Time, insuredDuration, referenceDuration int, dateOfPensionLiquid time.Time) (discount, bonus int, err error) {
	discount, err = g.DiscountQuarters(birthDate, insuredDuration, referenceDuration, dateOfPensionLiquid)
	if err == nil {
		return discount, 0, nil
	}
	if !errors.Is(err, domain.ErrOutOfBounds) {
		return 0, 0, err
	}
	bonus, err = g.BonusQuarters(insuredDuration, referenceDuration)
	return 0, bonus, err
}

// PensionRate returns the liquidation rate in percent.
func (g *GeneralRegime) PensionRate(birthDate time.Time, insuredDuration, referenceDuration int, dateOfPensionLiquid time.Time) (decimal.Decimal, bool) {
	discount, bonus, err := g.Quarters(birthDate, insuredDuration, referenceDuration, dateOfPensionLiquid)
	if err != nil {
		return decimalZero, false
	}
	return g.rateFor(discount, bonus), true
}

func (g *GeneralRegime) rateFor(discount, bonus int) decimal.Decimal {
	if discount > 0 {
		return g.rules.MaxRate.Sub(g.rules.DecoteRatePerQuarter.Mul(decimal.NewFromInt(int64(discount))))
	}
	surcote := g.rules.SurcoteRatePerQuarter.Mul(decimal.NewFromInt(int64(bonus))).Div(decimalHundred)
	return g.rules.MaxRate.Mul(decimalOne.Add(surcote))
}

// GrossPension returns the yearly gross pension at liquidation.
func (g *GeneralRegime) GrossPension(averageWage, pensionRate, childBonusPercent decimal.Decimal, cappedInsuredDuration, referenceDuration int) decimal.Decimal {
	if referenceDuration <= 0 {
		return decimalZero
	}
	return averageWage.
		Mul(pensionRate).Div(decimalHundred).
		Mul(decimalOne.Add(childBonusPercent.Div(decimalHundred))).
		Mul(decimal.NewFromInt(int64(cappedInsuredDuration))).
		Div(decimal.NewFromInt(int64(referenceDuration)))
}

// ChildBonusPercent returns the family bonus for the number of children raised.
func (g *GeneralRegime) ChildBonusPercent(childCount int) decimal.Decimal {
	if childCount >= g.rules.ChildBonusMinChildren {
		return g.rules.ChildBonusPercent
	}
	return decimalZero
}

// FullRateDate returns the earliest date full rate is obtained, by age or by
// duration, given the planned career end.
func (g *GeneralRegime) FullRateDate(birthDate time.Time, last domain.GeneralRegimeSituation, dateOfRetirement time.Time, dateOfEndOfUnemployAlloc *time.Time, dateOfPensionLiquid time.Time) (time.Time, bool) {
	ageDate, ok := g.FullRateAgeDate(birthDate)
	if !ok {
		return time.Time{}, false
	}
	reference, _ := g.ReferenceDuration(birthDate.Year())

	start := dateutil.EndOfYear(last.AsOfYear)
	needed := reference - last.AcquiredQuarters
	if needed <= 0 {
		return dateutil.Earlier(start, ageDate), true
	}

	accrualEnd := dateutil.LaterOpt(dateOfRetirement, dateOfEndOfUnemployAlloc)
	accrued := dateutil.QuartersBetweenDown(start, accrualEnd)
	if needed <= accrued {
		return dateutil.Earlier(dateutil.AddQuarters(start, needed), ageDate), true
	}
	remaining := needed - max(accrued, 0)
	if remaining <= g.creditedQuarters(birthDate, accrualEnd, dateOfEndOfUnemployAlloc, dateOfPensionLiquid) {
		return dateutil.Earlier(dateutil.AddQuarters(accrualEnd, remaining), ageDate), true
	}
	return ageDate, true
}

// RevaluationCoefficient compounds the yearly revaluation rate (percent)
// from the liquidation year. Evaluating before liquidation is a programming
// error.
func RevaluationCoefficient(evaluationYear, liquidationYear int, annualRate decimal.Decimal) decimal.Decimal {
	if evaluationYear < liquidationYear {
		panic(fmt.Sprintf("revaluation of %d requested before liquidation in %d", evaluationYear, liquidationYear))
	}
	return decimalOne.Add(annualRate.Div(decimalHundred)).Pow(decimal.NewFromInt(int64(evaluationYear - liquidationYear)))
}

// PensionQuery gathers what the regimes need to value one adult in one year.
type PensionQuery struct {
	BirthDate                time.Time
	General                  domain.GeneralRegimeSituation
	Points                   domain.PointsRegimeSituation
	DateOfRetirement         time.Time
	DateOfEndOfUnemployAlloc *time.Time
	DateOfPensionLiquid      time.Time
	EvaluationYear           int
	ChildCount               int
	DependentChildCount      int
}

// QueryFor builds the query for adult a of household h in year.
func QueryFor(h *domain.Household, a *domain.Adult, year int) PensionQuery {
	return PensionQuery{
		BirthDate:                a.BirthDate,
		General:                  a.GeneralSituation,
		Points:                   a.PointsSituation,
		DateOfRetirement:         a.DateOfRetirement,
		DateOfEndOfUnemployAlloc: a.DateOfEndOfUnemployAlloc,
		DateOfPensionLiquid:      a.DateOfPensionLiquid,
		EvaluationYear:           year,
		ChildCount:               h.ChildCount(),
		DependentChildCount:      h.DependentChildCount(year),
	}
}

func (q PensionQuery) liquidated() bool {
	return !q.DateOfPensionLiquid.IsZero() && q.EvaluationYear >= q.DateOfPensionLiquid.Year()
}

// Pension chains every lookup for q and reports false when the regime does
// not pay that year. The net amount is left for the caller.
func (g *GeneralRegime) Pension(q PensionQuery, revaluationRate decimal.Decimal) (domain.GeneralPension, bool) {
	if q.General.AsOfYear <= 0 || !q.liquidated() {
		return domain.GeneralPension{}, false
	}
	reference, ok := g.ReferenceDuration(q.BirthDate.Year())
	if !ok {
		return domain.GeneralPension{}, false
	}
	fullRateAge, _ := g.FullRateAge(q.BirthDate.Year())
	uncapped, capped, ok := g.InsuredDuration(q.BirthDate, q.General, q.DateOfRetirement, q.DateOfEndOfUnemployAlloc, q.DateOfPensionLiquid)
	if !ok {
		return domain.GeneralPension{}, false
	}
	discount, bonus, err := g.Quarters(q.BirthDate, uncapped, reference, q.DateOfPensionLiquid)
	if err != nil {
		return domain.GeneralPension{}, false
	}
	rate := g.rateFor(discount, bonus)
	childBonus := g.ChildBonusPercent(q.ChildCount)
	revaluation := RevaluationCoefficient(q.EvaluationYear, q.DateOfPensionLiquid.Year(), revaluationRate)
	gross := g.GrossPension(q.General.AverageAnnualWage, rate, childBonus, capped, reference).Mul(revaluation)

	return domain.GeneralPension{
		ReferenceDuration: reference,
		FullRateAge:       fullRateAge,
		InsuredUncapped:   uncapped,
		InsuredCapped:     capped,
		DiscountQuarters:  discount,
		BonusQuarters:     bonus,
		Rate:              rate,
		ChildBonusPercent: childBonus,
		Revaluation:       revaluation,
		Gross:             gross,
	}, true
}
