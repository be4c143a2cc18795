package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// PostponeRetirement delays an adult's end of activity by a number of months.
// This is useful for exploring "work one more year" scenarios. Unless
// KeepLiquidation is set, a liquidation date that would fall before the new
// retirement date is moved along with it.
type PostponeRetirement struct {
	Adult           string
	Months          int
	KeepLiquidation bool
}

func (pt *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pt *PostponeRetirement) Description() string {
	return fmt.Sprintf("Postpone %s's retirement by %d months", pt.Adult, pt.Months)
}

func (pt *PostponeRetirement) Validate(base *domain.Scenario, h *domain.Household) error {
	a, err := effectiveAdult(pt.Name(), base, h, pt.Adult)
	if err != nil {
		return err
	}

	if pt.Months < 0 {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("months must be non-negative, got %d", pt.Months), nil)
	}

	if a.DateOfRetirement.IsZero() {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("adult %s has no retirement date", pt.Adult), nil)
	}

	return nil
}

func (pt *PostponeRetirement) Apply(base *domain.Scenario, h *domain.Household) (*domain.Scenario, error) {
	a, err := effectiveAdult(pt.Name(), base, h, pt.Adult)
	if err != nil {
		return nil, err
	}

	retirement := a.DateOfRetirement.AddDate(0, pt.Months, 0)
	shiftLiquidation := !pt.KeepLiquidation && !a.DateOfPensionLiquid.IsZero() && a.DateOfPensionLiquid.Before(retirement)
	liquidation := a.DateOfPensionLiquid.AddDate(0, pt.Months, 0)

	return override(base, pt.Adult, func(o *domain.AdultOverrides) {
		o.DateOfRetirement = &retirement
		if shiftLiquidation {
			o.DateOfPensionLiquid = &liquidation
		}
	}), nil
}

// SetRetirementDate sets an adult's end of activity to an absolute date.
type SetRetirementDate struct {
	Adult string
	Date  time.Time
}

func (srd *SetRetirementDate) Name() string {
	return "set_retirement_date"
}

func (srd *SetRetirementDate) Description() string {
	return fmt.Sprintf("Set %s's retirement date to %s", srd.Adult, srd.Date.Format("2006-01-02"))
}

func (srd *SetRetirementDate) Validate(base *domain.Scenario, h *domain.Household) error {
	a, err := effectiveAdult(srd.Name(), base, h, srd.Adult)
	if err != nil {
		return err
	}

	if srd.Date.IsZero() {
		return NewTransformError(srd.Name(), "validate", "date cannot be zero", nil)
	}

	if srd.Date.Before(a.BirthDate) {
		return NewTransformError(srd.Name(), "validate", "date cannot be before birth", nil)
	}

	return nil
}

func (srd *SetRetirementDate) Apply(base *domain.Scenario, _ *domain.Household) (*domain.Scenario, error) {
	date := srd.Date
	return override(base, srd.Adult, func(o *domain.AdultOverrides) {
		o.DateOfRetirement = &date
	}), nil
}

// SetUnemploymentEnd sets the date an adult's unemployment allowance stops.
// The indemnified period accrues quarters and points up to that date.
type SetUnemploymentEnd struct {
	Adult string
	Date  time.Time
}

func (sue *SetUnemploymentEnd) Name() string {
	return "set_unemployment_end"
}

func (sue *SetUnemploymentEnd) Description() string {
	return fmt.Sprintf("End %s's unemployment allowance on %s", sue.Adult, sue.Date.Format("2006-01-02"))
}

func (sue *SetUnemploymentEnd) Validate(base *domain.Scenario, h *domain.Household) error {
	a, err := effectiveAdult(sue.Name(), base, h, sue.Adult)
	if err != nil {
		return err
	}

	if sue.Date.IsZero() {
		return NewTransformError(sue.Name(), "validate", "date cannot be zero", nil)
	}

	if !a.DateOfRetirement.IsZero() && sue.Date.Before(a.DateOfRetirement) {
		return NewTransformError(sue.Name(), "validate",
			fmt.Sprintf("allowance cannot end before retirement on %s", a.DateOfRetirement.Format("2006-01-02")), nil)
	}

	return nil
}

func (sue *SetUnemploymentEnd) Apply(base *domain.Scenario, _ *domain.Household) (*domain.Scenario, error) {
	date := sue.Date
	return override(base, sue.Adult, func(o *domain.AdultOverrides) {
		o.DateOfEndOfUnemployAlloc = &date
	}), nil
}
