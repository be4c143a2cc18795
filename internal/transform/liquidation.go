package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// SetLiquidationDate sets the date an adult claims both pensions.
type SetLiquidationDate struct {
	Adult string
	Date  time.Time
}

func (sld *SetLiquidationDate) Name() string {
	return "set_liquidation_date"
}

func (sld *SetLiquidationDate) Description() string {
	return fmt.Sprintf("Liquidate %s's pensions on %s", sld.Adult, sld.Date.Format("2006-01-02"))
}

func (sld *SetLiquidationDate) Validate(base *domain.Scenario, h *domain.Household) error {
	a, err := effectiveAdult(sld.Name(), base, h, sld.Adult)
	if err != nil {
		return err
	}

	if sld.Date.IsZero() {
		return NewTransformError(sld.Name(), "validate", "date cannot be zero", nil)
	}

	if sld.Date.Before(a.BirthDate) {
		return NewTransformError(sld.Name(), "validate", "date cannot be before birth", nil)
	}

	return nil
}

func (sld *SetLiquidationDate) Apply(base *domain.Scenario, _ *domain.Household) (*domain.Scenario, error) {
	date := sld.Date
	return override(base, sld.Adult, func(o *domain.AdultOverrides) {
		o.DateOfPensionLiquid = &date
	}), nil
}

// PostponeLiquidation claims both pensions a number of months later than
// currently planned.
type PostponeLiquidation struct {
	Adult  string
	Months int
}

func (pl *PostponeLiquidation) Name() string {
	return "postpone_liquidation"
}

func (pl *PostponeLiquidation) Description() string {
	return fmt.Sprintf("Postpone %s's pension liquidation by %d months", pl.Adult, pl.Months)
}

func (pl *PostponeLiquidation) Validate(base *domain.Scenario, h *domain.Household) error {
	a, err := effectiveAdult(pl.Name(), base, h, pl.Adult)
	if err != nil {
		return err
	}

	if pl.Months < 0 {
		return NewTransformError(pl.Name(), "validate", fmt.Sprintf("months must be non-negative, got %d", pl.Months), nil)
	}

	if a.DateOfPensionLiquid.IsZero() {
		return NewTransformError(pl.Name(), "validate", fmt.Sprintf("adult %s has no liquidation date", pl.Adult), nil)
	}

	return nil
}

func (pl *PostponeLiquidation) Apply(base *domain.Scenario, h *domain.Household) (*domain.Scenario, error) {
	a, err := effectiveAdult(pl.Name(), base, h, pl.Adult)
	if err != nil {
		return nil, err
	}
	date := a.DateOfPensionLiquid.AddDate(0, pl.Months, 0)
	return override(base, pl.Adult, func(o *domain.AdultOverrides) {
		o.DateOfPensionLiquid = &date
	}), nil
}
