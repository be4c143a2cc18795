package transform

import (
	"fmt"

	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// SetAgeOfDeath models an adult's death at a given age. It drives the
// succession events of a scenario.
type SetAgeOfDeath struct {
	Adult string
	Age   int
}

func (sad *SetAgeOfDeath) Name() string {
	return "set_age_of_death"
}

func (sad *SetAgeOfDeath) Description() string {
	return fmt.Sprintf("Model %s's death at age %d", sad.Adult, sad.Age)
}

func (sad *SetAgeOfDeath) Validate(base *domain.Scenario, h *domain.Household) error {
	if _, err := effectiveAdult(sad.Name(), base, h, sad.Adult); err != nil {
		return err
	}

	if sad.Age <= 0 || sad.Age > 120 {
		return NewTransformError(sad.Name(), "validate", fmt.Sprintf("age must be between 1 and 120, got %d", sad.Age), nil)
	}

	return nil
}

func (sad *SetAgeOfDeath) Apply(base *domain.Scenario, _ *domain.Household) (*domain.Scenario, error) {
	age := sad.Age
	return override(base, sad.Adult, func(o *domain.AdultOverrides) {
		o.AgeOfDeath = &age
	}), nil
}

// SetFiscalOption changes the option an adult takes as surviving spouse.
type SetFiscalOption struct {
	Adult  string
	Option domain.FiscalOption
}

func (sfo *SetFiscalOption) Name() string {
	return "set_fiscal_option"
}

func (sfo *SetFiscalOption) Description() string {
	return fmt.Sprintf("Have %s take the %s option as surviving spouse", sfo.Adult, sfo.Option)
}

func (sfo *SetFiscalOption) Validate(base *domain.Scenario, h *domain.Household) error {
	if _, err := effectiveAdult(sfo.Name(), base, h, sfo.Adult); err != nil {
		return err
	}

	if err := sfo.Option.Validate(); err != nil {
		return NewTransformError(sfo.Name(), "validate", "invalid option", err)
	}

	return nil
}

func (sfo *SetFiscalOption) Apply(base *domain.Scenario, _ *domain.Household) (*domain.Scenario, error) {
	option := sfo.Option
	return override(base, sfo.Adult, func(o *domain.AdultOverrides) {
		o.FiscalOption = &option
	}), nil
}
