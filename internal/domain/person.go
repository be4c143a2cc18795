package domain

import (
	"time"

	"github.com/rgehrsitz/patrimoine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// GeneralRegimeSituation is the last known general-regime statement of an
// adult, as of the end of AsOfYear. Engines only project forward from it.
type GeneralRegimeSituation struct {
	AsOfYear          int             `yaml:"as_of_year" json:"as_of_year"`
	AcquiredQuarters  int             `yaml:"acquired_quarters" json:"acquired_quarters"`
	AverageAnnualWage decimal.Decimal `yaml:"average_annual_wage" json:"average_annual_wage"`
}

// PointsRegimeSituation is the last known points-regime statement of an
// adult, as of the end of AsOfYear.
type PointsRegimeSituation struct {
	AsOfYear      int `yaml:"as_of_year" json:"as_of_year"`
	PointsBalance int `yaml:"points_balance" json:"points_balance"`
	PointsPerYear int `yaml:"points_per_year" json:"points_per_year"`
}

// LifeEvent names a dated milestone in a person's life.
type LifeEvent string

const (
	EventDeath              LifeEvent = "death"
	EventRetirement         LifeEvent = "retirement"
	EventUnemploymentEnd    LifeEvent = "unemployment_end"
	EventPensionLiquidation LifeEvent = "pension_liquidation"
	EventIndependence       LifeEvent = "independence"
)

// Person is a member of the household. It is implemented by *Adult and
// *Child; callers switch on the concrete type instead of downcasting a base
// class.
type Person interface {
	Core() *PersonCore
	// YearOf returns the calendar year of event, and false when the event
	// does not apply to this kind of person or is not planned.
	YearOf(event LifeEvent) (int, bool)
}

// PersonCore holds the fields every household member has.
type PersonCore struct {
	Name      string    `yaml:"name" json:"name"`
	BirthDate time.Time `yaml:"birth_date" json:"birth_date"`
	// AgeOfDeath is the modelled age of death; zero means not modelled.
	AgeOfDeath int `yaml:"age_of_death,omitempty" json:"age_of_death,omitempty"`
}

// AgeInYear returns the age reached during year.
func (p *PersonCore) AgeInYear(year int) int {
	return dateutil.AgeInYear(p.BirthDate, year)
}

// IsAliveIn reports whether the person is still alive during year. The year
// of death itself counts as alive.
func (p *PersonCore) IsAliveIn(year int) bool {
	if p.AgeOfDeath <= 0 {
		return true
	}
	return year <= p.BirthDate.Year()+p.AgeOfDeath
}

// SurvivesYear reports whether the person is still alive once year is over.
// People dying in the same year do not survive each other, so neither
// inherits from the other.
func (p *PersonCore) SurvivesYear(year int) bool {
	d, ok := p.deathYear()
	return !ok || d > year
}

func (p *PersonCore) deathYear() (int, bool) {
	if p.AgeOfDeath <= 0 {
		return 0, false
	}
	return p.BirthDate.Year() + p.AgeOfDeath, true
}

// Adult is a household member who accrues pension rights.
type Adult struct {
	PersonCore `yaml:",inline"`

	DateOfRetirement         time.Time  `yaml:"date_of_retirement" json:"date_of_retirement"`
	DateOfEndOfUnemployAlloc *time.Time `yaml:"date_of_end_of_unemploy_alloc,omitempty" json:"date_of_end_of_unemploy_alloc,omitempty"`
	DateOfPensionLiquid      time.Time  `yaml:"date_of_pension_liquid" json:"date_of_pension_liquid"`

	GeneralSituation GeneralRegimeSituation `yaml:"general_regime" json:"general_regime"`
	PointsSituation  PointsRegimeSituation  `yaml:"points_regime" json:"points_regime"`

	// FiscalOption is the option this adult takes as surviving spouse.
	FiscalOption FiscalOption `yaml:"fiscal_option,omitempty" json:"fiscal_option,omitempty"`
}

func (a *Adult) Core() *PersonCore { return &a.PersonCore }

func (a *Adult) YearOf(event LifeEvent) (int, bool) {
	switch event {
	case EventDeath:
		return a.deathYear()
	case EventRetirement:
		return a.DateOfRetirement.Year(), !a.DateOfRetirement.IsZero()
	case EventUnemploymentEnd:
		if a.DateOfEndOfUnemployAlloc == nil {
			return 0, false
		}
		return a.DateOfEndOfUnemployAlloc.Year(), true
	case EventPensionLiquidation:
		return a.DateOfPensionLiquid.Year(), !a.DateOfPensionLiquid.IsZero()
	default:
		return 0, false
	}
}

// Child is a household member who may be an heir and counts toward pension
// child bonuses.
type Child struct {
	PersonCore `yaml:",inline"`

	// AgeOfIndependence is the age at which the child stops being dependent.
	AgeOfIndependence int `yaml:"age_of_independence" json:"age_of_independence"`
}

func (c *Child) Core() *PersonCore { return &c.PersonCore }

func (c *Child) YearOf(event LifeEvent) (int, bool) {
	switch event {
	case EventDeath:
		return c.deathYear()
	case EventIndependence:
		if c.AgeOfIndependence <= 0 {
			return 0, false
		}
		return c.BirthDate.Year() + c.AgeOfIndependence, true
	default:
		return 0, false
	}
}

// IsDependentIn reports whether the child is still a dependent during year.
func (c *Child) IsDependentIn(year int) bool {
	if !c.IsAliveIn(year) || year < c.BirthDate.Year() {
		return false
	}
	indep, ok := c.YearOf(EventIndependence)
	return !ok || year < indep
}

// AgeLookup answers "how old is this named person in that year". It is passed
// to valuation and succession functions as a read-only collaborator.
type AgeLookup interface {
	AgeOf(name string, year int) (int, bool)
}

// AgeLookupFunc adapts a function to AgeLookup.
type AgeLookupFunc func(name string, year int) (int, bool)

func (f AgeLookupFunc) AgeOf(name string, year int) (int, bool) { return f(name, year) }
