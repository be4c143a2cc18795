package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Household groups the adults and children being simulated.
type Household struct {
	Adults   []Adult `yaml:"adults" json:"adults"`
	Children []Child `yaml:"children" json:"children"`
}

// Persons returns every member as a Person.
func (h *Household) Persons() []Person {
	out := make([]Person, 0, len(h.Adults)+len(h.Children))
	for i := range h.Adults {
		out = append(out, &h.Adults[i])
	}
	for i := range h.Children {
		out = append(out, &h.Children[i])
	}
	return out
}

// Find returns the member called name.
func (h *Household) Find(name string) (Person, bool) {
	for _, p := range h.Persons() {
		if p.Core().Name == name {
			return p, true
		}
	}
	return nil, false
}

// Adult returns the adult called name.
func (h *Household) Adult(name string) (*Adult, bool) {
	for i := range h.Adults {
		if h.Adults[i].Name == name {
			return &h.Adults[i], true
		}
	}
	return nil, false
}

// AgeOf implements AgeLookup.
func (h *Household) AgeOf(name string, year int) (int, bool) {
	p, ok := h.Find(name)
	if !ok {
		return 0, false
	}
	return p.Core().AgeInYear(year), true
}

// ChildCount returns the number of children ever born to the household.
func (h *Household) ChildCount() int { return len(h.Children) }

// DependentChildCount returns the children still dependent during year.
func (h *Household) DependentChildCount(year int) int {
	n := 0
	for i := range h.Children {
		if h.Children[i].IsDependentIn(year) {
			n++
		}
	}
	return n
}

// SpouseOf returns the other adult if they survive a death in year.
func (h *Household) SpouseOf(name string, year int) (string, bool) {
	for i := range h.Adults {
		a := &h.Adults[i]
		if a.Name != name && a.SurvivesYear(year) {
			return a.Name, true
		}
	}
	return "", false
}

// LivingChildren returns the names of the children who survive a death in
// year.
func (h *Household) LivingChildren(year int) []string {
	var names []string
	for i := range h.Children {
		if h.Children[i].SurvivesYear(year) {
			names = append(names, h.Children[i].Name)
		}
	}
	return names
}

// DeepCopy returns an independent copy.
func (h *Household) DeepCopy() *Household {
	out := &Household{
		Adults:   append([]Adult(nil), h.Adults...),
		Children: append([]Child(nil), h.Children...),
	}
	for i := range out.Adults {
		if d := out.Adults[i].DateOfEndOfUnemployAlloc; d != nil {
			dc := *d
			out.Adults[i].DateOfEndOfUnemployAlloc = &dc
		}
	}
	return out
}

// AssetKind classifies assets for succession rules.
type AssetKind string

const (
	AssetRealEstate    AssetKind = "real_estate"
	AssetFinancial     AssetKind = "financial"
	AssetLifeInsurance AssetKind = "life_insurance"
)

// Asset is one item of the household balance sheet.
type Asset struct {
	Name      string          `yaml:"name" json:"name"`
	Kind      AssetKind       `yaml:"kind" json:"kind"`
	Value     decimal.Decimal `yaml:"value" json:"value"`
	Ownership Ownership       `yaml:"ownership" json:"ownership"`
	// Clause is only meaningful for life insurance.
	Clause *LifeInsuranceClause `yaml:"clause,omitempty" json:"clause,omitempty"`
}

// IsLifeInsurance reports whether the asset follows the beneficiary clause.
func (a Asset) IsLifeInsurance() bool { return a.Kind == AssetLifeInsurance }

// Clone returns a deep copy.
func (a Asset) Clone() Asset {
	out := a
	out.Ownership = a.Ownership.Clone()
	if a.Clause != nil {
		c := *a.Clause
		c.FullRecipients = append([]string(nil), a.Clause.FullRecipients...)
		c.BareRecipients = append([]string(nil), a.Clause.BareRecipients...)
		out.Clause = &c
	}
	return out
}

// AdultOverrides replaces planned dates and choices of one adult in a scenario.
type AdultOverrides struct {
	DateOfRetirement         *time.Time    `yaml:"date_of_retirement,omitempty" json:"date_of_retirement,omitempty"`
	DateOfEndOfUnemployAlloc *time.Time    `yaml:"date_of_end_of_unemploy_alloc,omitempty" json:"date_of_end_of_unemploy_alloc,omitempty"`
	DateOfPensionLiquid      *time.Time    `yaml:"date_of_pension_liquid,omitempty" json:"date_of_pension_liquid,omitempty"`
	AgeOfDeath               *int          `yaml:"age_of_death,omitempty" json:"age_of_death,omitempty"`
	FiscalOption             *FiscalOption `yaml:"fiscal_option,omitempty" json:"fiscal_option,omitempty"`
}

// Scenario is a named set of overrides applied to the household.
type Scenario struct {
	Name   string                    `yaml:"name" json:"name"`
	Adults map[string]AdultOverrides `yaml:"adults,omitempty" json:"adults,omitempty"`
}

// DeepCopy returns an independent copy.
func (s *Scenario) DeepCopy() *Scenario {
	out := &Scenario{Name: s.Name, Adults: make(map[string]AdultOverrides, len(s.Adults))}
	for name, o := range s.Adults {
		out.Adults[name] = o.clone()
	}
	return out
}

func (o AdultOverrides) clone() AdultOverrides {
	out := AdultOverrides{}
	if o.DateOfRetirement != nil {
		d := *o.DateOfRetirement
		out.DateOfRetirement = &d
	}
	if o.DateOfEndOfUnemployAlloc != nil {
		d := *o.DateOfEndOfUnemployAlloc
		out.DateOfEndOfUnemployAlloc = &d
	}
	if o.DateOfPensionLiquid != nil {
		d := *o.DateOfPensionLiquid
		out.DateOfPensionLiquid = &d
	}
	if o.AgeOfDeath != nil {
		a := *o.AgeOfDeath
		out.AgeOfDeath = &a
	}
	if o.FiscalOption != nil {
		f := *o.FiscalOption
		out.FiscalOption = &f
	}
	return out
}

// Apply returns a copy of h with the scenario's overrides applied.
func (s *Scenario) Apply(h *Household) *Household {
	out := h.DeepCopy()
	if s == nil {
		return out
	}
	for i := range out.Adults {
		o, ok := s.Adults[out.Adults[i].Name]
		if !ok {
			continue
		}
		a := &out.Adults[i]
		if o.DateOfRetirement != nil {
			a.DateOfRetirement = *o.DateOfRetirement
		}
		if o.DateOfEndOfUnemployAlloc != nil {
			d := *o.DateOfEndOfUnemployAlloc
			a.DateOfEndOfUnemployAlloc = &d
		}
		if o.DateOfPensionLiquid != nil {
			a.DateOfPensionLiquid = *o.DateOfPensionLiquid
		}
		if o.AgeOfDeath != nil {
			a.AgeOfDeath = *o.AgeOfDeath
		}
		if o.FiscalOption != nil {
			a.FiscalOption = *o.FiscalOption
		}
	}
	return out
}

// GlobalAssumptions contains the projection window.
type GlobalAssumptions struct {
	StartYear       int `yaml:"start_year" json:"start_year"`
	ProjectionYears int `yaml:"projection_years" json:"projection_years"`
}

// Configuration represents the complete input configuration
type Configuration struct {
	Household         Household         `yaml:"household" json:"household"`
	Assets            []Asset           `yaml:"assets" json:"assets"`
	Scenarios         []Scenario        `yaml:"scenarios" json:"scenarios"`
	GlobalAssumptions GlobalAssumptions `yaml:"global_assumptions" json:"global_assumptions"`

	// Regulatory is attached by the loader and never read from the household file.
	Regulatory *RegulatoryConfig `yaml:"-" json:"-"`
}

// FindScenario returns the scenario called name.
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}
