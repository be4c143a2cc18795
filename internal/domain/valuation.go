package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DemembrementEntry gives the usufruct share of full value for usufructuaries
// aged FromAge or more. The bare share is its complement by construction.
type DemembrementEntry struct {
	FromAge          int             `yaml:"from_age" json:"from_age"`
	UsufructFraction decimal.Decimal `yaml:"usufruct_fraction" json:"usufruct_fraction"`
}

// DemembrementGrid is the age-bracketed usufruct valuation scale, ascending
// by FromAge.
type DemembrementGrid []DemembrementEntry

// Validate checks ordering and that every fraction lies in (0,1].
func (g DemembrementGrid) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("demembrement grid is empty")
	}
	if !ascendingKeys(g, demembrementKey) {
		return fmt.Errorf("demembrement grid: %w", ErrUnsortedGrid)
	}
	for _, e := range g {
		if !e.UsufructFraction.IsPositive() || e.UsufructFraction.GreaterThan(one) {
			return fmt.Errorf("demembrement usufruct fraction %s at age %d outside (0,1]", e.UsufructFraction, e.FromAge)
		}
	}
	return nil
}

func demembrementKey(e DemembrementEntry) int { return e.FromAge }

// UsufructFraction returns the usufruct share of full value at age.
func (g DemembrementGrid) UsufructFraction(age int) (decimal.Decimal, error) {
	if age <= 0 {
		return decimal.Zero, fmt.Errorf("usufructuary age %d: %w", age, ErrOutOfBounds)
	}
	e, ok := LookupFloor(g, demembrementKey, age)
	if !ok {
		return decimal.Zero, fmt.Errorf("usufructuary age %d: %w", age, ErrGridSliceNotFound)
	}
	return e.UsufructFraction, nil
}

// Split divides totalValue into usufruct and bare values for a usufructuary
// of the given age. usufruct + bare always equals totalValue exactly.
func (g DemembrementGrid) Split(totalValue decimal.Decimal, usufructuaryAge int) (usufruct, bare decimal.Decimal, err error) {
	frac, err := g.UsufructFraction(usufructuaryAge)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	usufruct = totalValue.Mul(frac)
	bare = totalValue.Sub(usufruct)
	return usufruct, bare, nil
}

// EvaluationMethod selects how a dismembered right is valued.
type EvaluationMethod string

const (
	// Patrimoine values net worth with the age-based usufruct split.
	Patrimoine EvaluationMethod = "patrimoine"
	// LegalSuccession values estate shares with the age-based split.
	LegalSuccession EvaluationMethod = "legal_succession"
	// LifeInsuranceSuccession values life-insurance payouts with the age-based split.
	LifeInsuranceSuccession EvaluationMethod = "life_insurance_succession"
	// IFI is the real-estate wealth tax: the usufructuary is taxed on full value.
	IFI EvaluationMethod = "ifi"
	// ISF is the former wealth tax, valued like IFI.
	ISF EvaluationMethod = "isf"
)

// IsWealthTax reports whether the method charges the usufructuary on full value.
func (m EvaluationMethod) IsWealthTax() bool { return m == IFI || m == ISF }

// Valuator computes the economic value each right-holder owns.
type Valuator struct {
	Grid DemembrementGrid
	Ages AgeLookup
}

// OwnedValue returns the part of totalValue attributable to name in year.
func (v Valuator) OwnedValue(o Ownership, name string, totalValue decimal.Decimal, method EvaluationMethod, year int) (decimal.Decimal, error) {
	if !o.IsDismembered {
		return totalValue.Mul(o.FullOwners.Fraction(name)).Div(hundred), nil
	}
	if method.IsWealthTax() {
		return totalValue.Mul(o.UsufructOwners.Fraction(name)).Div(hundred), nil
	}

	value := decimal.Zero
	bareTotal := decimal.Zero
	for _, u := range o.UsufructOwners {
		slice := totalValue.Mul(u.Fraction).Div(hundred)
		age, ok := v.Ages.AgeOf(u.Name, year)
		if !ok {
			return decimal.Zero, fmt.Errorf("age of usufructuary %s in %d: %w", u.Name, year, ErrImpossibleToCompute)
		}
		uv, bv, err := v.Grid.Split(slice, age)
		if err != nil {
			return decimal.Zero, fmt.Errorf("usufructuary %s: %w", u.Name, err)
		}
		if u.Name == name {
			value = value.Add(uv)
		}
		bareTotal = bareTotal.Add(bv)
	}
	value = value.Add(bareTotal.Mul(o.BareOwners.Fraction(name)).Div(hundred))
	return value, nil
}

// OwnedValues returns the value owned by every right-holder of o.
func (v Valuator) OwnedValues(o Ownership, totalValue decimal.Decimal, method EvaluationMethod, year int) (map[string]decimal.Decimal, error) {
	names := append(append(o.FullOwners.Names(), o.UsufructOwners.Names()...), o.BareOwners.Names()...)
	out := make(map[string]decimal.Decimal, len(names))
	for _, name := range names {
		if _, done := out[name]; done {
			continue
		}
		val, err := v.OwnedValue(o, name, totalValue, method, year)
		if err != nil {
			return nil, err
		}
		out[name] = val
	}
	return out, nil
}
