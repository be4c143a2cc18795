package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// FractionTolerance is the accepted gap between a share sum and 100%.
var FractionTolerance = decimal.NewFromFloat(1e-4)

var hundred = decimal.NewFromInt(100)

// Owner holds a share of one right on an asset. Fraction is a percentage.
type Owner struct {
	Name     string          `yaml:"name" json:"name"`
	Fraction decimal.Decimal `yaml:"fraction" json:"fraction"`
}

// Owners is the set of holders of one right. A valid set is either empty or
// has unique names, positive fractions, and fractions summing to 100.
type Owners []Owner

// Sum returns the total of all fractions.
func (o Owners) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, owner := range o {
		sum = sum.Add(owner.Fraction)
	}
	return sum
}

// Fraction returns the summed fraction held by name, zero if absent.
func (o Owners) Fraction(name string) decimal.Decimal {
	f := decimal.Zero
	for _, owner := range o {
		if owner.Name == name {
			f = f.Add(owner.Fraction)
		}
	}
	return f
}

// Contains reports whether name holds a share.
func (o Owners) Contains(name string) bool {
	for _, owner := range o {
		if owner.Name == name {
			return true
		}
	}
	return false
}

// Names lists the owner names in order.
func (o Owners) Names() []string {
	names := make([]string, 0, len(o))
	for _, owner := range o {
		names = append(names, owner.Name)
	}
	return names
}

// Without returns a copy of o minus every share of name.
func (o Owners) Without(name string) Owners {
	out := make(Owners, 0, len(o))
	for _, owner := range o {
		if owner.Name != name {
			out = append(out, owner)
		}
	}
	return out
}

// Grouped folds duplicate names into one entry (first appearance order) and
// drops zero shares.
func (o Owners) Grouped() Owners {
	index := make(map[string]int, len(o))
	out := make(Owners, 0, len(o))
	for _, owner := range o {
		if i, ok := index[owner.Name]; ok {
			out[i].Fraction = out[i].Fraction.Add(owner.Fraction)
			continue
		}
		index[owner.Name] = len(out)
		out = append(out, owner)
	}
	kept := out[:0]
	for _, owner := range out {
		if owner.Fraction.Abs().GreaterThan(FractionTolerance) {
			kept = append(kept, owner)
		}
	}
	return kept
}

// Validate checks the Owners invariant.
func (o Owners) Validate() error {
	if len(o) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(o))
	for _, owner := range o {
		if owner.Name == "" {
			return fmt.Errorf("owner without a name: %w", ErrInvalidOwnership)
		}
		if seen[owner.Name] {
			return fmt.Errorf("duplicate owner %s: %w", owner.Name, ErrInvalidOwnership)
		}
		seen[owner.Name] = true
		if !owner.Fraction.IsPositive() {
			return fmt.Errorf("owner %s has non-positive fraction %s: %w", owner.Name, owner.Fraction, ErrInvalidOwnership)
		}
	}
	if sum := o.Sum(); sum.Sub(hundred).Abs().GreaterThan(FractionTolerance) {
		return fmt.Errorf("fractions sum to %s instead of 100: %w", sum.StringFixed(6), ErrInvalidOwnership)
	}
	return nil
}

// IsValid reports whether Validate passes.
func (o Owners) IsValid() bool { return o.Validate() == nil }

// SameShares reports whether o and other hold the same names with the same
// fractions, regardless of order.
func (o Owners) SameShares(other Owners) bool {
	a, b := o.Grouped(), other.Grouped()
	if len(a) != len(b) {
		return false
	}
	sort.Slice(a, func(i, j int) bool { return a[i].Name < a[j].Name })
	sort.Slice(b, func(i, j int) bool { return b[i].Name < b[j].Name })
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Fraction.Sub(b[i].Fraction).Abs().GreaterThan(FractionTolerance) {
			return false
		}
	}
	return true
}

func (o Owners) clone() Owners {
	if o == nil {
		return nil
	}
	return append(Owners(nil), o...)
}

func (o Owners) String() string {
	parts := make([]string, 0, len(o))
	for _, owner := range o {
		parts = append(parts, fmt.Sprintf("%s:%s%%", owner.Name, owner.Fraction.StringFixed(2)))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Ownership is the right structure of one asset. When IsDismembered is false
// only FullOwners is populated; otherwise UsufructOwners and BareOwners are,
// and FullOwners is empty.
type Ownership struct {
	IsDismembered  bool   `yaml:"is_dismembered" json:"is_dismembered"`
	FullOwners     Owners `yaml:"full_owners,omitempty" json:"full_owners,omitempty"`
	UsufructOwners Owners `yaml:"usufruct_owners,omitempty" json:"usufruct_owners,omitempty"`
	BareOwners     Owners `yaml:"bare_owners,omitempty" json:"bare_owners,omitempty"`
}

// NewFullOwnership builds an undivided ownership.
func NewFullOwnership(owners ...Owner) Ownership {
	return Ownership{FullOwners: owners}
}

// NewDismemberedOwnership builds a usufruct / bare ownership split.
func NewDismemberedOwnership(usufruct, bare Owners) Ownership {
	return Ownership{IsDismembered: true, UsufructOwners: usufruct, BareOwners: bare}
}

// Clone returns a deep copy.
func (o Ownership) Clone() Ownership {
	return Ownership{
		IsDismembered:  o.IsDismembered,
		FullOwners:     o.FullOwners.clone(),
		UsufructOwners: o.UsufructOwners.clone(),
		BareOwners:     o.BareOwners.clone(),
	}
}

// Validate checks the Ownership invariant.
func (o Ownership) Validate() error {
	if !o.IsDismembered {
		if len(o.FullOwners) == 0 {
			return fmt.Errorf("no full owner: %w", ErrInvalidOwnership)
		}
		if len(o.UsufructOwners) > 0 || len(o.BareOwners) > 0 {
			return fmt.Errorf("undivided ownership with dismembered owners: %w", ErrInvalidOwnership)
		}
		if err := o.FullOwners.Validate(); err != nil {
			return fmt.Errorf("full owners: %w", err)
		}
		return nil
	}
	if len(o.FullOwners) > 0 {
		return fmt.Errorf("dismembered ownership with full owners: %w", ErrInvalidOwnership)
	}
	if len(o.UsufructOwners) == 0 || len(o.BareOwners) == 0 {
		return fmt.Errorf("dismembered ownership needs usufruct and bare owners: %w", ErrInvalidOwnership)
	}
	if err := o.UsufructOwners.Validate(); err != nil {
		return fmt.Errorf("usufruct owners: %w", err)
	}
	if err := o.BareOwners.Validate(); err != nil {
		return fmt.Errorf("bare owners: %w", err)
	}
	return nil
}

// IsValid reports whether Validate passes.
func (o Ownership) IsValid() bool { return o.Validate() == nil }

// GroupShares normalizes the ownership: duplicate names are folded, zero
// shares dropped, and a dismembered ownership whose usufruct and bare sets
// are identical collapses back to full ownership. It is idempotent.
func (o *Ownership) GroupShares() {
	if !o.IsDismembered {
		o.FullOwners = o.FullOwners.Grouped()
		return
	}
	o.UsufructOwners = o.UsufructOwners.Grouped()
	o.BareOwners = o.BareOwners.Grouped()
	if len(o.UsufructOwners) > 0 && o.UsufructOwners.SameShares(o.BareOwners) {
		o.FullOwners = o.BareOwners
		o.UsufructOwners = nil
		o.BareOwners = nil
		o.IsDismembered = false
	}
}

// HasFullOwnership reports whether name holds full ownership.
func (o Ownership) HasFullOwnership(name string) bool {
	return !o.IsDismembered && o.FullOwners.Contains(name)
}

// HasUsufruct reports whether name holds usufruct on a dismembered ownership.
func (o Ownership) HasUsufruct(name string) bool {
	return o.IsDismembered && o.UsufructOwners.Contains(name)
}

// HasBareOwnership reports whether name holds bare ownership.
func (o Ownership) HasBareOwnership(name string) bool {
	return o.IsDismembered && o.BareOwners.Contains(name)
}

// Owns reports whether name holds any right.
func (o Ownership) Owns(name string) bool {
	return o.HasFullOwnership(name) || o.HasUsufruct(name) || o.HasBareOwnership(name)
}

func (o Ownership) String() string {
	if !o.IsDismembered {
		return "PP" + o.FullOwners.String()
	}
	return "UF" + o.UsufructOwners.String() + " NP" + o.BareOwners.String()
}
