package succession

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/shopspring/decimal"
)

// Relation is an heir's family tie to the decedent.
type Relation string

const (
	RelationSpouse Relation = "spouse"
	RelationChild  Relation = "child"
	RelationOther  Relation = "other"
)

// DutyCalculator computes the duties owed by one heir on what they receive.
type DutyCalculator interface {
	Duty(relation Relation, inherited, lifeInsurance decimal.Decimal) (succession, lifeInsuranceDuty decimal.Decimal, err error)
}

// Event is a death in the household.
type Event struct {
	Request
	Year int
}

// Relation returns how name relates to the decedent.
func (e Event) Relation(name string) Relation {
	if name == e.Spouse {
		return RelationSpouse
	}
	for _, c := range e.Children {
		if c == name {
			return RelationChild
		}
	}
	return RelationOther
}

// ProcessDeath applies Transfer to every asset and values what each heir
// received. The returned assets replace the input; the input is not
// modified. A nil duties skips the duty computation.
func ProcessDeath(ev Event, assets []domain.Asset, val domain.Valuator, duties DutyCalculator) ([]domain.Asset, domain.SuccessionResult, error) {
	result := domain.SuccessionResult{
		Decedent: ev.Decedent,
		Year:     ev.Year,
		Spouse:   ev.Spouse,
		Children: append([]string(nil), ev.Children...),
	}
	out := make([]domain.Asset, 0, len(assets))
	received := map[string]*domain.HeirDuty{}

	for _, asset := range assets {
		next := asset.Clone()
		rule := Classify(asset.Ownership, lifeInsuranceClause(asset), ev.Decedent)
		if rule == RuleNoRight {
			out = append(out, next)
			continue
		}

		after, err := Transfer(asset.Ownership, lifeInsuranceClause(asset), ev.Request)
		if err != nil {
			return nil, domain.SuccessionResult{}, fmt.Errorf("asset %s: %w", asset.Name, err)
		}
		next.Ownership = after
		out = append(out, next)

		transfer := domain.AssetTransfer{
			Asset:     asset.Name,
			Kind:      asset.Kind,
			Before:    asset.Ownership.Clone(),
			After:     after.Clone(),
			Inherited: map[string]decimal.Decimal{},
		}
		// The extinction of a usufruct reunites it with the bare ownership
		// and is not a taxable transfer.
		if rule != RuleUsufructOnly {
			gains, err := valueGains(val, asset, after, ev)
			if err != nil {
				return nil, domain.SuccessionResult{}, fmt.Errorf("asset %s: %w", asset.Name, err)
			}
			transfer.Inherited = gains
			for name, v := range gains {
				h, ok := received[name]
				if !ok {
					h = &domain.HeirDuty{Heir: name}
					received[name] = h
				}
				if asset.IsLifeInsurance() {
					h.LifeInsurance = h.LifeInsurance.Add(v)
				} else {
					h.Inherited = h.Inherited.Add(v)
				}
			}
		}
		result.Transfers = append(result.Transfers, transfer)
	}

	names := make([]string, 0, len(received))
	for name := range received {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h := received[name]
		if duties != nil {
			s, li, err := duties.Duty(ev.Relation(name), h.Inherited, h.LifeInsurance)
			if err != nil {
				return nil, domain.SuccessionResult{}, fmt.Errorf("duty for %s: %w", name, err)
			}
			h.SuccessionDuty, h.LifeInsuranceDuty = s, li
		}
		result.Duties = append(result.Duties, *h)
	}
	return out, result, nil
}

func lifeInsuranceClause(a domain.Asset) *domain.LifeInsuranceClause {
	if !a.IsLifeInsurance() {
		return nil
	}
	return a.Clause
}

// valueGains returns the positive change in owned value of every heir.
func valueGains(val domain.Valuator, asset domain.Asset, after domain.Ownership, ev Event) (map[string]decimal.Decimal, error) {
	method := domain.LegalSuccession
	if asset.IsLifeInsurance() {
		method = domain.LifeInsuranceSuccession
	}
	before, err := val.OwnedValues(asset.Ownership, asset.Value, method, ev.Year)
	if err != nil {
		return nil, err
	}
	now, err := val.OwnedValues(after, asset.Value, method, ev.Year)
	if err != nil {
		return nil, err
	}
	gains := map[string]decimal.Decimal{}
	for name, v := range now {
		if name == ev.Decedent {
			continue
		}
		if g := v.Sub(before[name]); g.IsPositive() {
			gains[name] = g
		}
	}
	return gains, nil
}
