// Package succession rewrites asset ownership when a household member dies.
package succession

import (
	"fmt"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/shopspring/decimal"
)

// Request describes who died and who survives them.
type Request struct {
	Decedent string
	// Spouse is empty when no spouse survives.
	Spouse   string
	Children []string
	// FiscalOption is only read when both a spouse and children survive.
	FiscalOption domain.FiscalOption
}

// Rule identifies which row of the transfer table applied.
type Rule int

const (
	RuleNoRight Rule = iota
	RuleLifeInsuranceClause
	RuleFullOwnership
	RuleUsufructAndBare
	RuleUsufructOnly
	RuleBareOnly
)

func (r Rule) String() string {
	switch r {
	case RuleNoRight:
		return "no right held"
	case RuleLifeInsuranceClause:
		return "beneficiary clause"
	case RuleFullOwnership:
		return "full ownership"
	case RuleUsufructAndBare:
		return "usufruct and bare ownership"
	case RuleUsufructOnly:
		return "usufruct only"
	case RuleBareOnly:
		return "bare ownership only"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// heir is the share of each transferred component one heir receives, as a
// fraction in [0,1].
type heir struct {
	name     string
	usufruct decimal.Decimal
	bare     decimal.Decimal
}

var one = decimal.NewFromInt(1)

// heirs applies the spouse/children rule.
func heirs(req Request) ([]heir, error) {
	n := len(req.Children)
	switch {
	case req.Spouse == "" && n == 0:
		return nil, fmt.Errorf("%s: %w", req.Decedent, domain.ErrNoHeir)
	case req.Spouse == "":
		share := one.Div(decimal.NewFromInt(int64(n)))
		out := make([]heir, 0, n)
		for _, c := range req.Children {
			out = append(out, heir{name: c, usufruct: share, bare: share})
		}
		return out, nil
	case n == 0:
		return []heir{{name: req.Spouse, usufruct: one, bare: one}}, nil
	}

	if req.FiscalOption == "" {
		return nil, fmt.Errorf("%s survived by %s and %d children: %w", req.Decedent, req.Spouse, n, domain.ErrMissingFiscalOption)
	}
	shares, err := req.FiscalOption.Shares(n)
	if err != nil {
		return nil, err
	}
	out := []heir{{name: req.Spouse, usufruct: shares.SpouseUsufruct, bare: shares.SpouseBare}}
	for _, c := range req.Children {
		out = append(out, heir{name: c, usufruct: shares.ChildUsufruct, bare: shares.ChildBare})
	}
	return out, nil
}

// Classify returns the table row that applies to the decedent's rights.
func Classify(own domain.Ownership, clause *domain.LifeInsuranceClause, decedent string) Rule {
	switch {
	case !own.Owns(decedent):
		return RuleNoRight
	case !own.IsDismembered:
		if clause != nil && len(own.FullOwners) == 1 {
			return RuleLifeInsuranceClause
		}
		return RuleFullOwnership
	case own.HasUsufruct(decedent) && own.HasBareOwnership(decedent):
		return RuleUsufructAndBare
	case own.HasUsufruct(decedent):
		return RuleUsufructOnly
	default:
		return RuleBareOnly
	}
}

// Transfer returns the ownership that results from the decedent's death.
// The input is not modified. clause is nil for assets without a beneficiary
// designation.
func Transfer(own domain.Ownership, clause *domain.LifeInsuranceClause, req Request) (domain.Ownership, error) {
	if err := own.Validate(); err != nil {
		return domain.Ownership{}, err
	}

	var (
		out domain.Ownership
		err error
	)
	switch Classify(own, clause, req.Decedent) {
	case RuleNoRight:
		return own.Clone(), nil
	case RuleLifeInsuranceClause:
		out, err = clause.Ownership()
	case RuleFullOwnership:
		out, err = transferFull(own, req)
	case RuleUsufructAndBare:
		out, err = transferBoth(own, req)
	case RuleUsufructOnly:
		out = transferUsufruct(own, req)
	case RuleBareOnly:
		out, err = transferBare(own, req)
	}
	if err != nil {
		return domain.Ownership{}, err
	}

	out.GroupShares()
	if err := out.Validate(); err != nil {
		return domain.Ownership{}, fmt.Errorf("after transfer from %s: %w", req.Decedent, err)
	}
	return out, nil
}

// transferFull splits the decedent's full share into usufruct and bare
// components. Other full owners keep both components, so the result
// collapses back to full ownership when every heir receives both equally.
func transferFull(own domain.Ownership, req Request) (domain.Ownership, error) {
	hs, err := heirs(req)
	if err != nil {
		return domain.Ownership{}, err
	}
	f := own.FullOwners.Fraction(req.Decedent)
	usufruct := own.FullOwners.Without(req.Decedent)
	bare := own.FullOwners.Without(req.Decedent)
	for _, h := range hs {
		usufruct = append(usufruct, domain.Owner{Name: h.name, Fraction: f.Mul(h.usufruct)})
		bare = append(bare, domain.Owner{Name: h.name, Fraction: f.Mul(h.bare)})
	}
	return domain.NewDismemberedOwnership(usufruct, bare), nil
}

func transferBoth(own domain.Ownership, req Request) (domain.Ownership, error) {
	hs, err := heirs(req)
	if err != nil {
		return domain.Ownership{}, err
	}
	u := own.UsufructOwners.Fraction(req.Decedent)
	b := own.BareOwners.Fraction(req.Decedent)
	usufruct := own.UsufructOwners.Without(req.Decedent)
	bare := own.BareOwners.Without(req.Decedent)
	for _, h := range hs {
		usufruct = append(usufruct, domain.Owner{Name: h.name, Fraction: u.Mul(h.usufruct)})
		bare = append(bare, domain.Owner{Name: h.name, Fraction: b.Mul(h.bare)})
	}
	return domain.NewDismemberedOwnership(usufruct, bare), nil
}

// transferUsufruct hands the decedent's usufruct to the surviving children
// who already hold bare rights, in proportion to their bare shares. Without
// such a child it goes to the spouse, and failing that it is reunited with
// the bare ownership of every bare owner.
func transferUsufruct(own domain.Ownership, req Request) domain.Ownership {
	u := own.UsufructOwners.Fraction(req.Decedent)
	usufruct := own.UsufructOwners.Without(req.Decedent)
	bare := append(domain.Owners(nil), own.BareOwners...)

	receivers := domain.Owners{}
	for _, c := range req.Children {
		if f := own.BareOwners.Fraction(c); f.IsPositive() {
			receivers = append(receivers, domain.Owner{Name: c, Fraction: f})
		}
	}
	if len(receivers) == 0 && req.Spouse != "" {
		usufruct = append(usufruct, domain.Owner{Name: req.Spouse, Fraction: u})
		return domain.NewDismemberedOwnership(usufruct, bare)
	}
	if len(receivers) == 0 {
		receivers = own.BareOwners
	}

	total := receivers.Sum()
	for _, r := range receivers {
		usufruct = append(usufruct, domain.Owner{Name: r.Name, Fraction: u.Mul(r.Fraction).Div(total)})
	}
	return domain.NewDismemberedOwnership(usufruct, bare)
}

func transferBare(own domain.Ownership, req Request) (domain.Ownership, error) {
	hs, err := heirs(req)
	if err != nil {
		return domain.Ownership{}, err
	}
	b := own.BareOwners.Fraction(req.Decedent)
	usufruct := append(domain.Owners(nil), own.UsufructOwners...)
	bare := own.BareOwners.Without(req.Decedent)
	for _, h := range hs {
		bare = append(bare, domain.Owner{Name: h.name, Fraction: b.Mul(h.bare)})
	}
	return domain.NewDismemberedOwnership(usufruct, bare), nil
}
