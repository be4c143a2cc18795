package domain

import "fmt"

// LifeInsuranceClause designates who receives a life-insurance contract on
// the insured's death, independently of who currently owns it.
type LifeInsuranceClause struct {
	IsDismembered bool `yaml:"is_dismembered" json:"is_dismembered"`
	// FullRecipients share full ownership equally when not dismembered.
	FullRecipients []string `yaml:"full_recipients,omitempty" json:"full_recipients,omitempty"`
	// UsufructRecipient and BareRecipients apply when dismembered.
	UsufructRecipient string   `yaml:"usufruct_recipient,omitempty" json:"usufruct_recipient,omitempty"`
	BareRecipients    []string `yaml:"bare_recipients,omitempty" json:"bare_recipients,omitempty"`
}

// Validate checks the designation matches the dismemberment flag.
func (c LifeInsuranceClause) Validate() error {
	if c.IsDismembered {
		if c.UsufructRecipient == "" {
			return fmt.Errorf("dismembered clause without usufruct recipient: %w", ErrInvalidClause)
		}
		if len(c.BareRecipients) == 0 {
			return fmt.Errorf("dismembered clause without bare recipients: %w", ErrInvalidClause)
		}
		return nil
	}
	if len(c.FullRecipients) == 0 {
		return fmt.Errorf("clause without recipients: %w", ErrInvalidClause)
	}
	return nil
}

// IsValid reports whether Validate passes.
func (c LifeInsuranceClause) IsValid() bool { return c.Validate() == nil }

// Ownership returns the ownership the clause produces once it pays out.
func (c LifeInsuranceClause) Ownership() (Ownership, error) {
	if err := c.Validate(); err != nil {
		return Ownership{}, err
	}
	if !c.IsDismembered {
		return NewFullOwnership(equalShares(c.FullRecipients)...), nil
	}
	return NewDismemberedOwnership(
		Owners{{Name: c.UsufructRecipient, Fraction: hundred}},
		equalShares(c.BareRecipients),
	), nil
}

func equalShares(names []string) Owners {
	out := make(Owners, 0, len(names))
	if len(names) == 0 {
		return out
	}
	share := hundred.Div(decimalFromInt(len(names)))
	for _, name := range names {
		out = append(out, Owner{Name: name, Fraction: share})
	}
	return out
}
