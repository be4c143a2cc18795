package domain

import (
	"github.com/shopspring/decimal"
)

// GeneralPension is the general-regime pension of one adult for one year,
// with the intermediate values used to compute it.
type GeneralPension struct {
	ReferenceDuration int             `json:"reference_duration"`
	FullRateAge       int             `json:"full_rate_age"`
	InsuredUncapped   int             `json:"insured_uncapped"`
	InsuredCapped     int             `json:"insured_capped"`
	DiscountQuarters  int             `json:"discount_quarters"`
	BonusQuarters     int             `json:"bonus_quarters"`
	Rate              decimal.Decimal `json:"rate"`
	ChildBonusPercent decimal.Decimal `json:"child_bonus_percent"`
	Revaluation       decimal.Decimal `json:"revaluation"`
	Gross             decimal.Decimal `json:"gross"`
	Net               decimal.Decimal `json:"net"`
}

// PointsPension is the points-regime pension of one adult for one year.
type PointsPension struct {
	ProjectedPoints  int             `json:"projected_points"`
	Coefficient      decimal.Decimal `json:"coefficient"`
	ChildCoefficient decimal.Decimal `json:"child_coefficient"`
	Revaluation      decimal.Decimal `json:"revaluation"`
	Gross            decimal.Decimal `json:"gross"`
	Net              decimal.Decimal `json:"net"`
}

// PersonPensionYear is one row of an adult's pension projection. A nil
// regime pension means the regime is not payable that year.
type PersonPensionYear struct {
	Year    int             `json:"year"`
	Name    string          `json:"name"`
	Age     int             `json:"age"`
	General *GeneralPension `json:"general,omitempty"`
	Points  *PointsPension  `json:"points,omitempty"`
}

// TotalGross sums both regimes.
func (p PersonPensionYear) TotalGross() decimal.Decimal {
	total := decimal.Zero
	if p.General != nil {
		total = total.Add(p.General.Gross)
	}
	if p.Points != nil {
		total = total.Add(p.Points.Gross)
	}
	return total
}

// TotalNet sums both regimes.
func (p PersonPensionYear) TotalNet() decimal.Decimal {
	total := decimal.Zero
	if p.General != nil {
		total = total.Add(p.General.Net)
	}
	if p.Points != nil {
		total = total.Add(p.Points.Net)
	}
	return total
}

// IsPaying reports whether any regime pays this year.
func (p PersonPensionYear) IsPaying() bool { return p.General != nil || p.Points != nil }

// HouseholdPensionYear aggregates every adult for one year.
type HouseholdPensionYear struct {
	Year    int                 `json:"year"`
	Persons []PersonPensionYear `json:"persons"`
}

// TotalNet sums every adult's net pension.
func (h HouseholdPensionYear) TotalNet() decimal.Decimal {
	total := decimal.Zero
	for _, p := range h.Persons {
		total = total.Add(p.TotalNet())
	}
	return total
}

// TotalGross sums every adult's gross pension.
func (h HouseholdPensionYear) TotalGross() decimal.Decimal {
	total := decimal.Zero
	for _, p := range h.Persons {
		total = total.Add(p.TotalGross())
	}
	return total
}

// AssetTransfer records how one asset changed hands on a death.
type AssetTransfer struct {
	Asset     string                     `json:"asset"`
	Kind      AssetKind                  `json:"kind"`
	Before    Ownership                  `json:"before"`
	After     Ownership                  `json:"after"`
	Inherited map[string]decimal.Decimal `json:"inherited"`
}

// HeirDuty is the duty owed by one heir.
type HeirDuty struct {
	Heir              string          `json:"heir"`
	Inherited         decimal.Decimal `json:"inherited"`
	LifeInsurance     decimal.Decimal `json:"life_insurance"`
	SuccessionDuty    decimal.Decimal `json:"succession_duty"`
	LifeInsuranceDuty decimal.Decimal `json:"life_insurance_duty"`
}

// TotalDuty sums both duties.
func (h HeirDuty) TotalDuty() decimal.Decimal {
	return h.SuccessionDuty.Add(h.LifeInsuranceDuty)
}

// SuccessionResult is the outcome of one death event.
type SuccessionResult struct {
	Decedent  string          `json:"decedent"`
	Year      int             `json:"year"`
	Spouse    string          `json:"spouse,omitempty"`
	Children  []string        `json:"children,omitempty"`
	Transfers []AssetTransfer `json:"transfers"`
	Duties    []HeirDuty      `json:"duties"`
}

// TotalDuty sums every heir's duty.
func (s SuccessionResult) TotalDuty() decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.Duties {
		total = total.Add(d.TotalDuty())
	}
	return total
}

// ScenarioSummary is the outcome of one scenario.
type ScenarioSummary struct {
	Name                string                 `json:"name"`
	Projection          []HouseholdPensionYear `json:"projection"`
	FirstPensionYear    int                    `json:"first_pension_year"`
	FirstYearNetPension decimal.Decimal        `json:"first_year_net_pension"`
	TotalNetPension     decimal.Decimal        `json:"total_net_pension"`
	Successions         []SuccessionResult     `json:"successions,omitempty"`
}

// ScenarioComparison holds every scenario of a run.
type ScenarioComparison struct {
	StartYear int               `json:"start_year"`
	Scenarios []ScenarioSummary `json:"scenarios"`
}
