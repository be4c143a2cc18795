package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains all regulatory/legal data that applies uniformly.
// It is loaded from regulatory.yaml, initialized once, and then shared
// read-only by every engine and every simulation run.
type RegulatoryConfig struct {
	Metadata      RegulatoryMetadata `yaml:"metadata" json:"metadata"`
	GeneralRegime GeneralRegimeRules `yaml:"general_regime" json:"general_regime"`
	PointsRegime  PointsRegimeRules  `yaml:"points_regime" json:"points_regime"`
	Demembrement  DemembrementGrid   `yaml:"demembrement" json:"demembrement"`
	SocialLevies  SocialLevyRules    `yaml:"social_levies" json:"social_levies"`
	Inheritance   InheritanceRules   `yaml:"inheritance" json:"inheritance"`
	// PensionDevaluationRate is the yearly revaluation of liquidated pensions, in percent.
	PensionDevaluationRate decimal.Decimal `yaml:"pension_devaluation_rate" json:"pension_devaluation_rate"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// ReferenceDurationEntry applies to people born in BirthYear or later.
type ReferenceDurationEntry struct {
	BirthYear        int `yaml:"birth_year" json:"birth_year"`
	RequiredQuarters int `yaml:"required_quarters" json:"required_quarters"`
	FullRateAge      int `yaml:"full_rate_age" json:"full_rate_age"`
}

// UnemploymentCreditEntry caps the quarters credited for the non-indemnified
// unemployment period that follows the end of the allowance, by age at the
// end of the allowance.
type UnemploymentCreditEntry struct {
	FromAge     int `yaml:"from_age" json:"from_age"`
	MaxQuarters int `yaml:"max_quarters" json:"max_quarters"`
}

// GeneralRegimeRules parameterize the general wage-earner regime.
type GeneralRegimeRules struct {
	ReferenceDurations  []ReferenceDurationEntry  `yaml:"reference_durations" json:"reference_durations"`
	UnemploymentCredits []UnemploymentCreditEntry `yaml:"unemployment_credits" json:"unemployment_credits"`
	// Rates are percentages.
	MaxRate               decimal.Decimal `yaml:"max_rate" json:"max_rate"`
	DecoteRatePerQuarter  decimal.Decimal `yaml:"decote_rate_per_quarter" json:"decote_rate_per_quarter"`
	SurcoteRatePerQuarter decimal.Decimal `yaml:"surcote_rate_per_quarter" json:"surcote_rate_per_quarter"`
	MaxDiscountQuarters   int             `yaml:"max_discount_quarters" json:"max_discount_quarters"`
	ChildBonusMinChildren int             `yaml:"child_bonus_min_children" json:"child_bonus_min_children"`
	ChildBonusPercent     decimal.Decimal `yaml:"child_bonus_percent" json:"child_bonus_percent"`
}

// QuarterCoefficientEntry is a permanent points-regime coefficient applied
// when MissingQuarters or more quarters are missing for full rate.
type QuarterCoefficientEntry struct {
	MissingQuarters int             `yaml:"missing_quarters" json:"missing_quarters"`
	Coefficient     decimal.Decimal `yaml:"coefficient" json:"coefficient"`
}

// DeferralEntry is a temporary points-regime coefficient applied when the
// pension is claimed DelayYears or more after the full-rate year. It lasts
// WindowYears from the liquidation year.
type DeferralEntry struct {
	DelayYears  int             `yaml:"delay_years" json:"delay_years"`
	Coefficient decimal.Decimal `yaml:"coefficient" json:"coefficient"`
	WindowYears int             `yaml:"window_years" json:"window_years"`
}

// PointsRegimeRules parameterize the complementary points regime.
type PointsRegimeRules struct {
	MinimumClaimAge int                       `yaml:"minimum_claim_age" json:"minimum_claim_age"`
	PointValue      decimal.Decimal           `yaml:"point_value" json:"point_value"`
	BeforeFullRate  []QuarterCoefficientEntry `yaml:"before_full_rate" json:"before_full_rate"`
	AfterFullRate   []DeferralEntry           `yaml:"after_full_rate" json:"after_full_rate"`
	// CutoffAge ends every temporary coefficient.
	CutoffAge              int             `yaml:"cutoff_age" json:"cutoff_age"`
	OneChildCoefficient    decimal.Decimal `yaml:"one_child_coefficient" json:"one_child_coefficient"`
	TwoChildrenCoefficient decimal.Decimal `yaml:"two_children_coefficient" json:"two_children_coefficient"`
}

// SocialLevyRules are the levies withheld from gross pensions, in percent.
type SocialLevyRules struct {
	CSG  decimal.Decimal `yaml:"csg" json:"csg"`
	CRDS decimal.Decimal `yaml:"crds" json:"crds"`
	CASA decimal.Decimal `yaml:"casa" json:"casa"`
}

// Total returns the summed levy rate.
func (s SocialLevyRules) Total() decimal.Decimal {
	return s.CSG.Add(s.CRDS).Add(s.CASA)
}

// InheritanceRules parameterize succession and life-insurance duties.
type InheritanceRules struct {
	ChildAllowance decimal.Decimal `yaml:"child_allowance" json:"child_allowance"`
	ChildGrid      RateGrid        `yaml:"child_grid" json:"child_grid"`
	OtherAllowance decimal.Decimal `yaml:"other_allowance" json:"other_allowance"`
	OtherRate      decimal.Decimal `yaml:"other_rate" json:"other_rate"`
	// Life-insurance payouts are taxed per beneficiary after their own allowance.
	LifeInsuranceAllowance decimal.Decimal `yaml:"life_insurance_allowance" json:"life_insurance_allowance"`
	LifeInsuranceGrid      RateGrid        `yaml:"life_insurance_grid" json:"life_insurance_grid"`
}

// Initialize derives grid discounts and validates every table. It must be
// called once after loading.
func (rc *RegulatoryConfig) Initialize() error {
	if err := rc.Inheritance.ChildGrid.Initialize(); err != nil {
		return fmt.Errorf("inheritance child grid: %w", err)
	}
	if err := rc.Inheritance.LifeInsuranceGrid.Initialize(); err != nil {
		return fmt.Errorf("life insurance grid: %w", err)
	}
	if err := rc.GeneralRegime.Validate(); err != nil {
		return fmt.Errorf("general regime: %w", err)
	}
	if err := rc.PointsRegime.Validate(); err != nil {
		return fmt.Errorf("points regime: %w", err)
	}
	if err := rc.Demembrement.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks the general regime tables.
func (g GeneralRegimeRules) Validate() error {
	if len(g.ReferenceDurations) == 0 {
		return fmt.Errorf("reference durations are required")
	}
	if !ascendingKeys(g.ReferenceDurations, func(e ReferenceDurationEntry) int { return e.BirthYear }) {
		return fmt.Errorf("reference durations: %w", ErrUnsortedGrid)
	}
	for _, e := range g.ReferenceDurations {
		if e.RequiredQuarters <= 0 || e.FullRateAge <= 0 {
			return fmt.Errorf("reference duration for %d must have positive quarters and age", e.BirthYear)
		}
	}
	if !ascendingKeys(g.UnemploymentCredits, func(e UnemploymentCreditEntry) int { return e.FromAge }) {
		return fmt.Errorf("unemployment credits: %w", ErrUnsortedGrid)
	}
	if !g.MaxRate.IsPositive() {
		return fmt.Errorf("max rate must be positive")
	}
	if g.MaxDiscountQuarters <= 0 {
		return fmt.Errorf("max discount quarters must be positive")
	}
	return nil
}

// Validate checks the points regime tables.
func (p PointsRegimeRules) Validate() error {
	if p.MinimumClaimAge <= 0 {
		return fmt.Errorf("minimum claim age must be positive")
	}
	if !p.PointValue.IsPositive() {
		return fmt.Errorf("point value must be positive")
	}
	if len(p.BeforeFullRate) == 0 || p.BeforeFullRate[0].MissingQuarters != 0 {
		return fmt.Errorf("before-full-rate grid must start at 0 missing quarters")
	}
	if !ascendingKeys(p.BeforeFullRate, func(e QuarterCoefficientEntry) int { return e.MissingQuarters }) {
		return fmt.Errorf("before-full-rate grid: %w", ErrUnsortedGrid)
	}
	if len(p.AfterFullRate) == 0 || p.AfterFullRate[0].DelayYears != 0 {
		return fmt.Errorf("after-full-rate table must start at 0 delay years")
	}
	if !ascendingKeys(p.AfterFullRate, func(e DeferralEntry) int { return e.DelayYears }) {
		return fmt.Errorf("after-full-rate table: %w", ErrUnsortedGrid)
	}
	if p.CutoffAge <= p.MinimumClaimAge {
		return fmt.Errorf("cutoff age must be after minimum claim age")
	}
	return nil
}
