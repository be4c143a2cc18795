package compare

import (
	"fmt"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                  `json:"scenarioName"`
	Description  string                  `json:"description"`
	Summary      *domain.ScenarioSummary `json:"-"`

	// Key Metrics
	FirstPensionYear    int             `json:"firstPensionYear"`
	FirstYearNetPension decimal.Decimal `json:"firstYearNetPension"`
	LifetimeNetPension  decimal.Decimal `json:"lifetimeNetPension"`
	Successions         int             `json:"successions"`
	TotalDuties         decimal.Decimal `json:"totalDuties"`
	NetBenefit          decimal.Decimal `json:"netBenefit"`

	// Comparison to Base
	PensionDiffFromBase    decimal.Decimal `json:"pensionDiffFromBase"`
	PensionPctFromBase     decimal.Decimal `json:"pensionPctFromBase"`
	FirstPensionYearDiff   int             `json:"firstPensionYearDiff"`
	DutyDiffFromBase       decimal.Decimal `json:"dutyDiffFromBase"`
	NetBenefitDiffFromBase decimal.Decimal `json:"netBenefitDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	StartYear          int                `json:"startYear"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// ToScenarioComparison converts a ComparisonSet to a domain.ScenarioComparison
// so it can go through the report formatters.
func (cs *ComparisonSet) ToScenarioComparison() *domain.ScenarioComparison {
	scenarios := make([]domain.ScenarioSummary, 0, len(cs.AlternativeResults)+1)

	if cs.BaseResult != nil && cs.BaseResult.Summary != nil {
		scenarios = append(scenarios, *cs.BaseResult.Summary)
	}

	for _, result := range cs.AlternativeResults {
		if result.Summary != nil {
			scenarios = append(scenarios, *result.Summary)
		}
	}

	return &domain.ScenarioComparison{
		StartYear: cs.StartYear,
		Scenarios: scenarios,
	}
}

// MetricsCalculator extracts key metrics from scenario summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a scenario summary
func (mc *MetricsCalculator) CalculateMetrics(summary *domain.ScenarioSummary) ComparisonResult {
	duties := mc.calculateTotalDuties(summary)
	return ComparisonResult{
		ScenarioName:        summary.Name,
		Summary:             summary,
		FirstPensionYear:    summary.FirstPensionYear,
		FirstYearNetPension: summary.FirstYearNetPension,
		LifetimeNetPension:  summary.TotalNetPension,
		Successions:         len(summary.Successions),
		TotalDuties:         duties,
		NetBenefit:          summary.TotalNetPension.Sub(duties),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PensionDiffFromBase = scenario.LifetimeNetPension.Sub(base.LifetimeNetPension)

	if !base.LifetimeNetPension.IsZero() {
		scenario.PensionPctFromBase = scenario.PensionDiffFromBase.
			Div(base.LifetimeNetPension).
			Mul(decimal.NewFromInt(100))
	}

	if scenario.FirstPensionYear != 0 && base.FirstPensionYear != 0 {
		scenario.FirstPensionYearDiff = scenario.FirstPensionYear - base.FirstPensionYear
	}
	scenario.DutyDiffFromBase = scenario.TotalDuties.Sub(base.TotalDuties)
	scenario.NetBenefitDiffFromBase = scenario.NetBenefit.Sub(base.NetBenefit)

	return scenario
}

// calculateTotalDuties sums the duties of every succession in the window
func (mc *MetricsCalculator) calculateTotalDuties(summary *domain.ScenarioSummary) decimal.Decimal {
	total := decimal.Zero
	for _, r := range summary.Successions {
		total = total.Add(r.TotalDuty())
	}
	return total
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	best := func(better func(a, b *ComparisonResult) bool) *ComparisonResult {
		winner := compSet.BaseResult
		for i := range compSet.AlternativeResults {
			if better(&compSet.AlternativeResults[i], winner) {
				winner = &compSet.AlternativeResults[i]
			}
		}
		return winner
	}

	if b := best(func(a, b *ComparisonResult) bool { return a.LifetimeNetPension.GreaterThan(b.LifetimeNetPension) }); b != compSet.BaseResult {
		diff := b.LifetimeNetPension.Sub(compSet.BaseResult.LifetimeNetPension)
		recommendations = append(recommendations,
			"Best Pension: "+b.ScenarioName+" provides €"+diff.StringFixed(0)+
				" more lifetime net pension than base scenario")
	}

	if b := best(func(a, b *ComparisonResult) bool { return a.TotalDuties.LessThan(b.TotalDuties) }); b != compSet.BaseResult {
		savings := compSet.BaseResult.TotalDuties.Sub(b.TotalDuties)
		recommendations = append(recommendations,
			"Lowest Duties: "+b.ScenarioName+" saves heirs €"+savings.StringFixed(0)+" in succession duties")
	}

	if b := best(func(a, b *ComparisonResult) bool { return a.NetBenefit.GreaterThan(b.NetBenefit) }); b != compSet.BaseResult {
		diff := b.NetBenefit.Sub(compSet.BaseResult.NetBenefit)
		recommendations = append(recommendations,
			fmt.Sprintf("Best Overall: %s improves the household net benefit by €%s", b.ScenarioName, diff.StringFixed(0)))
	}

	return recommendations
}
