package compare

import (
	"testing"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/shopspring/decimal"
)

func dutySuccession(decedent string, duty int64) domain.SuccessionResult {
	return domain.SuccessionResult{
		Decedent: decedent,
		Duties:   []domain.HeirDuty{{Heir: "Lea", SuccessionDuty: decimal.NewFromInt(duty)}},
	}
}

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	summary := &domain.ScenarioSummary{
		Name:                "Test Scenario",
		FirstPensionYear:    2028,
		FirstYearNetPension: decimal.NewFromInt(20000),
		TotalNetPension:     decimal.NewFromInt(600000),
		Successions: []domain.SuccessionResult{
			dutySuccession("Paul", 12000),
			dutySuccession("Marie", 3000),
		},
	}

	result := calc.CalculateMetrics(summary)

	if result.ScenarioName != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got %s", result.ScenarioName)
	}

	if result.FirstPensionYear != 2028 {
		t.Errorf("Expected first pension year 2028, got %d", result.FirstPensionYear)
	}

	if !result.LifetimeNetPension.Equal(decimal.NewFromInt(600000)) {
		t.Errorf("Expected lifetime pension 600000, got %s", result.LifetimeNetPension.String())
	}

	if result.Successions != 2 {
		t.Errorf("Expected 2 successions, got %d", result.Successions)
	}

	// 12000 + 3000
	if !result.TotalDuties.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Expected total duties 15000, got %s", result.TotalDuties.String())
	}

	if !result.NetBenefit.Equal(decimal.NewFromInt(585000)) {
		t.Errorf("Expected net benefit 585000, got %s", result.NetBenefit.String())
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		ScenarioName:       "Base",
		FirstPensionYear:   2028,
		LifetimeNetPension: decimal.NewFromInt(600000),
		TotalDuties:        decimal.NewFromInt(15000),
		NetBenefit:         decimal.NewFromInt(585000),
	}

	scenario := ComparisonResult{
		ScenarioName:       "Alternative",
		FirstPensionYear:   2030,
		LifetimeNetPension: decimal.NewFromInt(640000),
		TotalDuties:        decimal.NewFromInt(20000),
		NetBenefit:         decimal.NewFromInt(620000),
	}

	result := calc.CalculateComparison(scenario, base)

	if !result.PensionDiffFromBase.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("Expected pension diff 40000, got %s", result.PensionDiffFromBase.String())
	}

	// 40000 / 600000 * 100
	expectedPct := decimal.NewFromFloat(6.666666666666667)
	if result.PensionPctFromBase.Sub(expectedPct).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		t.Errorf("Expected pension pct ~6.67, got %s", result.PensionPctFromBase.String())
	}

	if result.FirstPensionYearDiff != 2 {
		t.Errorf("Expected first pension year diff 2, got %d", result.FirstPensionYearDiff)
	}

	if !result.DutyDiffFromBase.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Expected duty diff 5000, got %s", result.DutyDiffFromBase.String())
	}

	if !result.NetBenefitDiffFromBase.Equal(decimal.NewFromInt(35000)) {
		t.Errorf("Expected net benefit diff 35000, got %s", result.NetBenefitDiffFromBase.String())
	}
}

func TestMetricsCalculator_CalculateComparison_ZeroBase(t *testing.T) {
	result := NewMetricsCalculator().CalculateComparison(
		ComparisonResult{LifetimeNetPension: decimal.NewFromInt(1000), FirstPensionYear: 2030},
		ComparisonResult{},
	)

	if !result.PensionPctFromBase.IsZero() {
		t.Errorf("Expected zero pct against a zero base, got %s", result.PensionPctFromBase.String())
	}
	if result.FirstPensionYearDiff != 0 {
		t.Errorf("Expected no year diff when base never pays, got %d", result.FirstPensionYearDiff)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	baseResult := &ComparisonResult{
		ScenarioName:       "Base",
		LifetimeNetPension: decimal.NewFromInt(600000),
		TotalDuties:        decimal.NewFromInt(15000),
		NetBenefit:         decimal.NewFromInt(585000),
	}

	alt1 := ComparisonResult{
		ScenarioName:       "Alternative 1",
		LifetimeNetPension: decimal.NewFromInt(650000),
		TotalDuties:        decimal.NewFromInt(40000),
		NetBenefit:         decimal.NewFromInt(610000),
	}

	alt2 := ComparisonResult{
		ScenarioName:       "Alternative 2",
		LifetimeNetPension: decimal.NewFromInt(600000),
		TotalDuties:        decimal.NewFromInt(5000),
		NetBenefit:         decimal.NewFromInt(595000),
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   "Base",
		BaseResult:         baseResult,
		AlternativeResults: []ComparisonResult{alt1, alt2},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 3 {
		t.Fatalf("Expected 3 recommendations, got %v", recommendations)
	}

	if !contains(recommendations[0], "Best Pension: Alternative 1") || !contains(recommendations[0], "€50000") {
		t.Errorf("Unexpected pension recommendation: %s", recommendations[0])
	}

	if !contains(recommendations[1], "Lowest Duties: Alternative 2") || !contains(recommendations[1], "€10000") {
		t.Errorf("Unexpected duty recommendation: %s", recommendations[1])
	}

	if !contains(recommendations[2], "Best Overall: Alternative 1") || !contains(recommendations[2], "€25000") {
		t.Errorf("Unexpected overall recommendation: %s", recommendations[2])
	}
}

func TestGenerateRecommendations_EmptyAlternatives(t *testing.T) {
	compSet := &ComparisonSet{
		BaseScenarioName:   "Base",
		BaseResult:         &ComparisonResult{ScenarioName: "Base"},
		AlternativeResults: []ComparisonResult{},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %d", len(recommendations))
	}
}

func TestGenerateRecommendations_NoBetterThanBase(t *testing.T) {
	baseResult := &ComparisonResult{
		ScenarioName:       "Base",
		LifetimeNetPension: decimal.NewFromInt(600000),
		TotalDuties:        decimal.NewFromInt(15000),
		NetBenefit:         decimal.NewFromInt(585000),
	}

	alt1 := ComparisonResult{
		ScenarioName:       "Alternative 1",
		LifetimeNetPension: decimal.NewFromInt(590000),
		TotalDuties:        decimal.NewFromInt(15000),
		NetBenefit:         decimal.NewFromInt(575000),
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   "Base",
		BaseResult:         baseResult,
		AlternativeResults: []ComparisonResult{alt1},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) > 0 {
		t.Logf("Recommendations: %v", recommendations)
		t.Error("Expected no recommendations when alternatives are worse than base")
	}
}
