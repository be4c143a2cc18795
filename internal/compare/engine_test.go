package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/patrimoine/internal/calculation"
	"github.com/rgehrsitz/patrimoine/internal/config"
	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadExample(t *testing.T) (*domain.Configuration, *CompareEngine) {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile("../config/testdata/household.yaml")
	require.NoError(t, err)
	return cfg, NewCompareEngine(calculation.NewCalculationEngine(cfg.Regulatory))
}

func TestCompareEngine_Compare(t *testing.T) {
	cfg, ce := loadExample(t)

	set, err := ce.Compare(context.Background(), cfg, CompareOptions{
		BaseScenarioName: "Planned",
		Templates:        []string{"postpone_1yr", "death_at_85"},
		AdultName:        "Paul",
	})
	require.NoError(t, err)

	assert.Equal(t, "Planned", set.BaseScenarioName)
	assert.Equal(t, 2026, set.StartYear)
	require.NotNil(t, set.BaseResult)
	require.Len(t, set.AlternativeResults, 2)
	assert.Equal(t, "Planned_postpone_1yr", set.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "Postpone retirement by 1 year(s)", set.AlternativeResults[0].Description)
	assert.Equal(t, "Planned_death_at_85", set.AlternativeResults[1].ScenarioName)

	for _, alt := range set.AlternativeResults {
		assert.True(t, alt.PensionDiffFromBase.Equal(alt.LifetimeNetPension.Sub(set.BaseResult.LifetimeNetPension)))
		assert.True(t, alt.NetBenefit.Equal(alt.LifetimeNetPension.Sub(alt.TotalDuties)))
	}

	// Paul dies at 80 in the plan (2044), inside the window; at 85 it is 2049.
	require.Len(t, set.BaseResult.Summary.Successions, 1)
	assert.Equal(t, 2044, set.BaseResult.Summary.Successions[0].Year)
	require.Len(t, set.AlternativeResults[1].Summary.Successions, 1)
	assert.Equal(t, 2049, set.AlternativeResults[1].Summary.Successions[0].Year)

	// The configured scenario is left untouched.
	planned, _ := cfg.FindScenario("Planned")
	assert.Equal(t, "Planned", planned.Name)
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	cfg, ce := loadExample(t)
	ctx := context.Background()

	_, err := ce.Compare(ctx, cfg, CompareOptions{BaseScenarioName: "Missing", AdultName: "Paul"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base scenario Missing not found")

	_, err = ce.Compare(ctx, cfg, CompareOptions{BaseScenarioName: "Planned", AdultName: "Paul", Templates: []string{"retire_yesterday"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template retire_yesterday not found")

	_, err = ce.Compare(ctx, cfg, CompareOptions{BaseScenarioName: "Planned", AdultName: "Nobody", Templates: []string{"death_at_75"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply template death_at_75")
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	cfg, ce := loadExample(t)

	set, err := ce.CompareScenarios(context.Background(), cfg, "Planned", []string{"Late liquidation", "Quarter option"})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)

	late := set.AlternativeResults[0]
	assert.Equal(t, "Late liquidation", late.ScenarioName)
	assert.Equal(t, 4, late.FirstPensionYearDiff, "Paul liquidates in 2032 instead of 2028")

	_, err = ce.CompareScenarios(context.Background(), cfg, "Planned", []string{"Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alternative scenario Missing not found")

	_, err = ce.CompareScenarios(context.Background(), cfg, "Missing", nil)
	assert.Error(t, err)
}
