package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/patrimoine/internal/calculation"
	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/rgehrsitz/patrimoine/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against
	Templates        []string // List of template names to apply
	AdultName        string   // Adult the templates act on
}

// Compare runs the base scenario then one alternative per template.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	ce.TemplateRegistry = transform.CreateBuiltInTemplates(options.AdultName)

	baseScenario, ok := config.FindScenario(options.BaseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
	}

	baseSummary, err := ce.CalcEngine.RunScenario(ctx, config, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseSummary)

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modifiedScenario, err := transform.ApplyTemplate(baseScenario, &config.Household, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		modifiedScenario.Name = baseScenario.Name + "_" + templateName

		altSummary, err := ce.CalcEngine.RunScenario(ctx, config, modifiedScenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(altSummary)
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   options.BaseScenarioName,
		StartYear:          config.GlobalAssumptions.StartYear,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	baseScenario, ok := config.FindScenario(baseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found", baseScenarioName)
	}
	baseSummary, err := ce.CalcEngine.RunScenario(ctx, config, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseSummary)

	alternatives := []ComparisonResult{}

	for _, altName := range alternativeScenarioNames {
		altScenario, ok := config.FindScenario(altName)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}
		altSummary, err := ce.CalcEngine.RunScenario(ctx, config, altScenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(altSummary)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenarioName,
		StartYear:          config.GlobalAssumptions.StartYear,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
