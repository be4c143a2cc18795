package output

import (
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter writes the full comparison with the recommendation.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	*domain.ScenarioComparison
	Recommendation jsonRecommendation `json:"recommendation"`
	Assumptions    []string           `json:"assumptions"`
}

type jsonRecommendation struct {
	ScenarioName string          `json:"scenario_name"`
	NetBenefit   decimal.Decimal `json:"net_benefit"`
	Delta        decimal.Decimal `json:"delta"`
}

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	rec := AnalyzeScenarios(results)
	report := jsonReport{
		ScenarioComparison: results,
		Recommendation:     jsonRecommendation(rec),
		Assumptions:        DefaultAssumptions,
	}
	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
