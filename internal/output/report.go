package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultAssumptions lists key modelling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Pensions are revalued yearly from the liquidation year at the regulatory rate",
	"Last regime statements are extrapolated linearly to the end of activity",
	"Social levies are flat rates on gross pension",
	"Succession duties ignore prior gifts and disability allowances",
	"The surviving spouse is exempt from succession duties",
}

// GenerateReport renders results with the named formatter to w.
func GenerateReport(w io.Writer, results *domain.ScenarioComparison, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveConfiguration writes config back to YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// FormatCurrency formats a decimal as an euro amount.
func FormatCurrency(amount decimal.Decimal) string {
	return "€" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// Recommendation names the scenario leaving the most to the household:
// lifetime net pension minus the duties paid by heirs.
type Recommendation struct {
	ScenarioName string
	NetBenefit   decimal.Decimal
	// Delta is measured against the first scenario.
	Delta decimal.Decimal
}

// NetBenefit is the lifetime net pension of s minus every succession duty.
func NetBenefit(s domain.ScenarioSummary) decimal.Decimal {
	total := s.TotalNetPension
	for _, r := range s.Successions {
		total = total.Sub(r.TotalDuty())
	}
	return total
}

// AnalyzeScenarios picks the scenario with the highest net benefit. The
// first scenario wins ties.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil || len(results.Scenarios) == 0 {
		return Recommendation{}
	}
	base := NetBenefit(results.Scenarios[0])
	best := Recommendation{ScenarioName: results.Scenarios[0].Name, NetBenefit: base}
	for _, s := range results.Scenarios[1:] {
		if v := NetBenefit(s); v.GreaterThan(best.NetBenefit) {
			best = Recommendation{ScenarioName: s.Name, NetBenefit: v}
		}
	}
	best.Delta = best.NetBenefit.Sub(base)
	return best
}
