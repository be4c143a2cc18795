package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"First Pension Year",
		"First Year Net Pension",
		"Lifetime Net Pension",
		"Successions",
		"Total Duties",
		"Net Benefit",
		"Pension Diff from Base",
		"Pension % Change",
		"Duty Diff from Base",
		"Net Benefit Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.FirstPensionYear),
		result.FirstYearNetPension.StringFixed(2),
		result.LifetimeNetPension.StringFixed(2),
		strconv.Itoa(result.Successions),
		result.TotalDuties.StringFixed(2),
		result.NetBenefit.StringFixed(2),
		result.PensionDiffFromBase.StringFixed(2),
		result.PensionPctFromBase.StringFixed(2),
		result.DutyDiffFromBase.StringFixed(2),
		result.NetBenefitDiffFromBase.StringFixed(2),
	}
}
