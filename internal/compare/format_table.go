package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("PENSION AND SUCCESSION SCENARIO COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "1st Year",
		numWidth, "Lifetime Net",
		numWidth, "Duties",
		numWidth, "Net Benefit"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Lifetime Pension: %s€%s (%s%%)\n",
				tf.deltaSymbol(alt.PensionDiffFromBase),
				tf.formatDecimal(alt.PensionDiffFromBase.Abs()),
				alt.PensionPctFromBase.StringFixed(1)))

			if alt.FirstPensionYearDiff != 0 {
				sign := "+"
				if alt.FirstPensionYearDiff < 0 {
					sign = ""
				}
				sb.WriteString(fmt.Sprintf("  First Pension:    %s%d years\n", sign, alt.FirstPensionYearDiff))
			}

			if !alt.DutyDiffFromBase.IsZero() {
				// Lower duties are better.
				sb.WriteString(fmt.Sprintf("  Duty Impact:      %s€%s\n",
					tf.deltaSymbol(alt.DutyDiffFromBase.Neg()),
					tf.formatDecimal(alt.DutyDiffFromBase.Abs())))
			}

			sb.WriteString(fmt.Sprintf("  Net Benefit:      %s€%s\n",
				tf.deltaSymbol(alt.NetBenefitDiffFromBase),
				tf.formatDecimal(alt.NetBenefitDiffFromBase.Abs())))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	first := "none"
	if result.FirstPensionYear != 0 {
		first = fmt.Sprintf("%d", result.FirstPensionYear)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, first,
		numWidth, "€"+tf.formatDecimal(result.LifetimeNetPension),
		numWidth, "€"+tf.formatDecimal(result.TotalDuties),
		numWidth, "€"+tf.formatDecimal(result.NetBenefit))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas (positive is green concept)
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.NetBenefitDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+€%s", tf.formatDecimal(alt.NetBenefitDiffFromBase))
		} else if alt.NetBenefitDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-€%s", tf.formatDecimal(alt.NetBenefitDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
