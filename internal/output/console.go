package output

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/patrimoine/internal/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// ConsoleFormatter prints one summary line per scenario.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, headerStyle.Render("PENSION AND SUCCESSION SUMMARY"))
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "Projection starts: %d\n\n", results.StartYear)

	for _, s := range results.Scenarios {
		first := "none"
		if s.FirstPensionYear > 0 {
			first = fmt.Sprintf("%d (%s)", s.FirstPensionYear, FormatCurrency(s.FirstYearNetPension))
		}
		fmt.Fprintf(&buf, "%-24s first pension %-22s lifetime net %s\n", s.Name, first, FormatCurrency(s.TotalNetPension))
		for _, r := range s.Successions {
			fmt.Fprintf(&buf, "%-24s %s dies in %d, duties %s\n", "", r.Decedent, r.Year, FormatCurrency(r.TotalDuty()))
		}
	}

	if len(results.Scenarios) > 1 {
		rec := AnalyzeScenarios(results)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s)\n", rec.ScenarioName, FormatCurrency(rec.Delta))
	}
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter prints the year-by-year projection and every
// succession of each scenario.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, headerStyle.Render("DETAILED PENSION AND SUCCESSION ANALYSIS"))
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, s := range results.Scenarios {
		fmt.Fprintln(&buf, sectionStyle.Render(fmt.Sprintf("SCENARIO %d: %s", i+1, s.Name)))
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		writeProjection(&buf, s.Projection)
		fmt.Fprintf(&buf, "Lifetime net pension: %s\n", FormatCurrency(s.TotalNetPension))
		for _, r := range s.Successions {
			fmt.Fprintln(&buf)
			if err := FormatSuccession(&buf, r); err != nil {
				return nil, err
			}
		}
		fmt.Fprintln(&buf)
	}

	if len(results.Scenarios) > 1 {
		rec := AnalyzeScenarios(results)
		fmt.Fprintf(&buf, "Recommended: %s, net benefit %s (Δ %s vs %s)\n",
			rec.ScenarioName, FormatCurrency(rec.NetBenefit), FormatCurrency(rec.Delta), results.Scenarios[0].Name)
	}
	return buf.Bytes(), nil
}

func writeProjection(w io.Writer, rows []domain.HouseholdPensionYear) {
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("(no projection)"))
		return
	}
	var names []string
	for _, p := range rows[0].Persons {
		names = append(names, p.Name)
	}

	fmt.Fprintf(w, "%-6s", "Year")
	for _, n := range names {
		fmt.Fprintf(w, " %14s", n+" net")
	}
	fmt.Fprintf(w, " %14s\n", "Household")
	for _, row := range rows {
		fmt.Fprintf(w, "%-6d", row.Year)
		for _, p := range row.Persons {
			cell := "-"
			if p.IsPaying() {
				cell = p.TotalNet().StringFixed(0)
			}
			fmt.Fprintf(w, " %14s", cell)
		}
		fmt.Fprintf(w, " %14s\n", row.TotalNet().StringFixed(0))
	}
}

// FormatSuccession prints one death event: ownership before and after every
// asset, then the duty owed by each heir.
func FormatSuccession(w io.Writer, r domain.SuccessionResult) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "SUCCESSION OF %s (%d)\n", strings.ToUpper(r.Decedent), r.Year)
	if r.Spouse != "" {
		fmt.Fprintf(&buf, "  Surviving spouse: %s\n", r.Spouse)
	}
	if len(r.Children) > 0 {
		fmt.Fprintf(&buf, "  Children: %s\n", strings.Join(r.Children, ", "))
	}
	for _, t := range r.Transfers {
		fmt.Fprintf(&buf, "  %s [%s]\n", t.Asset, t.Kind)
		fmt.Fprintf(&buf, "    before: %s\n", t.Before)
		fmt.Fprintf(&buf, "    after:  %s\n", t.After)
		heirs := make([]string, 0, len(t.Inherited))
		for h := range t.Inherited {
			heirs = append(heirs, h)
		}
		sort.Strings(heirs)
		for _, h := range heirs {
			fmt.Fprintf(&buf, "    %s receives %s\n", h, FormatCurrency(t.Inherited[h]))
		}
	}
	if len(r.Duties) > 0 {
		fmt.Fprintln(&buf, "  Duties:")
		for _, d := range r.Duties {
			fmt.Fprintf(&buf, "    %-12s inherited %14s  life insurance %14s  duty %12s\n",
				d.Heir, FormatCurrency(d.Inherited), FormatCurrency(d.LifeInsurance), FormatCurrency(d.TotalDuty()))
		}
		fmt.Fprintf(&buf, "  Total duty: %s\n", FormatCurrency(r.TotalDuty()))
	}
	_, err := w.Write(buf.Bytes())
	return err
}
