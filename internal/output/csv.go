package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "FirstPensionYear", "FirstYearNetPension", "TotalNetPension", "Successions", "TotalDuties", "NetBenefit"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		duties := sc.TotalNetPension.Sub(NetBenefit(sc))
		row := []string{
			sc.Name,
			strconv.Itoa(sc.FirstPensionYear),
			sc.FirstYearNetPension.StringFixed(2),
			sc.TotalNetPension.StringFixed(2),
			strconv.Itoa(len(sc.Successions)),
			duties.StringFixed(2),
			NetBenefit(sc).StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVDetailed writes one row per scenario, year and adult.
type CSVDetailed struct{}

func (c CSVDetailed) Name() string { return "detailed-csv" }

func (c CSVDetailed) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Adult", "Age", "GeneralRate", "GeneralGross", "GeneralNet", "Points", "PointsCoefficient", "PointsGross", "PointsNet", "TotalNet"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		for _, year := range sc.Projection {
			for _, p := range year.Persons {
				row := []string{sc.Name, strconv.Itoa(year.Year), p.Name, strconv.Itoa(p.Age), "", "", "", "", "", "", "", p.TotalNet().StringFixed(2)}
				if g := p.General; g != nil {
					row[4], row[5], row[6] = g.Rate.StringFixed(4), g.Gross.StringFixed(2), g.Net.StringFixed(2)
				}
				if pt := p.Points; pt != nil {
					row[7], row[8], row[9], row[10] = strconv.Itoa(pt.ProjectedPoints), pt.Coefficient.StringFixed(4), pt.Gross.StringFixed(2), pt.Net.StringFixed(2)
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
