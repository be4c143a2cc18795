package main

import (
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/rgehrsitz/patrimoine/internal/output"
	"github.com/rgehrsitz/patrimoine/internal/transform"
)

func newPensionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pension [input-file]",
		Short: "Value both pension regimes of one adult for one year",
		Example: `  patrimoine pension household.yaml --adult Paul --year 2030
  patrimoine pension household.yaml --adult Paul --year 2030 --scenario "Late liquidation"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			adult, _ := cmd.Flags().GetString("adult")
			year, _ := cmd.Flags().GetInt("year")
			format, _ := cmd.Flags().GetString("format")
			scenarioName, _ := cmd.Flags().GetString("scenario")
			specs, _ := cmd.Flags().GetStringSlice("transform")

			s, err := resolveScenario(cfg, scenarioName, specs)
			if err != nil {
				return err
			}
			if year == 0 {
				year = cfg.GlobalAssumptions.StartYear
			}
			row, err := newEngine(cmd, cfg).PensionsFor(s.Apply(&cfg.Household), adult, year)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), row)
			case "console", "":
				writePension(cmd.OutOrStdout(), row)
				return nil
			default:
				return fmt.Errorf("unknown output format: %s (valid: console, json)", format)
			}
		},
	}
	cmd.Flags().String("adult", "", "Adult to value (required)")
	cmd.Flags().Int("year", 0, "Year to value (default: projection start year)")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	cmd.Flags().String("scenario", "", "Scenario whose overrides apply")
	cmd.Flags().StringSlice("transform", nil, "Transform applied on top of the scenario, as name:key=value,... (repeatable)")
	_ = cmd.MarkFlagRequired("adult")
	return cmd
}

func newSuccessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "succession [input-file]",
		Short: "Process the death of one adult over the household assets",
		Long: `Transfer every asset of the household on the death of one adult and
compute the duty owed by each heir. The adult must have a modelled age of
death, either in the configuration or through --age.`,
		Example: `  patrimoine succession household.yaml --adult Paul
  patrimoine succession household.yaml --adult Marie --age 88 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			adult, _ := cmd.Flags().GetString("adult")
			age, _ := cmd.Flags().GetInt("age")
			format, _ := cmd.Flags().GetString("format")
			scenarioName, _ := cmd.Flags().GetString("scenario")
			specs, _ := cmd.Flags().GetStringSlice("transform")

			if age > 0 {
				specs = append(specs, "set_age_of_death:adult="+adult+",age="+strconv.Itoa(age))
			}
			s, err := resolveScenario(cfg, scenarioName, specs)
			if err != nil {
				return err
			}

			_, result, err := newEngine(cmd, cfg).Succession(s.Apply(&cfg.Household), cfg.Assets, adult)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), result)
			case "console", "":
				return output.FormatSuccession(cmd.OutOrStdout(), result)
			default:
				return fmt.Errorf("unknown output format: %s (valid: console, json)", format)
			}
		},
	}
	cmd.Flags().String("adult", "", "Adult whose death is processed (required)")
	cmd.Flags().Int("age", 0, "Model the death at this age instead of the configured one")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	cmd.Flags().String("scenario", "", "Scenario whose overrides apply")
	cmd.Flags().StringSlice("transform", nil, "Transform applied on top of the scenario, as name:key=value,... (repeatable)")
	_ = cmd.MarkFlagRequired("adult")
	return cmd
}

// resolveScenario finds the named scenario and applies the transform specs
// to it. An empty name starts from a scenario without overrides.
func resolveScenario(cfg *domain.Configuration, name string, specs []string) (*domain.Scenario, error) {
	base := &domain.Scenario{Name: "baseline"}
	if name != "" {
		s, ok := cfg.FindScenario(name)
		if !ok {
			return nil, fmt.Errorf("scenario %s not found in configuration", name)
		}
		base = s
	}
	if len(specs) == 0 {
		return base, nil
	}

	registry := transform.NewTransformRegistry()
	transforms := make([]transform.ScenarioTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transform.ApplyTransforms(base, &cfg.Household, transforms)
}

func writePension(w io.Writer, row domain.PersonPensionYear) {
	fmt.Fprintf(w, "%s, %d (age %d)\n", row.Name, row.Year, row.Age)
	if !row.IsPaying() {
		fmt.Fprintln(w, "  No pension payable")
		return
	}
	if g := row.General; g != nil {
		fmt.Fprintln(w, "  General regime:")
		fmt.Fprintf(w, "    Insured quarters: %d (capped %d, reference %d)\n", g.InsuredUncapped, g.InsuredCapped, g.ReferenceDuration)
		fmt.Fprintf(w, "    Discount/bonus quarters: %d/%d\n", g.DiscountQuarters, g.BonusQuarters)
		fmt.Fprintf(w, "    Rate: %s\n", output.FormatPercentage(g.Rate))
		fmt.Fprintf(w, "    Gross: %s  Net: %s\n", output.FormatCurrency(g.Gross), output.FormatCurrency(g.Net))
	}
	if p := row.Points; p != nil {
		fmt.Fprintln(w, "  Points regime:")
		fmt.Fprintf(w, "    Points: %d  Coefficient: %s\n", p.ProjectedPoints, p.Coefficient.StringFixed(4))
		fmt.Fprintf(w, "    Gross: %s  Net: %s\n", output.FormatCurrency(p.Gross), output.FormatCurrency(p.Net))
	}
	fmt.Fprintf(w, "  Total net: %s\n", output.FormatCurrency(row.TotalNet()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
