package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/patrimoine/internal/compare"
	"github.com/rgehrsitz/patrimoine/internal/transform"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a scenario against built-in strategy templates",
		Long: `Compare a base scenario against alternatives built from templates.

Examples:
  patrimoine compare household.yaml --base Planned --with postpone_1yr,liquidate_2yr_later
  patrimoine compare household.yaml --base Planned --with death_at_75,death_at_95 --adult Marie --format csv
  patrimoine compare --list-templates  # Show all available templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adultName, _ := cmd.Flags().GetString("adult")

			if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
				if adultName == "" {
					adultName = "Adult"
				}
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(adultName)))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}
			inputFile := args[0]

			baseScenarioName, _ := cmd.Flags().GetString("base")
			templatesStr, _ := cmd.Flags().GetString("with")
			outputFormat, _ := cmd.Flags().GetString("format")

			if baseScenarioName == "" {
				return fmt.Errorf("--base flag is required to specify the base scenario name")
			}
			templateNames := transform.ParseTemplateList(templatesStr)
			if len(templateNames) == 0 {
				return fmt.Errorf("--with flag is required to specify templates to compare (or use --list-templates)")
			}

			cfg, err := loadConfig(cmd, inputFile)
			if err != nil {
				return err
			}

			if adultName == "" {
				// The templates act on the first adult unless told otherwise.
				if len(cfg.Household.Adults) == 0 {
					return fmt.Errorf("--adult flag required: household has no adults")
				}
				adultName = cfg.Household.Adults[0].Name
			}

			compareEngine := compare.NewCompareEngine(newEngine(cmd, cfg))
			comparisonSet, err := compareEngine.Compare(cmd.Context(), cfg, compare.CompareOptions{
				BaseScenarioName: baseScenarioName,
				Templates:        templateNames,
				AdultName:        adultName,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			comparisonSet.ConfigPath = inputFile

			out := cmd.OutOrStdout()
			switch strings.ToLower(outputFormat) {
			case "csv":
				s, err := (&compare.CSVFormatter{}).Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, s)
			case "json":
				s, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, s)
			case "compact":
				fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(comparisonSet))
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(comparisonSet))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
			}
			return nil
		},
	}
	cmd.Flags().String("base", "", "Base scenario name to compare against (required)")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare (required)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().String("adult", "", "Adult the templates act on (default: first adult of the household)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	return cmd
}
