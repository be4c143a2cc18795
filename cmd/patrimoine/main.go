package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/patrimoine/internal/calculation"
	"github.com/rgehrsitz/patrimoine/internal/config"
	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/rgehrsitz/patrimoine/internal/output"
	"github.com/rgehrsitz/patrimoine/pkg/logging"
)

// Overridden at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "patrimoine",
		Short: "French pension and succession simulator",
		Long: `Simulate the pensions of a household under the general and points
regimes, and the transfer of its assets when an adult dies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("regulatory-config", "", "Path to regulatory config file (default: regulatory.yaml if it exists, else built-in data)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(
		newProjectCmd(),
		newPensionCmd(),
		newSuccessionCmd(),
		newValidateCmd(),
		newCompareCmd(),
		newServeCmd(),
		newBrowseCmd(),
		newVersionCmd(),
	)
	return root
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [input-file]",
		Short: "Project pensions and successions for every scenario",
		Long: `Project the household pensions year by year and process every death
falling inside the projection window.

Examples:
  patrimoine project household.yaml
  patrimoine project household.yaml --format csv
  patrimoine project household.yaml --scenario Planned --transform set_age_of_death:adult=Paul,age=85`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			engine := newEngine(cmd, cfg)

			format, _ := cmd.Flags().GetString("format")
			scenarioName, _ := cmd.Flags().GetString("scenario")
			specs, _ := cmd.Flags().GetStringSlice("transform")

			var results *domain.ScenarioComparison
			if scenarioName == "" {
				if len(specs) > 0 {
					return fmt.Errorf("--transform requires --scenario")
				}
				results, err = engine.RunScenarios(cmd.Context(), cfg)
				if err != nil {
					return err
				}
			} else {
				s, err := resolveScenario(cfg, scenarioName, specs)
				if err != nil {
					return err
				}
				summary, err := engine.RunScenario(cmd.Context(), cfg, s)
				if err != nil {
					return err
				}
				results = &domain.ScenarioComparison{
					StartYear: cfg.GlobalAssumptions.StartYear,
					Scenarios: []domain.ScenarioSummary{*summary},
				}
			}
			return output.GenerateReport(cmd.OutOrStdout(), results, format)
		},
	}
	cmd.Flags().StringP("format", "f", "console-lite", "Output format (console-lite, console, csv, detailed-csv, json, html)")
	cmd.Flags().String("scenario", "", "Run a single scenario")
	cmd.Flags().StringSlice("transform", nil, "Transform applied to --scenario, as name:key=value,... (repeatable)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a household configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd, args[0]); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			v := version
			if v == "dev" {
				if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
					v = info.Main.Version
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "patrimoine %s (commit %s, built %s)\n", v, commit, date)
		},
	}
}

// loadConfig reads the household file with the regulatory data selected by
// --regulatory-config, falling back to ./regulatory.yaml then to the
// built-in data.
func loadConfig(cmd *cobra.Command, inputFile string) (*domain.Configuration, error) {
	regulatoryFile, _ := cmd.Flags().GetString("regulatory-config")
	if regulatoryFile == "" && fileExists("regulatory.yaml") {
		regulatoryFile = "regulatory.yaml"
	}
	if regulatoryFile != "" {
		slog.Debug("loading regulatory config", "path", regulatoryFile)
	}
	return config.NewInputParser().LoadFromFileWithRegulatory(inputFile, regulatoryFile)
}

// newLogger configures the process logger on stderr. --debug overrides
// LOG_LEVEL.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := logging.LevelFromEnv()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = slog.LevelDebug
	}
	return logging.SetupWithLevel(cmd.ErrOrStderr(), level)
}

func newEngine(cmd *cobra.Command, cfg *domain.Configuration) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine(cfg.Regulatory)
	engine.SetLogger(logging.NewPrintf(newLogger(cmd)))
	return engine
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
