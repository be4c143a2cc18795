package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed regulatory.yaml
var defaultRegulatoryYAML []byte

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a household configuration and attaches the built-in
// regulatory data.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	return ip.LoadFromFileWithRegulatory(filename, "")
}

// LoadFromFileWithRegulatory loads a household configuration and the
// regulatory data at regulatoryPath. An empty path selects the built-in data.
func (ip *InputParser) LoadFromFileWithRegulatory(filename, regulatoryPath string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	var rc *domain.RegulatoryConfig
	if regulatoryPath == "" {
		rc, err = ip.DefaultRegulatory()
	} else {
		rc, err = ip.LoadRegulatoryConfig(regulatoryPath)
	}
	if err != nil {
		return nil, err
	}
	config.Regulatory = rc
	return config, nil
}

// Parse decodes and validates a household configuration.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadRegulatoryConfig loads, validates and initializes regulatory data.
func (ip *InputParser) LoadRegulatoryConfig(filename string) (*domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read regulatory config file %s: %w", filename, err)
	}
	return ip.parseRegulatory(data)
}

// DefaultRegulatory returns a freshly initialized copy of the built-in
// regulatory data.
func (ip *InputParser) DefaultRegulatory() (*domain.RegulatoryConfig, error) {
	return ip.parseRegulatory(defaultRegulatoryYAML)
}

func (ip *InputParser) parseRegulatory(data []byte) (*domain.RegulatoryConfig, error) {
	var rc domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}
	if err := ip.validateRegulatoryConfig(&rc); err != nil {
		return nil, fmt.Errorf("regulatory validation failed: %w", err)
	}
	if err := rc.Initialize(); err != nil {
		return nil, fmt.Errorf("regulatory validation failed: %w", err)
	}
	return &rc, nil
}

func (ip *InputParser) validateRegulatoryConfig(rc *domain.RegulatoryConfig) error {
	if rc.Metadata.DataYear < 2015 || rc.Metadata.DataYear > 2100 {
		return fmt.Errorf("regulatory data year %d seems invalid", rc.Metadata.DataYear)
	}
	if len(rc.Demembrement) == 0 {
		return fmt.Errorf("demembrement grid is required")
	}
	if len(rc.Inheritance.ChildGrid) == 0 {
		return fmt.Errorf("inheritance child grid is required")
	}
	if len(rc.Inheritance.LifeInsuranceGrid) == 0 {
		return fmt.Errorf("life insurance grid is required")
	}
	if rc.SocialLevies.Total().IsNegative() {
		return fmt.Errorf("social levies cannot be negative")
	}
	if rc.PensionDevaluationRate.IsNegative() {
		return fmt.Errorf("pension devaluation rate cannot be negative")
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateHousehold(&config.Household); err != nil {
		return fmt.Errorf("household validation failed: %w", err)
	}
	for i := range config.Assets {
		if err := ip.validateAsset(&config.Assets[i], &config.Household); err != nil {
			return fmt.Errorf("asset %d (%s) validation failed: %w", i, config.Assets[i].Name, err)
		}
	}
	for i := range config.Scenarios {
		if err := ip.validateScenario(&config.Scenarios[i], &config.Household); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
	}
	if err := ip.validateGlobalAssumptions(&config.GlobalAssumptions); err != nil {
		return fmt.Errorf("global assumptions validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateHousehold(h *domain.Household) error {
	if len(h.Adults) == 0 {
		return fmt.Errorf("at least one adult is required")
	}
	if len(h.Adults) > 2 {
		return fmt.Errorf("at most two adults are supported, got %d", len(h.Adults))
	}

	seen := make(map[string]bool)
	for _, p := range h.Persons() {
		name := p.Core().Name
		if name == "" {
			return fmt.Errorf("every person needs a name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate person name %q", name)
		}
		seen[name] = true
	}

	for i := range h.Adults {
		if err := ip.validateAdult(&h.Adults[i]); err != nil {
			return fmt.Errorf("adult %d (%s) validation failed: %w", i, h.Adults[i].Name, err)
		}
	}
	for i := range h.Children {
		if err := ip.validateChild(&h.Children[i]); err != nil {
			return fmt.Errorf("child %d (%s) validation failed: %w", i, h.Children[i].Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateAdult(a *domain.Adult) error {
	if a.BirthDate.IsZero() {
		return fmt.Errorf("birth date is required")
	}
	if a.AgeOfDeath < 0 {
		return fmt.Errorf("age of death cannot be negative")
	}
	if !a.DateOfRetirement.IsZero() && a.DateOfRetirement.Before(a.BirthDate) {
		return fmt.Errorf("retirement date cannot be before birth date")
	}
	if a.DateOfEndOfUnemployAlloc != nil && !a.DateOfRetirement.IsZero() && a.DateOfEndOfUnemployAlloc.Before(a.DateOfRetirement) {
		return fmt.Errorf("end of unemployment allowance cannot be before retirement")
	}
	if !a.DateOfPensionLiquid.IsZero() && a.DateOfPensionLiquid.Before(a.BirthDate) {
		return fmt.Errorf("pension liquidation date cannot be before birth date")
	}
	if a.GeneralSituation.AcquiredQuarters < 0 {
		return fmt.Errorf("acquired quarters cannot be negative")
	}
	if a.GeneralSituation.AverageAnnualWage.IsNegative() {
		return fmt.Errorf("average annual wage cannot be negative")
	}
	if a.PointsSituation.PointsBalance < 0 || a.PointsSituation.PointsPerYear < 0 {
		return fmt.Errorf("points cannot be negative")
	}
	if a.FiscalOption != "" {
		if err := a.FiscalOption.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (ip *InputParser) validateChild(c *domain.Child) error {
	if c.BirthDate.IsZero() {
		return fmt.Errorf("birth date is required")
	}
	if c.AgeOfIndependence < 0 {
		return fmt.Errorf("age of independence cannot be negative")
	}
	if c.AgeOfDeath < 0 {
		return fmt.Errorf("age of death cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateAsset(a *domain.Asset, h *domain.Household) error {
	if a.Name == "" {
		return fmt.Errorf("asset name is required")
	}
	switch a.Kind {
	case domain.AssetRealEstate, domain.AssetFinancial, domain.AssetLifeInsurance:
	default:
		return fmt.Errorf("unknown asset kind %q", a.Kind)
	}
	if a.Value.IsNegative() {
		return fmt.Errorf("value cannot be negative")
	}
	if err := a.Ownership.Validate(); err != nil {
		return err
	}
	for _, group := range []domain.Owners{a.Ownership.FullOwners, a.Ownership.UsufructOwners, a.Ownership.BareOwners} {
		for _, name := range group.Names() {
			if _, ok := h.Find(name); !ok {
				return fmt.Errorf("owner %q is not a household member", name)
			}
		}
	}

	if a.Clause != nil && !a.IsLifeInsurance() {
		return fmt.Errorf("beneficiary clause is only allowed on life insurance")
	}
	if a.IsLifeInsurance() {
		if a.Clause == nil {
			return fmt.Errorf("life insurance requires a beneficiary clause")
		}
		if err := a.Clause.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (ip *InputParser) validateScenario(s *domain.Scenario, h *domain.Household) error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	for name, o := range s.Adults {
		if _, ok := h.Adult(name); !ok {
			return fmt.Errorf("scenario references unknown adult: %s", name)
		}
		if o.AgeOfDeath != nil && *o.AgeOfDeath < 0 {
			return fmt.Errorf("%s: age of death cannot be negative", name)
		}
		if o.FiscalOption != nil {
			if err := o.FiscalOption.Validate(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

func (ip *InputParser) validateGlobalAssumptions(assumptions *domain.GlobalAssumptions) error {
	if assumptions.StartYear < 1950 || assumptions.StartYear > 2100 {
		return fmt.Errorf("start year %d is out of range", assumptions.StartYear)
	}
	if assumptions.ProjectionYears <= 0 || assumptions.ProjectionYears > 50 {
		return fmt.Errorf("projection years must be between 1 and 50")
	}
	return nil
}
