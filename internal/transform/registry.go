package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_date", createSetRetirementDate)
	registry.Register("set_unemployment_end", createSetUnemploymentEnd)
	registry.Register("set_liquidation_date", createSetLiquidationDate)
	registry.Register("postpone_liquidation", createPostponeLiquidation)
	registry.Register("set_age_of_death", createSetAgeOfDeath)
	registry.Register("set_fiscal_option", createSetFiscalOption)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "postpone_retirement:adult=Paul,months=12"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func dateParam(transform string, params map[string]string, key string) (time.Time, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return time.Time{}, err
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}
	return date, nil
}

// Factory functions for each transform

func createPostponeRetirement(params map[string]string) (ScenarioTransform, error) {
	adult, err := requireParam("postpone_retirement", params, "adult")
	if err != nil {
		return nil, err
	}
	months, err := intParam("postpone_retirement", params, "months")
	if err != nil {
		return nil, err
	}
	keep := false
	if s, ok := params["keep_liquidation"]; ok {
		keep = s == "true" || s == "yes" || s == "1"
	}
	return &PostponeRetirement{Adult: adult, Months: months, KeepLiquidation: keep}, nil
}

func createSetRetirementDate(params map[string]string) (ScenarioTransform, error) {
	adult, err := requireParam("set_retirement_date", params, "adult")
	if err != nil {
		return nil, err
	}
	date, err := dateParam("set_retirement_date", params, "date")
	if err != nil {
		return nil, err
	}
	return &SetRetirementDate{Adult: adult, Date: date}, nil
}

func createSetUnemploymentEnd(params map[string]string) (ScenarioTransform, error) {
	adult, err := requireParam("set_unemployment_end", params, "adult")
	if err != nil {
		return nil, err
	}
	date, err := dateParam("set_unemployment_end", params, "date")
	if err != nil {
		return nil, err
	}
	return &SetUnemploymentEnd{Adult: adult, Date: date}, nil
}

func createSetLiquidationDate(params map[string]string) (ScenarioTransform, error) {
	adult, err := requireParam("set_liquidation_date", params, "adult")
	if err != nil {
		return nil, err
	}
	date, err := dateParam("set_liquidation_date", params, "date")
	if err != nil {
		return nil, err
	}
	return &SetLiquidationDate{Adult: adult, Date: date}, nil
}

func createPostponeLiquidation(params map[string]string) (ScenarioTransform, error) {
	adult, err := requireParam("postpone_liquidation", params, "adult")
	if err != nil {
		return nil, err
	}
	months, err := intParam("postpone_liquidation", params, "months")
	if err != nil {
		return nil, err
	}
	return &PostponeLiquidation{Adult: adult, Months: months}, nil
}

func createSetAgeOfDeath(params map[string]string) (ScenarioTransform, error) {
	adult, err := requireParam("set_age_of_death", params, "adult")
	if err != nil {
		return nil, err
	}
	age, err := intParam("set_age_of_death", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetAgeOfDeath{Adult: adult, Age: age}, nil
}

func createSetFiscalOption(params map[string]string) (ScenarioTransform, error) {
	adult, err := requireParam("set_fiscal_option", params, "adult")
	if err != nil {
		return nil, err
	}
	option, err := requireParam("set_fiscal_option", params, "option")
	if err != nil {
		return nil, err
	}
	return &SetFiscalOption{Adult: adult, Option: domain.FiscalOption(option)}, nil
}
