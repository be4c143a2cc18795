package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted.
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates the common what-if templates for one adult.
func CreateBuiltInTemplates(adult string) *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, years := range []int{1, 2, 3} {
		registry.Register(Template{
			Name:        fmt.Sprintf("postpone_%dyr", years),
			Description: fmt.Sprintf("Postpone retirement by %d year(s)", years),
			Transforms: []ScenarioTransform{
				&PostponeRetirement{Adult: adult, Months: 12 * years},
			},
		})
		registry.Register(Template{
			Name:        fmt.Sprintf("liquidate_%dyr_later", years),
			Description: fmt.Sprintf("Claim pensions %d year(s) later", years),
			Transforms: []ScenarioTransform{
				&PostponeLiquidation{Adult: adult, Months: 12 * years},
			},
		})
	}

	for _, age := range []int{75, 85, 95} {
		registry.Register(Template{
			Name:        fmt.Sprintf("death_at_%d", age),
			Description: fmt.Sprintf("Model death at age %d", age),
			Transforms: []ScenarioTransform{
				&SetAgeOfDeath{Adult: adult, Age: age},
			},
		})
	}

	for _, option := range domain.FiscalOptions {
		registry.Register(Template{
			Name:        "option_" + string(option),
			Description: fmt.Sprintf("Take the %s option as surviving spouse", option),
			Transforms: []ScenarioTransform{
				&SetFiscalOption{Adult: adult, Option: option},
			},
		})
	}

	registry.Register(Template{
		Name:        "work_longer",
		Description: "Postpone retirement and liquidation by 2 years",
		Transforms: []ScenarioTransform{
			&PostponeRetirement{Adult: adult, Months: 24, KeepLiquidation: true},
			&PostponeLiquidation{Adult: adult, Months: 24},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, h *domain.Household, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, h, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	categories := map[string][]Template{}
	order := []string{"Activity", "Liquidation", "Mortality", "Succession", "Combination"}
	for _, name := range registry.List() {
		t := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "postpone_"):
			categories["Activity"] = append(categories["Activity"], t)
		case strings.HasPrefix(name, "liquidate_"):
			categories["Liquidation"] = append(categories["Liquidation"], t)
		case strings.HasPrefix(name, "death_"):
			categories["Mortality"] = append(categories["Mortality"], t)
		case strings.HasPrefix(name, "option_"):
			categories["Succession"] = append(categories["Succession"], t)
		default:
			categories["Combination"] = append(categories["Combination"], t)
		}
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-46s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  patrimoine compare household.yaml --adult Paul --with postpone_1yr,death_at_85\n")

	return sb.String()
}
