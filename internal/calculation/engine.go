package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/rgehrsitz/patrimoine/internal/succession"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates pension and succession calculations over
// one immutable set of regulatory rules. Independent runs may share it.
type CalculationEngine struct {
	Rules   *domain.RegulatoryConfig
	General *GeneralRegime
	Points  *PointsRegime
	Levies  SocialLevies
	Duties  *InheritanceDutyCalculator
	Logger  Logger
}

// NewCalculationEngine creates an engine over initialized rules.
func NewCalculationEngine(rules *domain.RegulatoryConfig) *CalculationEngine {
	general := NewGeneralRegime(rules.GeneralRegime)
	return &CalculationEngine{
		Rules:   rules,
		General: general,
		Points:  NewPointsRegime(rules.PointsRegime, general),
		Levies:  NewSocialLevies(rules.SocialLevies),
		Duties:  NewInheritanceDutyCalculator(rules.Inheritance),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the engine logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// PensionsFor values both regimes for the named adult in year. A regime
// that does not pay is left nil.
func (ce *CalculationEngine) PensionsFor(h *domain.Household, name string, year int) (domain.PersonPensionYear, error) {
	a, ok := h.Adult(name)
	if !ok {
		return domain.PersonPensionYear{}, fmt.Errorf("adult %q not found in household", name)
	}
	row := domain.PersonPensionYear{Year: year, Name: name, Age: a.AgeInYear(year)}
	if !a.IsAliveIn(year) {
		return row, nil
	}

	q := QueryFor(h, a, year)
	rate := ce.Rules.PensionDevaluationRate
	if gp, ok := ce.General.Pension(q, rate); ok {
		gp.Net = ce.Levies.Net(gp.Gross)
		row.General = &gp
	} else {
		ce.Logger.Debugf("%s %d: general regime not payable", name, year)
	}
	if pp, ok := ce.Points.Pension(q, rate); ok {
		pp.Net = ce.Levies.Net(pp.Gross)
		row.Points = &pp
	} else {
		ce.Logger.Debugf("%s %d: points regime not payable", name, year)
	}
	return row, nil
}

// Valuator returns the valuation helper for household h.
func (ce *CalculationEngine) Valuator(h *domain.Household) domain.Valuator {
	return domain.Valuator{Grid: ce.Rules.Demembrement, Ages: h}
}

// DeathEvent builds the succession event for decedent from the household.
func DeathEvent(h *domain.Household, decedent string) (succession.Event, error) {
	a, ok := h.Adult(decedent)
	if !ok {
		return succession.Event{}, fmt.Errorf("adult %q not found in household", decedent)
	}
	year, ok := a.YearOf(domain.EventDeath)
	if !ok {
		return succession.Event{}, fmt.Errorf("%s has no modelled age of death", decedent)
	}
	ev := succession.Event{
		Request: succession.Request{Decedent: decedent, Children: h.LivingChildren(year)},
		Year:    year,
	}
	if spouse, ok := h.SpouseOf(decedent, year); ok {
		ev.Spouse = spouse
		s, _ := h.Adult(spouse)
		ev.FiscalOption = s.FiscalOption
	}
	return ev, nil
}

// Succession processes the death of decedent over assets.
func (ce *CalculationEngine) Succession(h *domain.Household, assets []domain.Asset, decedent string) ([]domain.Asset, domain.SuccessionResult, error) {
	ev, err := DeathEvent(h, decedent)
	if err != nil {
		return nil, domain.SuccessionResult{}, err
	}
	ce.Logger.Infof("processing succession of %s in %d (spouse %q, %d children)", decedent, ev.Year, ev.Spouse, len(ev.Children))
	out, res, err := succession.ProcessDeath(ev, assets, ce.Valuator(h), ce.Duties)
	if err != nil {
		ce.Logger.Errorf("succession of %s: %v", decedent, err)
		return nil, domain.SuccessionResult{}, err
	}
	return out, res, nil
}

// RunScenario projects pensions and processes every modelled death inside
// the projection window, in chronological order.
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.ScenarioSummary, error) {
	h := scenario.Apply(&config.Household)
	start := config.GlobalAssumptions.StartYear
	years := config.GlobalAssumptions.ProjectionYears

	projection, err := ce.ProjectHousehold(ctx, h, start, years)
	if err != nil {
		return nil, err
	}

	name := "baseline"
	if scenario != nil {
		name = scenario.Name
	}
	summary := &domain.ScenarioSummary{
		Name:            name,
		Projection:      projection,
		TotalNetPension: decimalZero,
	}
	for _, row := range projection {
		net := row.TotalNet()
		if summary.FirstPensionYear == 0 && net.IsPositive() {
			summary.FirstPensionYear = row.Year
			summary.FirstYearNetPension = net
		}
		summary.TotalNetPension = summary.TotalNetPension.Add(net)
	}

	successions, err := ce.successionsInWindow(h, config.Assets, start, start+years-1)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	summary.Successions = successions
	return summary, nil
}

func (ce *CalculationEngine) successionsInWindow(h *domain.Household, assets []domain.Asset, first, last int) ([]domain.SuccessionResult, error) {
	type death struct {
		name string
		year int
	}
	var deaths []death
	for i := range h.Adults {
		if y, ok := h.Adults[i].YearOf(domain.EventDeath); ok && y >= first && y <= last {
			deaths = append(deaths, death{h.Adults[i].Name, y})
		}
	}
	sort.SliceStable(deaths, func(i, j int) bool { return deaths[i].year < deaths[j].year })

	var results []domain.SuccessionResult
	for _, dth := range deaths {
		next, res, err := ce.Succession(h, assets, dth.name)
		if err != nil {
			return nil, err
		}
		assets = next
		results = append(results, res)
	}
	return results, nil
}

// RunScenarios runs every scenario of config, or a single baseline when none
// is defined.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	out := &domain.ScenarioComparison{StartYear: config.GlobalAssumptions.StartYear}
	if len(config.Scenarios) == 0 {
		s, err := ce.RunScenario(ctx, config, nil)
		if err != nil {
			return nil, err
		}
		out.Scenarios = append(out.Scenarios, *s)
		return out, nil
	}
	for i := range config.Scenarios {
		s, err := ce.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("failed to run scenario %s: %w", config.Scenarios[i].Name, err)
		}
		out.Scenarios = append(out.Scenarios, *s)
	}
	return out, nil
}

// RunScenarioAuto runs the scenario at index.
func (ce *CalculationEngine) RunScenarioAuto(ctx context.Context, config *domain.Configuration, index int) (*domain.ScenarioSummary, error) {
	if index < 0 || index >= len(config.Scenarios) {
		return nil, fmt.Errorf("scenario index %d out of range", index)
	}
	return ce.RunScenario(ctx, config, &config.Scenarios[index])
}

// NetPension is a convenience for callers that only need totals.
func (ce *CalculationEngine) NetPension(h *domain.Household, name string, year int) (gross, net decimal.Decimal, err error) {
	row, err := ce.PensionsFor(h, name, year)
	if err != nil {
		return decimalZero, decimalZero, err
	}
	return row.TotalGross(), row.TotalNet(), nil
}
