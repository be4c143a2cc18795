package tui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/patrimoine/internal/calculation"
	"github.com/rgehrsitz/patrimoine/internal/config"
	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/rgehrsitz/patrimoine/internal/output"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath     string
	regulatoryPath string
	config         *domain.Configuration
	calcEngine     *calculation.CalculationEngine
	logger         calculation.Logger

	// Current selections
	selectedScenario string
	selectedResults  *domain.ScenarioSummary

	scenarios   table.Model
	projection  table.Model
	successions viewport.Model
	spinner     spinner.Model
	help        help.Model

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a model that loads configPath on start. An empty
// regulatoryPath uses the embedded regulatory parameters.
func NewModel(configPath, regulatoryPath string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SubtitleStyle

	m := Model{
		currentScene:   SceneScenarios,
		configPath:     configPath,
		regulatoryPath: regulatoryPath,
		logger:         calculation.NopLogger{},
		scenarios:      newTable(scenarioColumns(), 10),
		projection:     newTable(nil, 15),
		successions:    viewport.New(80, 18),
		spinner:        s,
		help:           help.New(),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading configuration...",
	}
	return m
}

// SetLogger routes calculation logs to l.
func (m *Model) SetLogger(l calculation.Logger) {
	m.logger = l
}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(BorderStyle.GetBorderStyle()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(ColorWhite).
		Background(ColorPrimary)
	t.SetStyles(styles)
	return t
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadConfigCmd(m.configPath, m.regulatoryPath))
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path, regulatoryPath string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFileWithRegulatory(path, regulatoryPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// calculateScenarioCmd returns a command that runs one scenario
func calculateScenarioCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration, scenario *domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		summary, err := engine.RunScenario(context.Background(), cfg, scenario)
		if err != nil {
			return CalculationCompleteMsg{ScenarioName: scenario.Name, Err: err}
		}
		return CalculationCompleteMsg{ScenarioName: scenario.Name, Results: summary}
	}
}

func scenarioColumns() []table.Column {
	return []table.Column{
		{Title: "Scenario", Width: 28},
		{Title: "Overrides", Width: 40},
	}
}

func scenarioRows(cfg *domain.Configuration) []table.Row {
	rows := make([]table.Row, 0, len(cfg.Scenarios))
	for _, s := range cfg.Scenarios {
		overrides := "none"
		if n := len(s.Adults); n > 0 {
			overrides = fmt.Sprintf("%d adult(s)", n)
		}
		rows = append(rows, table.Row{s.Name, overrides})
	}
	return rows
}

// projectionTable lays one row per year: each adult's net pension then the
// household total.
func projectionTable(summary *domain.ScenarioSummary) ([]table.Column, []table.Row) {
	columns := []table.Column{{Title: "Year", Width: 6}}
	if len(summary.Projection) == 0 {
		return columns, nil
	}
	for _, p := range summary.Projection[0].Persons {
		columns = append(columns,
			table.Column{Title: p.Name + " age", Width: 10},
			table.Column{Title: p.Name + " net", Width: 14})
	}
	columns = append(columns, table.Column{Title: "Household", Width: 14})

	rows := make([]table.Row, 0, len(summary.Projection))
	for _, y := range summary.Projection {
		row := table.Row{fmt.Sprintf("%d", y.Year)}
		for _, p := range y.Persons {
			net := "-"
			if p.IsPaying() {
				net = p.TotalNet().StringFixed(0)
			}
			row = append(row, fmt.Sprintf("%d", p.Age), net)
		}
		row = append(row, y.TotalNet().StringFixed(0))
		rows = append(rows, row)
	}
	return columns, rows
}

func successionText(summary *domain.ScenarioSummary) string {
	if len(summary.Successions) == 0 {
		return "No death modelled inside the projection window."
	}
	var buf bytes.Buffer
	for _, r := range summary.Successions {
		if err := output.FormatSuccession(&buf, r); err != nil {
			return err.Error()
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
