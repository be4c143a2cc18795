package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/patrimoine/internal/calculation"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.successions.Width = max(20, msg.Width-4)
		m.successions.Height = max(5, msg.Height-6)
		m.projection.SetHeight(max(5, msg.Height-8))
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.loading = false
		m.config = msg.Config
		m.calcEngine = calculation.NewCalculationEngine(msg.Config.Regulatory)
		m.calcEngine.SetLogger(m.logger)
		m.scenarios.SetRows(scenarioRows(msg.Config))
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.selectedScenario = msg.ScenarioName
		m.selectedResults = msg.Results
		columns, rows := projectionTable(msg.Results)
		// Rows must be cleared first: the table renders them against the
		// current columns.
		m.projection.SetRows(nil)
		m.projection.SetColumns(columns)
		m.projection.SetRows(rows)
		m.projection.GotoTop()
		m.successions.SetContent(successionText(msg.Results))
		m.successions.GotoTop()
		m.previousScene = m.currentScene
		m.currentScene = SceneProjection
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		// Any key dismisses the error.
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		return m, func() tea.Msg { return NavigateMsg{Scene: SceneHelp} }

	case key.Matches(msg, keys.Back):
		switch m.currentScene {
		case SceneSuccessions, SceneHelp:
			if m.selectedResults != nil {
				return m, func() tea.Msg { return NavigateMsg{Scene: SceneProjection} }
			}
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneScenarios} }
		case SceneProjection:
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneScenarios} }
		}
		return m, nil

	case key.Matches(msg, keys.Successions):
		if m.selectedResults != nil && m.currentScene != SceneSuccessions {
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneSuccessions} }
		}
		return m, nil

	case key.Matches(msg, keys.Select):
		if m.currentScene == SceneScenarios && m.config != nil && !m.loading {
			return m.runSelectedScenario()
		}
	}

	return m.updateCurrentScene(msg)
}

func (m Model) runSelectedScenario() (tea.Model, tea.Cmd) {
	i := m.scenarios.Cursor()
	if i < 0 || i >= len(m.config.Scenarios) {
		return m, nil
	}
	m.loading = true
	m.loadingMessage = "Running " + m.config.Scenarios[i].Name + "..."
	return m, tea.Batch(m.spinner.Tick, calculateScenarioCmd(m.calcEngine, m.config, &m.config.Scenarios[i]))
}

// updateCurrentScene delegates updates to the current scene's widget
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneScenarios:
		m.scenarios, cmd = m.scenarios.Update(msg)
	case SceneProjection:
		m.projection, cmd = m.projection.Update(msg)
	case SceneSuccessions:
		m.successions, cmd = m.successions.Update(msg)
	}
	return m, cmd
}
