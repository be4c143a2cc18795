package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/patrimoine/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.loadingMessage)))
	}

	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneScenarios:
		content = m.renderScenarios()
	case SceneProjection:
		content = m.renderProjection()
	case SceneSuccessions:
		content = m.renderSuccessions()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Patrimoine - pensions and succession")

	breadcrumb := m.currentScene.String()
	if m.selectedScenario != "" && m.currentScene != SceneScenarios {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.selectedScenario)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	return StatusBarStyle.Width(max(0, m.width-2)).Render(m.help.View(keys))
}

func (m Model) renderScenarios() string {
	if m.config == nil {
		return BorderStyle.Render("No configuration loaded")
	}
	if len(m.config.Scenarios) == 0 {
		return BorderStyle.Render("The configuration defines no scenario")
	}
	return BorderStyle.Render(m.scenarios.View())
}

func (m Model) renderProjection() string {
	if m.selectedResults == nil {
		return BorderStyle.Render("Select a scenario and press enter")
	}
	s := m.selectedResults

	first := MetricNegativeStyle.Render("none")
	if s.FirstPensionYear > 0 {
		first = MetricValueStyle.Render(fmt.Sprintf("%d (%s)", s.FirstPensionYear, output.FormatCurrency(s.FirstYearNetPension)))
	}
	duties := output.FormatCurrency(s.TotalNetPension.Sub(output.NetBenefit(*s)))
	metrics := strings.Join([]string{
		MetricLabelStyle.Render("First pension ") + first,
		MetricLabelStyle.Render("Lifetime net ") + MetricPositiveStyle.Render(output.FormatCurrency(s.TotalNetPension)),
		MetricLabelStyle.Render("Duties ") + MetricValueStyle.Render(duties),
	}, "   ")

	return lipgloss.JoinVertical(lipgloss.Left, metrics, BorderStyle.Render(m.projection.View()))
}

func (m Model) renderSuccessions() string {
	return BorderStyle.Render(m.successions.View())
}

func (m Model) renderHelp() string {
	return BorderStyle.Render(strings.TrimSpace(`
Patrimoine browses the scenarios of a household file.

  enter  run the selected scenario and show its yearly projection
  s      show the successions of the last run scenario
  ↑/↓    move in tables, scroll successions
  esc    go back
  q      quit
`) + "\n\n" + m.help.FullHelpView(keys.FullHelp()))
}
