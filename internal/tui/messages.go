package tui

import (
	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneScenarios Scene = iota
	SceneProjection
	SceneSuccessions
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneScenarios:
		return "Scenarios"
	case SceneProjection:
		return "Projection"
	case SceneSuccessions:
		return "Successions"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// CalculationCompleteMsg signals a calculation has finished
type CalculationCompleteMsg struct {
	ScenarioName string
	Results      *domain.ScenarioSummary
	Err          error
}
