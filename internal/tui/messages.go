package tui

import (
	"github.com/rgehrsitz/quitcalc/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneProfile Scene = iota
	SceneDashboard
	SceneCompare
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneProfile:
		return "Profile"
	case SceneDashboard:
		return "Dashboard"
	case SceneCompare:
		return "Compare"
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

// QuitMsg signals the application should exit
type QuitMsg struct{}

// Messages shared with the scenes
type (
	InputLoadedMsg         = tuimsg.InputLoadedMsg
	ErrorMsg               = tuimsg.ErrorMsg
	ProfileSubmittedMsg    = tuimsg.ProfileSubmittedMsg
	QuitAgeSelectedMsg     = tuimsg.QuitAgeSelectedMsg
	CalculationCompleteMsg = tuimsg.CalculationCompleteMsg
	ComparisonCompleteMsg  = tuimsg.ComparisonCompleteMsg
)
