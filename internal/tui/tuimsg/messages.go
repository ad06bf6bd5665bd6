// Package tuimsg declares the messages exchanged between the TUI root model
// and its scenes.
package tuimsg

import (
	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/compare"
	"github.com/rgehrsitz/quitcalc/internal/config"
	"github.com/rgehrsitz/quitcalc/internal/domain"
)

// InputLoadedMsg signals an input file has been parsed
type InputLoadedMsg struct {
	Input *config.Input
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProfileSubmittedMsg carries a profile entered in the form
type ProfileSubmittedMsg struct {
	Profile domain.Profile
	QuitAge float64
}

// QuitAgeSelectedMsg asks the dashboard to project a specific quit age
type QuitAgeSelectedMsg struct {
	QuitAge float64
}

// CalculationCompleteMsg carries one projection with its derived views
type CalculationCompleteMsg struct {
	Profile     domain.Profile
	Scenario    domain.Scenario
	Result      *domain.RetirementResult
	Timeline    calculation.Timeline
	HasTimeline bool
	Advice      []calculation.Advice
	Err         error
}

// ComparisonCompleteMsg carries a quit-age comparison
type ComparisonCompleteMsg struct {
	Profile  domain.Profile
	Scenario domain.Scenario
	Set      *compare.ComparisonSet
	Err      error
}
