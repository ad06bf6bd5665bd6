package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/compare"
	"github.com/rgehrsitz/quitcalc/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.profileModel.SetSize(msg.Width, msg.Height)
		m.dashboardModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	// Custom messages
	case NavigateMsg:
		return m.navigate(msg.Scene)

	case QuitMsg:
		return m, tea.Quit

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case InputLoadedMsg:
		m.loading = false
		input := msg.Input
		m.policy = input.Policy
		m.calcEngine = calculation.NewCalculationEngineWithPolicy(input.Policy)
		m.compareEngine = compare.NewCompareEngine(m.calcEngine)
		profile := input.Profile
		m.profile = &profile
		m.scenario = input.Scenario
		if m.scenario.QuitAge <= 0 {
			m.scenario.QuitAge = m.ageNow()
		}
		m.profileModel.SetProfile(profile, m.scenario.QuitAge)
		return m.recalculate(SceneDashboard)

	case ProfileSubmittedMsg:
		profile := msg.Profile
		m.profile = &profile
		quitAge := msg.QuitAge
		if quitAge <= 0 {
			quitAge = m.ageNow()
		}
		// A claim age picked for an earlier profile may fall outside the new window.
		m.scenario = domain.Scenario{QuitAge: quitAge, Strategy: m.scenario.Strategy}
		return m.recalculate(SceneDashboard)

	case QuitAgeSelectedMsg:
		m.scenario = m.scenario.WithQuitAge(msg.QuitAge)
		return m.recalculate(SceneDashboard)

	case CalculationCompleteMsg:
		if !m.isCurrent(msg.Profile, msg.Scenario) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.dashboardModel.SetResult(msg)
		return m, nil

	case ComparisonCompleteMsg:
		if !m.isCurrent(msg.Profile, msg.Scenario) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetComparison(msg.Set)
		return m, nil
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// The profile form receives typed characters, so only esc is global there
	if m.currentScene == SceneProfile {
		if msg.String() == "esc" && m.profile != nil {
			return m.navigate(SceneDashboard)
		}
		return m.updateCurrentScene(msg)
	}

	// Global keyboard shortcuts
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		return m.navigate(SceneHelp)

	case "esc":
		if m.currentScene != SceneDashboard && m.profile != nil {
			return m.navigate(SceneDashboard)
		}
		return m, nil

	case "p":
		return m.navigate(SceneProfile)

	case "d":
		return m.navigate(SceneDashboard)

	case "c":
		return m.navigate(SceneCompare)
	}

	if m.currentScene == SceneDashboard {
		return m.handleDashboardKey(msg)
	}
	return m.updateCurrentScene(msg)
}

// handleDashboardKey adjusts the explored scenario
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.profile == nil {
		return m, nil
	}

	switch msg.String() {
	case "+", "=", "right", "l":
		return m.adjustQuitAge(1)

	case "-", "left", "h":
		return m.adjustQuitAge(-1)

	case "t":
		next := domain.StrategyStopAtMinimum
		if m.scenario.Strategy == domain.StrategyStopAtMinimum {
			next = domain.StrategyPayThrough
		}
		m.scenario = m.scenario.WithStrategy(next)
		return m.recalculate(SceneDashboard)

	case "a":
		m.scenario = m.scenario.WithClaimAge(m.nextClaimAge())
		return m.recalculate(SceneDashboard)
	}
	return m, nil
}

// adjustQuitAge moves the quit age within [age now, claim age]
func (m Model) adjustQuitAge(delta float64) (tea.Model, tea.Cmd) {
	next := m.scenario.QuitAge + delta
	if next < m.ageNow() || next > m.claimAge() {
		return m, nil
	}
	m.scenario = m.scenario.WithQuitAge(next)
	return m.recalculate(SceneDashboard)
}

// nextClaimAge cycles early → legal → delay. An age that matches no option
// goes back to the statutory age.
func (m Model) nextClaimAge() float64 {
	r := m.flexRange()
	options := calculation.ClaimAgeOptions(r)
	current, ok := calculation.MatchClaimOption(r, m.claimAge())
	if !ok {
		return r.LegalAge
	}
	for i, opt := range options {
		if opt.Kind == current.Kind {
			return options[(i+1)%len(options)].Age
		}
	}
	return r.LegalAge
}

func (m Model) ageNow() float64 {
	if m.profile == nil {
		return 0
	}
	return float64(calculation.AgeFromBirth(m.profile.BirthYear, m.profile.BirthMonth))
}

// navigate switches scenes, starting the work a scene needs on entry
func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene != SceneProfile && scene != SceneHelp && m.profile == nil {
		return m, nil
	}
	if scene != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = scene
	}
	if scene == SceneCompare {
		m.compareModel.SetComparison(nil)
		m.loading = true
		m.loadingMessage = "Comparing quit ages..."
		return m, compareCmd(m.compareEngine, *m.profile, m.scenario)
	}
	return m, nil
}

// recalculate shows a scene and projects the current scenario
func (m Model) recalculate(scene Scene) (tea.Model, tea.Cmd) {
	if scene != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = scene
	}
	m.loading = true
	m.loadingMessage = "Calculating..."
	return m, calculateCmd(m.calcEngine, *m.profile, m.scenario)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneProfile:
		m.profileModel, cmd = m.profileModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
