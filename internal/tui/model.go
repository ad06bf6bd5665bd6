package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/compare"
	"github.com/rgehrsitz/quitcalc/internal/config"
	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/rgehrsitz/quitcalc/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Input and policy
	inputPath string
	profile   *domain.Profile
	policy    domain.PolicyConfig

	// Engines
	calcEngine    *calculation.CalculationEngine
	compareEngine *compare.CompareEngine

	// Scenario being explored
	scenario domain.Scenario

	// Scene models
	profileModel   *scenes.ProfileModel
	dashboardModel *scenes.DashboardModel
	compareModel   *scenes.CompareModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. With an empty inputPath the
// explorer starts on the profile form.
func NewModel(inputPath string) Model {
	policy := domain.DefaultPolicy()
	calcEngine := calculation.NewCalculationEngineWithPolicy(policy)
	m := Model{
		currentScene:   SceneProfile,
		previousScene:  SceneProfile,
		inputPath:      inputPath,
		policy:         policy,
		calcEngine:     calcEngine,
		compareEngine:  compare.NewCompareEngine(calcEngine),
		profileModel:   scenes.NewProfileModel(),
		dashboardModel: scenes.NewDashboardModel(),
		compareModel:   scenes.NewCompareModel(),
		width:          100,
		height:         40,
	}
	if inputPath != "" {
		m.loading = true
		m.loadingMessage = "Loading " + inputPath + "..."
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.inputPath == "" {
		return nil
	}
	return loadInputCmd(m.inputPath)
}

// loadInputCmd returns a command that parses the input file
func loadInputCmd(path string) tea.Cmd {
	return func() tea.Msg {
		input, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{Input: input}
	}
}

// calculateCmd returns a command that projects one scenario with its timeline and advice
func calculateCmd(engine *calculation.CalculationEngine, profile domain.Profile, scenario domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.ComputeRetirement(&profile, scenario)
		if err != nil {
			return CalculationCompleteMsg{Profile: profile, Scenario: scenario, Err: err}
		}
		advice, err := engine.Advise(&profile, scenario)
		if err != nil {
			return CalculationCompleteMsg{Profile: profile, Scenario: scenario, Err: err}
		}
		timeline, ok := calculation.BuildTimeline(result, calculation.Now())
		return CalculationCompleteMsg{
			Profile:     profile,
			Scenario:    scenario,
			Result:      result,
			Timeline:    timeline,
			HasTimeline: ok,
			Advice:      advice,
		}
	}
}

// compareCmd returns a command that compares quit ages around the current scenario
func compareCmd(engine *compare.CompareEngine, profile domain.Profile, scenario domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), &profile, compare.CompareOptions{
			CurrentAge: scenario.QuitAge,
			ClaimAge:   scenario.ClaimAge,
			Strategy:   scenario.Strategy,
		})
		return ComparisonCompleteMsg{Profile: profile, Scenario: scenario, Set: set, Err: err}
	}
}

// isCurrent reports whether work started for profile and scenario still
// matches what the user is exploring. Commands run concurrently, so replies
// can arrive out of order.
func (m Model) isCurrent(profile domain.Profile, scenario domain.Scenario) bool {
	return m.profile != nil && m.profile.Equal(profile) && m.scenario.Equal(scenario)
}

// Scenario returns the scenario currently explored
func (m Model) Scenario() domain.Scenario {
	return m.scenario
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Err returns the error on screen, if any
func (m Model) Err() error {
	return m.err
}

// Result returns the projection shown on the dashboard
func (m Model) Result() *domain.RetirementResult {
	return m.dashboardModel.Result()
}

// flexRange returns the claiming window for the loaded profile
func (m Model) flexRange() domain.FlexRange {
	return domain.FlexibleRetirementRange(m.profile.Gender, m.profile.BirthYear)
}

// claimAge returns the claim age the scenario resolves to
func (m Model) claimAge() float64 {
	if m.scenario.ClaimAge != nil {
		return *m.scenario.ClaimAge
	}
	return m.flexRange().LegalAge
}
