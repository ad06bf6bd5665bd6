package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderError()
	}
	if m.loading {
		return m.renderLoading()
	}

	var content string
	switch m.currentScene {
	case SceneProfile:
		content = m.profileModel.View()
	case SceneDashboard:
		content = m.dashboardModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	contentHeight := max(0, m.height-4) // title (2) + status (1) + padding (1)
	container := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("QuitCalc - Beijing Early Quit Explorer")

	breadcrumb := m.currentScene.String()
	if m.profile != nil && m.scenario.QuitAge > 0 {
		breadcrumb = fmt.Sprintf("%s / quit at %g, %s, claim at %g",
			breadcrumb, m.scenario.QuitAge, m.scenario.Strategy.Description(), m.claimAge())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneProfile:
		shortcuts = []string{
			formatShortcut("tab", "next field"),
			formatShortcut("ctrl+s", "calculate"),
			formatShortcut("esc", "dashboard"),
			formatShortcut("ctrl+c", "quit"),
		}
	case SceneDashboard:
		shortcuts = []string{
			formatShortcut("+/-", "quit age"),
			formatShortcut("t", "strategy"),
			formatShortcut("a", "claim age"),
			formatShortcut("c", "compare"),
			formatShortcut("p", "profile"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	default:
		shortcuts = []string{
			formatShortcut("d", "dashboard"),
			formatShortcut("c", "compare"),
			formatShortcut("p", "profile"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	}

	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the pending operation
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(BorderStyle.Render(content))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	groups := []struct {
		title string
		keys  [][2]string
	}{
		{"NAVIGATION", [][2]string{
			{"p", "Edit profile"},
			{"d", "Dashboard"},
			{"c", "Compare quit ages"},
			{"?", "Show this help"},
			{"esc", "Back to dashboard"},
			{"q/ctrl+c", "Quit"},
		}},
		{"DASHBOARD", [][2]string{
			{"+ / →", "Quit one year later"},
			{"- / ←", "Quit one year earlier"},
			{"t", "Toggle pay-through / stop at minimum years"},
			{"a", "Cycle claim age: early, statutory, delayed"},
		}},
		{"COMPARE", [][2]string{
			{"↑ / ↓", "Select a quit age"},
			{"enter", "Open the selected age on the dashboard"},
		}},
		{"PROFILE", [][2]string{
			{"tab / ↑↓", "Move between fields"},
			{"enter", "Next field, calculate on the last one"},
			{"ctrl+s", "Calculate"},
		}},
	}

	var content strings.Builder
	for i, g := range groups {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(TitleStyle.Render(g.title))
		content.WriteString("\n")
		for _, k := range g.keys {
			content.WriteString(fmt.Sprintf("  %s  %s\n",
				HelpKeyStyle.Render(fmt.Sprintf("%-9s", k[0])), HelpDescStyle.Render(k[1])))
		}
	}
	return BorderStyle.Render(strings.TrimRight(content.String(), "\n"))
}
