// Package tuistyles holds the lipgloss palette and styles shared by the TUI
// root model, its scenes and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/quitcalc/pkg/money"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#C0392B")
	ColorSecondary = lipgloss.Color("#2E86C1")
	ColorAccent    = lipgloss.Color("#F1C40F")
	ColorSuccess   = lipgloss.Color("#27AE60")
	ColorWarning   = lipgloss.Color("#E67E22")
	ColorDanger    = lipgloss.Color("#E74C3C")
	ColorInfo      = lipgloss.Color("#5DADE2")

	ColorForeground = lipgloss.Color("#ECF0F1")
	ColorMuted      = lipgloss.Color("#7F8C8D")
	ColorBorder     = lipgloss.Color("#566573")

	// Timeline segments
	ColorWorking = lipgloss.Color("#2E86C1")
	ColorSelfPay = lipgloss.Color("#E67E22")
	ColorWaiting = lipgloss.Color("#7F8C8D")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(lipgloss.Color("#2C3E50")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	ParameterValueStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	SliderMarkStyle  = lipgloss.NewStyle().Foreground(ColorAccent)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)
)

// MetricTrendStyle colors a change green when favorable and red otherwise
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow for the change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// StatusStyle colors an eligibility flag
func StatusStyle(ok bool) lipgloss.Style {
	if ok {
		return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
}

// FormatCurrency renders a whole-yuan amount
func FormatCurrency(amount decimal.Decimal) string {
	return money.Format(amount)
}
