package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/quitcalc/internal/compare"
	"github.com/rgehrsitz/quitcalc/internal/tui/components"
	"github.com/rgehrsitz/quitcalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/quitcalc/internal/tui/tuistyles"
)

// CompareModel lists candidate quit ages side by side
type CompareModel struct {
	set    *compare.ComparisonSet
	cursor int
	width  int
	height int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparison stores a comparison and places the cursor on the best candidate
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
	m.cursor = 0
	if set != nil && set.Best() != nil {
		m.cursor = set.BestIndex
	}
}

// Comparison returns the comparison on screen
func (m *CompareModel) Comparison() *compare.ComparisonSet {
	return m.set
}

// Cursor returns the highlighted row
func (m *CompareModel) Cursor() int {
	return m.cursor
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.set == nil || len(m.set.Results) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.set.Results)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		age := m.set.Results[m.cursor].QuitAge
		return m, func() tea.Msg {
			return tuimsg.QuitAgeSelectedMsg{QuitAge: age}
		}
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.set == nil {
		return tuistyles.BorderStyle.Render(tuistyles.InfoStyle.Render("Comparing quit ages..."))
	}

	var content strings.Builder
	content.WriteString(tuistyles.SectionStyle.Render(fmt.Sprintf("Quit Age Comparison (claim at %g, strategy %s)",
		m.set.ClaimAge, m.set.Strategy)))
	content.WriteString("\n\n")
	content.WriteString(m.renderTable())
	content.WriteString("\n\n")
	content.WriteString(m.renderChart())

	if len(m.set.Recommendations) > 0 {
		content.WriteString("\n\n")
		content.WriteString(tuistyles.SectionStyle.Render("Recommendations"))
		for _, rec := range m.set.Recommendations {
			content.WriteString("\n• ")
			content.WriteString(rec)
		}
	}

	content.WriteString("\n\n")
	content.WriteString(tuistyles.InfoStyle.Render("↑↓ select • enter to open on dashboard"))
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *CompareModel) renderTable() string {
	var rows []string
	header := fmt.Sprintf("  %-16s %8s %12s %10s %14s %10s  %s",
		"Quit Age", "Self-Pd", "Cost", "Pension", "Net Gain", "Payback", "Eligible")
	rows = append(rows, tuistyles.TableHeaderStyle.Render(header))

	for i, r := range m.set.Results {
		eligible := "yes"
		if !r.PensionOK || !r.MedicalOK {
			eligible = "no"
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-16s %8.1f %12s %10s %14s %10s  %s",
			cursor, r.Label(), r.YearsFlexPay,
			tuistyles.FormatCurrency(r.TotalFlexCost),
			tuistyles.FormatCurrency(r.MonthlyPension),
			tuistyles.FormatCurrency(r.NetGain),
			paybackCell(r.PaybackYears), eligible)

		style := tuistyles.TableCellStyle
		if i == m.cursor {
			style = tuistyles.TableHighlightStyle
		}
		rows = append(rows, style.Render(line))
	}
	return strings.Join(rows, "\n")
}

func paybackCell(years float64) string {
	if years <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", years)
}

func (m *CompareModel) renderChart() string {
	chart := components.NewBarChart("Net Gain by Quit Age").WithWidth(30)
	for _, r := range m.set.Results {
		chart.AddBar(components.Bar{
			Label:     fmt.Sprintf("%g", r.QuitAge),
			Value:     r.NetGain.InexactFloat64(),
			Display:   tuistyles.FormatCurrency(r.NetGain),
			Highlight: r.IsBest,
		})
	}
	return chart.Render()
}
