package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/rgehrsitz/quitcalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/quitcalc/internal/tui/tuistyles"
)

const (
	fieldBirthYear = iota
	fieldBirthMonth
	fieldGender
	fieldHukou
	fieldYearsPaid
	fieldBalance
	fieldQuitAge
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Birth year",
	"Birth month",
	"Gender (f/m)",
	"Beijing hukou (yes/no)",
	"Years paid so far",
	"Account balance (¥)",
	"Quit age (blank = now)",
}

var fieldPlaceholders = [fieldCount]string{
	"e.g., 1988",
	"1-12",
	"f",
	"yes",
	"e.g., 10",
	"e.g., 80000",
	"",
}

// ProfileModel is the form used to enter or edit the personal profile
type ProfileModel struct {
	inputs []textinput.Model
	focus  int
	err    error
	width  int
	height int
}

// NewProfileModel creates an empty profile form with the first field focused
func NewProfileModel() *ProfileModel {
	m := &ProfileModel{inputs: make([]textinput.Model, fieldCount)}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 12
		ti.Width = 16
		ti.Prompt = ""
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

// SetProfile fills the form from an existing profile
func (m *ProfileModel) SetProfile(p domain.Profile, quitAge float64) {
	m.inputs[fieldBirthYear].SetValue(strconv.Itoa(p.BirthYear))
	m.inputs[fieldBirthMonth].SetValue(strconv.Itoa(p.BirthMonth))
	m.inputs[fieldGender].SetValue(string(p.Gender))
	m.inputs[fieldHukou].SetValue(string(p.Hukou))
	m.inputs[fieldYearsPaid].SetValue(strconv.FormatFloat(p.YearsPaidNow, 'f', -1, 64))
	m.inputs[fieldBalance].SetValue(p.BalanceNow.String())
	if quitAge > 0 {
		m.inputs[fieldQuitAge].SetValue(strconv.FormatFloat(quitAge, 'f', -1, 64))
	}
	m.err = nil
}

// SetSize updates the model dimensions
func (m *ProfileModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Err returns the last validation error, if any
func (m *ProfileModel) Err() error {
	return m.err
}

// Update handles messages for the profile form
func (m *ProfileModel) Update(msg tea.Msg) (*ProfileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("tab", "down"))):
			return m, m.setFocus(m.focus + 1)

		case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
			return m, m.setFocus(m.focus - 1)

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if m.focus == fieldCount-1 {
				return m, m.submit()
			}
			return m, m.setFocus(m.focus + 1)

		case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *ProfileModel) setFocus(index int) tea.Cmd {
	index = (index + fieldCount) % fieldCount
	m.inputs[m.focus].Blur()
	m.focus = index
	return m.inputs[m.focus].Focus()
}

func (m *ProfileModel) submit() tea.Cmd {
	profile, quitAge, err := m.parse()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	return func() tea.Msg {
		return tuimsg.ProfileSubmittedMsg{Profile: profile, QuitAge: quitAge}
	}
}

func (m *ProfileModel) value(field int) string {
	return strings.TrimSpace(m.inputs[field].Value())
}

// parse converts the form into a validated profile and an optional quit age
func (m *ProfileModel) parse() (domain.Profile, float64, error) {
	var p domain.Profile
	var err error

	if p.BirthYear, err = strconv.Atoi(m.value(fieldBirthYear)); err != nil {
		return p, 0, fmt.Errorf("birth year must be a whole number")
	}
	if p.BirthMonth, err = strconv.Atoi(m.value(fieldBirthMonth)); err != nil {
		return p, 0, fmt.Errorf("birth month must be a whole number")
	}
	if p.Gender, err = domain.ParseGender(m.value(fieldGender)); err != nil {
		return p, 0, err
	}
	if p.Hukou, err = domain.ParseHukou(m.value(fieldHukou)); err != nil {
		return p, 0, err
	}
	if p.YearsPaidNow, err = strconv.ParseFloat(m.value(fieldYearsPaid), 64); err != nil {
		return p, 0, fmt.Errorf("years paid must be a number")
	}
	balance := strings.ReplaceAll(m.value(fieldBalance), ",", "")
	if p.BalanceNow, err = decimal.NewFromString(balance); err != nil {
		return p, 0, fmt.Errorf("account balance must be a number")
	}
	if err := p.Validate(); err != nil {
		return p, 0, err
	}

	var quitAge float64
	if raw := m.value(fieldQuitAge); raw != "" {
		quitAge, err = strconv.ParseFloat(raw, 64)
		if err != nil || quitAge <= 0 {
			return p, 0, fmt.Errorf("quit age must be a positive number")
		}
	}
	return p, quitAge, nil
}

// View renders the profile form
func (m *ProfileModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.SectionStyle.Render("Your Profile"))
	content.WriteString("\n\n")

	labelWidth := 0
	for _, l := range fieldLabels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	for i, ti := range m.inputs {
		labelStyle := tuistyles.UnselectedItemStyle
		cursor := "  "
		if i == m.focus {
			labelStyle = tuistyles.SelectedItemStyle
			cursor = "▸ "
		}
		content.WriteString(cursor)
		content.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, fieldLabels[i])))
		content.WriteString("  ")
		content.WriteString(ti.View())
		content.WriteString("\n")
	}

	if m.err != nil {
		content.WriteString("\n")
		content.WriteString(tuistyles.ErrorStyle.Render("✗ " + m.err.Error()))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(tuistyles.InfoStyle.Render("tab/↑↓ move • enter next • ctrl+s or enter on last field to calculate"))

	return tuistyles.BorderStyle.Render(content.String())
}
