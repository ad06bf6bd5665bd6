package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/rgehrsitz/quitcalc/internal/tui/tuimsg"
)

func filledForm(values ...string) *ProfileModel {
	m := NewProfileModel()
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
	return m
}

func TestProfileModel_Submit(t *testing.T) {
	m := filledForm("1988", "6", "f", "yes", "10", "80,000", "45")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.ProfileSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, 1988, msg.Profile.BirthYear)
	assert.Equal(t, domain.GenderFemale, msg.Profile.Gender)
	assert.Equal(t, domain.HukouBeijing, msg.Profile.Hukou)
	assert.True(t, msg.Profile.BalanceNow.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, 45.0, msg.QuitAge)
	assert.NoError(t, m.Err())
}

func TestProfileModel_BlankQuitAge(t *testing.T) {
	m := filledForm("1975", "1", "male", "no", "20", "150000")
	profile, quitAge, err := m.parse()
	require.NoError(t, err)
	assert.Equal(t, 0.0, quitAge)
	assert.Equal(t, domain.HukouNonBeijing, profile.Hukou)
}

func TestProfileModel_ValidationErrors(t *testing.T) {
	tests := map[string][]string{
		"non-numeric year":   {"abc", "6", "f", "yes", "10", "80000"},
		"month out of range": {"1988", "13", "f", "yes", "10", "80000"},
		"unknown gender":     {"1988", "6", "x", "yes", "10", "80000"},
		"zero years paid":    {"1988", "6", "f", "yes", "0", "80000"},
		"bad balance":        {"1988", "6", "f", "yes", "10", "lots"},
		"negative quit":      {"1988", "6", "f", "yes", "10", "80000", "-1"},
	}
	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			m := filledForm(values...)
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
			assert.Nil(t, cmd)
			assert.Error(t, m.Err())
			assert.Contains(t, m.View(), "✗")
		})
	}
}

func TestProfileModel_FocusNavigation(t *testing.T) {
	m := NewProfileModel()
	assert.Equal(t, 0, m.focus)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldCount-1, m.focus, "focus wraps around")

	// enter on the last field submits, which fails on an empty form
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Error(t, m.Err())
}

func TestProfileModel_SetProfileRoundTrip(t *testing.T) {
	p := domain.Profile{
		BirthYear:    1988,
		BirthMonth:   6,
		Gender:       domain.GenderFemale,
		Hukou:        domain.HukouBeijing,
		YearsPaidNow: 10.5,
		BalanceNow:   decimal.NewFromInt(80000),
	}
	m := NewProfileModel()
	m.SetProfile(p, 45)

	got, quitAge, err := m.parse()
	require.NoError(t, err)
	assert.Equal(t, p.BirthYear, got.BirthYear)
	assert.Equal(t, p.YearsPaidNow, got.YearsPaidNow)
	assert.True(t, p.BalanceNow.Equal(got.BalanceNow))
	assert.Equal(t, 45.0, quitAge)
}
