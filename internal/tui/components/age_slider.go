package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/quitcalc/internal/tui/tuistyles"
)

// SliderMark labels a notable age on the slider track, e.g. the statutory age
type SliderMark struct {
	Age   float64
	Label string
}

// AgeSlider displays an adjustable age with a visual track
type AgeSlider struct {
	Label     string
	Value     float64
	Min       float64
	Max       float64
	Step      float64
	Marks     []SliderMark
	Width     int
	IsFocused bool
}

// NewAgeSlider creates a new age slider
func NewAgeSlider(label string, value, min, max, step float64) *AgeSlider {
	s := &AgeSlider{
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 40,
	}
	s.SetValue(value)
	return s
}

// WithMark adds a labeled mark on the track
func (s *AgeSlider) WithMark(age float64, label string) *AgeSlider {
	s.Marks = append(s.Marks, SliderMark{Age: age, Label: label})
	return s
}

// WithWidth sets the track width
func (s *AgeSlider) WithWidth(width int) *AgeSlider {
	s.Width = width
	return s
}

// SetFocused sets the focus state
func (s *AgeSlider) SetFocused(focused bool) *AgeSlider {
	s.IsFocused = focused
	return s
}

// Increment raises the value by one step and reports whether it moved
func (s *AgeSlider) Increment() bool {
	next := s.Value + s.Step
	if next > s.Max {
		return false
	}
	s.Value = next
	return true
}

// Decrement lowers the value by one step and reports whether it moved
func (s *AgeSlider) Decrement() bool {
	next := s.Value - s.Step
	if next < s.Min {
		return false
	}
	s.Value = next
	return true
}

// SetValue sets the value directly, clamping to min/max
func (s *AgeSlider) SetValue(value float64) {
	s.Value = math.Max(s.Min, math.Min(s.Max, value))
}

// Percentage returns the position of an age within the range
func (s *AgeSlider) Percentage(age float64) float64 {
	if s.Max <= s.Min {
		return 0
	}
	return math.Max(0, math.Min(1, (age-s.Min)/(s.Max-s.Min)))
}

func (s *AgeSlider) column(age float64) int {
	col := int(math.Round(float64(s.Width-1) * s.Percentage(age)))
	if col < 0 {
		return 0
	}
	return col
}

// Render returns the label, track and range line
func (s *AgeSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	if s.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}
	content.WriteString(labelStyle.Render(s.Label))
	content.WriteString(" ")
	content.WriteString(tuistyles.ParameterValueStyle.Render(formatAge(s.Value)))
	content.WriteString("\n")

	content.WriteString(s.renderTrack())
	content.WriteString("\n")

	rangeText := fmt.Sprintf("%s  ─  %s", formatAge(s.Min), formatAge(s.Max))
	for _, mark := range s.Marks {
		rangeText += fmt.Sprintf("   ◆ %s %s", mark.Label, formatAge(mark.Age))
	}
	content.WriteString(tuistyles.SubtitleStyle.Render(rangeText))

	if s.IsFocused {
		content.WriteString("\n")
		content.WriteString(tuistyles.InfoStyle.Render("← → or - + to adjust"))
	}
	return content.String()
}

func (s *AgeSlider) renderTrack() string {
	if s.Width < 2 {
		return ""
	}
	thumb := s.column(s.Value)
	marks := make(map[int]bool, len(s.Marks))
	for _, mark := range s.Marks {
		marks[s.column(mark.Age)] = true
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < s.Width; i++ {
		switch {
		case i == thumb:
			bar.WriteString(tuistyles.SliderThumbStyle.Render("●"))
		case marks[i]:
			bar.WriteString(tuistyles.SliderMarkStyle.Render("◆"))
		case i < thumb:
			bar.WriteString(tuistyles.SliderThumbStyle.Render("━"))
		default:
			bar.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}

// RenderCompact returns a single-line version
func (s *AgeSlider) RenderCompact() string {
	label := tuistyles.ParameterLabelStyle.Render(s.Label + ":")
	value := tuistyles.ParameterValueStyle.Render(formatAge(s.Value))
	return fmt.Sprintf("%s %s", label, value)
}

func formatAge(age float64) string {
	return fmt.Sprintf("%g", math.Round(age*10)/10)
}
