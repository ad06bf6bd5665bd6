package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/quitcalc/internal/tui/tuistyles"
)

// Bar is one labeled value in a BarChart
type Bar struct {
	Label     string
	Value     float64
	Display   string // preformatted value, e.g. "¥1,234,378"
	Highlight bool
}

// BarChart draws horizontal bars scaled to the largest absolute value
type BarChart struct {
	Title string
	Bars  []Bar
	Width int
}

// NewBarChart creates a new bar chart
func NewBarChart(title string) *BarChart {
	return &BarChart{
		Title: title,
		Width: 40,
	}
}

// AddBar appends a bar
func (c *BarChart) AddBar(bar Bar) *BarChart {
	c.Bars = append(c.Bars, bar)
	return c
}

// WithWidth sets the longest bar length
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

func (c *BarChart) scale() float64 {
	var peak float64
	for _, b := range c.Bars {
		peak = math.Max(peak, math.Abs(b.Value))
	}
	return peak
}

// BarLength returns how many cells a value occupies
func (c *BarChart) BarLength(value float64) int {
	peak := c.scale()
	if peak == 0 {
		return 0
	}
	return int(math.Round(float64(c.Width) * math.Abs(value) / peak))
}

// Render returns the styled chart
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	labelWidth := 0
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.SectionStyle.Render(c.Title))
		content.WriteString("\n")
	}

	for i, b := range c.Bars {
		style := lipgloss.NewStyle().Foreground(tuistyles.ColorSecondary)
		switch {
		case b.Highlight:
			style = lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)
		case b.Value < 0:
			style = lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
		}
		display := b.Display
		if display == "" {
			display = fmt.Sprintf("%.0f", b.Value)
		}
		content.WriteString(fmt.Sprintf("%-*s ", labelWidth, b.Label))
		content.WriteString(style.Render(strings.Repeat("▇", c.BarLength(b.Value))))
		content.WriteString(" ")
		content.WriteString(tuistyles.SubtitleStyle.Render(display))
		if i < len(c.Bars)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}
