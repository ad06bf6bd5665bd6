package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/tui/tuistyles"
)

// TimelineBar draws the working, self-pay and waiting phases as one stacked bar
type TimelineBar struct {
	Timeline calculation.Timeline
	Width    int
}

// NewTimelineBar creates a new timeline bar
func NewTimelineBar(timeline calculation.Timeline) *TimelineBar {
	return &TimelineBar{
		Timeline: timeline,
		Width:    50,
	}
}

// WithWidth sets the bar width
func (t *TimelineBar) WithWidth(width int) *TimelineBar {
	t.Width = width
	return t
}

// SegmentLabel names a timeline phase
func SegmentLabel(kind calculation.SegmentKind) string {
	switch kind {
	case calculation.SegmentWorking:
		return "Working"
	case calculation.SegmentSelfPay:
		return "Self-paying"
	case calculation.SegmentWaiting:
		return "Waiting"
	default:
		return string(kind)
	}
}

func segmentStyle(kind calculation.SegmentKind) lipgloss.Style {
	switch kind {
	case calculation.SegmentWorking:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorWorking)
	case calculation.SegmentSelfPay:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorSelfPay)
	default:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorWaiting)
	}
}

// cells splits the bar width across segments by share. The last segment
// absorbs rounding so the bar always fills its width.
func (t *TimelineBar) cells() []int {
	segments := t.Timeline.Segments
	out := make([]int, len(segments))
	used := 0
	for i, seg := range segments {
		if i == len(segments)-1 {
			out[i] = max(0, t.Width-used)
			break
		}
		n := int(math.Round(float64(t.Width) * seg.Percent / 100))
		n = min(n, t.Width-used)
		out[i] = n
		used += n
	}
	return out
}

// Render returns the bar, the calendar events and a legend
func (t *TimelineBar) Render() string {
	var content strings.Builder
	tl := t.Timeline

	content.WriteString("[")
	for i, n := range t.cells() {
		if n > 0 {
			content.WriteString(segmentStyle(tl.Segments[i].Kind).Render(strings.Repeat("█", n)))
		}
	}
	content.WriteString("]\n")

	events := []string{
		fmt.Sprintf("now %d (age %d)", tl.StartYear, tl.StartAge),
		fmt.Sprintf("quit %d", tl.QuitYear),
	}
	if tl.StopPayYear != nil {
		events = append(events, fmt.Sprintf("stop paying %d", *tl.StopPayYear))
	}
	events = append(events, fmt.Sprintf("claim %d", tl.ClaimYear))
	content.WriteString(tuistyles.SubtitleStyle.Render(strings.Join(events, " → ")))
	content.WriteString("\n")

	legend := make([]string, 0, len(tl.Segments))
	for _, seg := range tl.Segments {
		legend = append(legend, segmentStyle(seg.Kind).Render("■")+" "+
			fmt.Sprintf("%s %.1fy (%.0f%%)", SegmentLabel(seg.Kind), seg.Years, seg.Percent))
	}
	content.WriteString(strings.Join(legend, "  "))
	return content.String()
}
