package components

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
)

func TestAgeSlider_StaysInRange(t *testing.T) {
	s := NewAgeSlider("Quit age", 60, 37, 52.6, 1)
	assert.Equal(t, 52.6, s.Value, "initial value is clamped")

	s.SetValue(51)
	assert.True(t, s.Increment())
	assert.Equal(t, 52.0, s.Value)
	assert.False(t, s.Increment())
	assert.Equal(t, 52.0, s.Value)

	s.SetValue(37)
	assert.False(t, s.Decrement())
	assert.Equal(t, 37.0, s.Value)
}

func TestAgeSlider_Render(t *testing.T) {
	s := NewAgeSlider("Quit age", 45, 37, 55.6, 1).WithMark(52.6, "legal").WithWidth(20)
	out := s.Render()
	assert.Contains(t, out, "Quit age")
	assert.Contains(t, out, "45")
	assert.Contains(t, out, "legal 52.6")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "◆")
	assert.InDelta(t, 0.4301, s.Percentage(45), 1e-3)
}

func TestMetricCard_MoneyDelta(t *testing.T) {
	up := NewMetricCard("Monthly pension", "¥4,253").
		WithMoneyDelta(decimal.NewFromInt(4253), decimal.NewFromInt(4170), true)
	require.NotNil(t, up.Trend)
	assert.True(t, up.Trend.IsPositive)
	assert.Equal(t, "+¥83", up.Trend.Change)

	cost := NewMetricCard("Self-paid cost", "¥164,160").
		WithMoneyDelta(decimal.NewFromInt(164160), decimal.NewFromInt(142560), false)
	require.NotNil(t, cost.Trend)
	assert.False(t, cost.Trend.IsPositive, "a higher cost is unfavorable")

	same := NewMetricCard("Net gain", "¥1").
		WithMoneyDelta(decimal.NewFromInt(1), decimal.NewFromInt(1), true)
	assert.Nil(t, same.Trend)

	assert.Contains(t, up.RenderCompact(), "▲ +¥83")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 3))
	grid := MetricGrid([]*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}, 2)
	assert.Contains(t, grid, "A")
	assert.Contains(t, grid, "C")
}

func TestTimelineBar(t *testing.T) {
	stop := 2036
	tl := calculation.Timeline{
		StartYear:   2026,
		StartAge:    37,
		QuitYear:    2034,
		StopPayYear: &stop,
		ClaimYear:   2041,
		TotalYears:  15.6,
		Segments: []calculation.TimelineSegment{
			{Kind: calculation.SegmentWorking, Years: 8, Percent: 51.28},
			{Kind: calculation.SegmentSelfPay, Years: 2, Percent: 12.82},
			{Kind: calculation.SegmentWaiting, Years: 5.6, Percent: 35.90},
		},
	}
	bar := NewTimelineBar(tl).WithWidth(40)

	cells := bar.cells()
	total := 0
	for _, n := range cells {
		total += n
	}
	assert.Equal(t, 40, total)

	out := bar.Render()
	assert.Contains(t, out, "stop paying 2036")
	assert.Contains(t, out, "Waiting 5.6y")
}

func TestBarChart(t *testing.T) {
	chart := NewBarChart("Net Gain").WithWidth(10).
		AddBar(Bar{Label: "37", Value: 500}).
		AddBar(Bar{Label: "45", Value: 1000, Highlight: true})

	assert.Equal(t, 5, chart.BarLength(500))
	assert.Equal(t, 10, chart.BarLength(1000))
	assert.Contains(t, chart.Render(), "Net Gain")

	assert.Contains(t, NewBarChart("Empty").Render(), "No data")
}
