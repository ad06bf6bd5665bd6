package scenes

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/rgehrsitz/quitcalc/internal/tui/components"
	"github.com/rgehrsitz/quitcalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/quitcalc/internal/tui/tuistyles"
)

// DashboardModel shows the projection for the current quit scenario
type DashboardModel struct {
	result      *domain.RetirementResult
	previous    *domain.RetirementResult
	timeline    calculation.Timeline
	hasTimeline bool
	advice      []calculation.Advice
	width       int
	height      int
}

// NewDashboardModel creates an empty dashboard
func NewDashboardModel() *DashboardModel {
	return &DashboardModel{}
}

// SetResult stores a new projection, keeping the prior one for trend arrows
func (m *DashboardModel) SetResult(msg tuimsg.CalculationCompleteMsg) {
	m.previous = m.result
	m.result = msg.Result
	m.timeline = msg.Timeline
	m.hasTimeline = msg.HasTimeline
	m.advice = msg.Advice
}

// Result returns the projection on screen
func (m *DashboardModel) Result() *domain.RetirementResult {
	return m.result
}

// SetSize updates the model dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.result == nil {
		return tuistyles.BorderStyle.Render(tuistyles.InfoStyle.Render("No projection yet. Press p to enter your profile."))
	}
	r := m.result

	sections := []string{
		m.renderSlider(),
		m.renderScenarioLine(),
		components.MetricGrid(m.metricCards(), m.columns()),
		m.renderEligibility(),
	}
	if m.hasTimeline {
		sections = append(sections, tuistyles.SectionStyle.Render("Timeline")+"\n"+
			components.NewTimelineBar(m.timeline).WithWidth(m.barWidth()).Render())
	}
	if len(m.advice) > 0 {
		sections = append(sections, m.renderAdvice())
	}
	sections = append(sections, tuistyles.SubtitleStyle.Render(calculation.ClaimAgeNote(r)))

	return tuistyles.BorderStyle.Render(strings.Join(sections, "\n\n"))
}

func (m *DashboardModel) columns() int {
	if m.width > 0 && m.width < 90 {
		return 2
	}
	return 3
}

func (m *DashboardModel) barWidth() int {
	if m.width > 0 && m.width < 70 {
		return max(10, m.width-16)
	}
	return 50
}

func (m *DashboardModel) renderSlider() string {
	r := m.result
	slider := components.NewAgeSlider("Quit age", r.QuitAge, float64(r.AgeNow), r.ActualClaimAge, 1).
		WithMark(r.LegalAge, "legal").
		WithWidth(m.barWidth()).
		SetFocused(true)
	return slider.Render()
}

func (m *DashboardModel) renderScenarioLine() string {
	r := m.result
	line := fmt.Sprintf("Strategy: %s   Claim at %g (%s window %g-%g)",
		r.Strategy.Description(), r.ActualClaimAge, claimKindLabel(r), r.FlexRange.Earliest, r.FlexRange.Latest)
	if stopAge, ok := r.StopPayAge(); ok {
		line += fmt.Sprintf("\nStop paying at %g, then wait %.1f years unpaid", stopAge, r.YearsWaiting())
	}
	return tuistyles.ParameterLabelStyle.Render(line)
}

func claimKindLabel(r *domain.RetirementResult) string {
	if opt, ok := calculation.MatchClaimOption(r.FlexRange, r.ActualClaimAge); ok {
		return string(opt.Kind)
	}
	return "custom"
}

func (m *DashboardModel) metricCards() []*components.MetricCard {
	r := m.result
	width := 24

	pension := components.NewMetricCard("Monthly pension", tuistyles.FormatCurrency(r.MonthlyPension)).
		WithDescription("≈ " + tuistyles.FormatCurrency(r.RealPension) + " in today's money").
		WithWidth(width)
	cost := components.NewMetricCard("Self-paid cost", tuistyles.FormatCurrency(r.TotalFlexCost)).
		WithDescription(fmt.Sprintf("%.1f years at %s/mo", r.YearsFlexPay, tuistyles.FormatCurrency(r.FlexMonthly))).
		WithWidth(width)
	gain := components.NewMetricCard("Lifetime net gain", tuistyles.FormatCurrency(r.NetGain)).
		WithDescription("received minus self-paid").
		WithWidth(width)
	if p := m.previous; p != nil {
		pension.WithMoneyDelta(r.MonthlyPension, p.MonthlyPension, true)
		cost.WithMoneyDelta(r.TotalFlexCost, p.TotalFlexCost, false)
		gain.WithMoneyDelta(r.NetGain, p.NetGain, true)
	}

	return []*components.MetricCard{
		pension,
		cost,
		gain,
		components.NewMetricCard("Payback", calculation.PaybackLabel(r.PaybackYears)).
			WithDescription("cost ÷ yearly pension").
			WithWidth(width),
		components.NewMetricCard("Contribution years", fmt.Sprintf("%.1f", r.TotalYears)).
			WithDescription(fmt.Sprintf("%.1f working + %.1f self-paid", r.YearsWorking, r.YearsFlexPay)).
			WithWidth(width),
		components.NewMetricCard("Account at claim", tuistyles.FormatCurrency(r.FinalBalance)).
			WithDescription("personal " + tuistyles.FormatCurrency(r.PersonalPension) + " + base " + tuistyles.FormatCurrency(r.BasePension)).
			WithWidth(width),
	}
}

func (m *DashboardModel) renderEligibility() string {
	r := m.result
	var lines []string

	pension := fmt.Sprintf("Pension: %.1f / %g years", r.TotalYears, r.MinPensionYearsRequired)
	if !r.PensionOK {
		pension += fmt.Sprintf(" (short %.1f)", r.PensionShortfall)
	}
	lines = append(lines, tuistyles.StatusStyle(r.PensionOK).Render(statusMark(r.PensionOK)+" "+pension))

	medical := fmt.Sprintf("Medical: %.1f / %g years", r.TotalYears, r.NeedMedicalYears)
	if !r.MedicalOK {
		medical += fmt.Sprintf(" (buy-in %s)", tuistyles.FormatCurrency(r.MedicalExtraCost))
	}
	lines = append(lines, tuistyles.StatusStyle(r.MedicalOK).Render(statusMark(r.MedicalOK)+" "+medical))

	s := r.Subsidy4050
	switch {
	case s.Eligible:
		lines = append(lines, tuistyles.StatusStyle(true).Render(fmt.Sprintf("✓ 4050 subsidy: %g years, %s",
			s.SubsidyYears, tuistyles.FormatCurrency(s.SubsidyAmount))))
	case s.Reason != "":
		lines = append(lines, tuistyles.SubtitleStyle.Render("4050 subsidy: "+s.Reason))
	}

	return strings.Join(lines, "\n")
}

func statusMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "!"
}

func (m *DashboardModel) renderAdvice() string {
	var content strings.Builder
	content.WriteString(tuistyles.SectionStyle.Render("Advice"))
	for _, a := range m.advice {
		content.WriteString("\n")
		content.WriteString(adviceIcon(a.Kind))
		content.WriteString(" ")
		content.WriteString(tuistyles.MetricValueStyle.Render(a.Title))
		if a.Description != "" {
			content.WriteString("\n  ")
			content.WriteString(tuistyles.SubtitleStyle.Render(a.Description))
		}
	}
	return content.String()
}

func adviceIcon(kind calculation.AdviceKind) string {
	switch kind {
	case calculation.AdviceSuccess:
		return tuistyles.StatusStyle(true).Render("✓")
	case calculation.AdviceWarning:
		return tuistyles.StatusStyle(false).Render("!")
	default:
		return tuistyles.InfoStyle.Render("i")
	}
}
