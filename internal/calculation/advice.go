package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/rgehrsitz/quitcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// AdviceKind sets how an advice item is presented
type AdviceKind string

const (
	AdviceInfo    AdviceKind = "info"
	AdviceSuccess AdviceKind = "success"
	AdviceWarning AdviceKind = "warning"
)

var (
	// strategyAdviceThreshold is the net-gain gap between strategies worth mentioning
	strategyAdviceThreshold = decimal.NewFromInt(10000)
	// pensionGapThreshold is the monthly pension gap worth mentioning
	pensionGapThreshold = decimal.NewFromInt(100)
)

// Advice is a single recommendation derived from a projection
type Advice struct {
	Kind        AdviceKind `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// Advise compares the chosen scenario against quitting now and against the
// other contribution strategy, and flags eligibility shortfalls.
func (ce *CalculationEngine) Advise(profile *domain.Profile, scenario domain.Scenario) ([]Advice, error) {
	current, err := ce.ComputeRetirement(profile, scenario)
	if err != nil {
		return nil, err
	}
	var advice []Advice

	immediateAge := float64(current.AgeNow)
	if immediateAge < scenario.QuitAge {
		immediate, err := ce.ComputeRetirement(profile, scenario.WithQuitAge(immediateAge))
		if err != nil {
			return nil, fmt.Errorf("failed to project immediate quit: %w", err)
		}
		advice = append(advice, freeYearsAdvice(current, immediate, scenario.QuitAge-immediateAge)...)
	}

	full, err := ce.ComputeRetirement(profile, scenario.WithStrategy(domain.StrategyPayThrough))
	if err != nil {
		return nil, fmt.Errorf("failed to project pay-through strategy: %w", err)
	}
	minimum, err := ce.ComputeRetirement(profile, scenario.WithStrategy(domain.StrategyStopAtMinimum))
	if err != nil {
		return nil, fmt.Errorf("failed to project stop-at-minimum strategy: %w", err)
	}
	if item, ok := strategyAdvice(full, minimum, scenario.Strategy); ok {
		advice = append(advice, item)
	}

	if !current.PensionOK {
		advice = append(advice, Advice{
			Kind:        AdviceWarning,
			Title:       "Pension contribution years are short",
			Description: fmt.Sprintf("%.1f more years are needed before a pension can be claimed; keep contributing", current.PensionShortfall),
		})
	}
	if !current.MedicalOK {
		advice = append(advice, Advice{
			Kind:        AdviceWarning,
			Title:       fmt.Sprintf("Medical insurance needs %.1f more years", current.MedicalShortfall),
			Description: fmt.Sprintf("About %s to buy in, already included in the total cost", money.FormatCompact(current.MedicalExtraCost)),
		})
	}

	if len(advice) == 0 {
		advice = append(advice, Advice{
			Kind:        AdviceInfo,
			Title:       "Try a different quit age",
			Description: "Compare several quit ages to see how the net gain changes",
		})
	}
	return advice, nil
}

// freeYearsAdvice prices the years of freedom gained by quitting immediately
func freeYearsAdvice(current, immediate *domain.RetirementResult, freeYears float64) []Advice {
	moneyDiff := current.NetGain.Sub(immediate.NetGain)
	if !moneyDiff.IsPositive() {
		return []Advice{{
			Kind:  AdviceSuccess,
			Title: "Quitting now pays off best",
			Description: fmt.Sprintf("Quitting immediately gives %g extra years of freedom and %s more net gain; working longer only loses money",
				freeYears, money.FormatCompact(moneyDiff.Neg())),
		}}
	}

	yearlyValue := moneyDiff.Div(decimal.NewFromFloat(freeYears))
	advice := []Advice{{
		Kind:  AdviceInfo,
		Title: "What is your free time worth?",
		Description: fmt.Sprintf("Working until %g earns %s more than quitting now, about %s per extra year. If a year of freedom is worth more than %s to you, quit now.",
			current.QuitAge, money.FormatCompact(moneyDiff), money.FormatCompact(yearlyValue), money.FormatCompact(yearlyValue)),
	}}

	pensionDiff := current.MonthlyPension.Sub(immediate.MonthlyPension)
	if pensionDiff.GreaterThan(pensionGapThreshold) {
		advice = append(advice, Advice{
			Kind:  AdviceInfo,
			Title: fmt.Sprintf("Monthly pension differs by %s", money.Format(pensionDiff)),
			Description: fmt.Sprintf("Quit now: %s per month. Quit at %g: %s per month. %g more working years buy %s more each month.",
				money.Format(immediate.MonthlyPension), current.QuitAge, money.Format(current.MonthlyPension),
				freeYears, money.Format(pensionDiff)),
		})
	}
	return advice
}

// strategyAdvice recommends a contribution strategy when the two differ materially
func strategyAdvice(full, minimum *domain.RetirementResult, chosen domain.Strategy) (Advice, bool) {
	diff := full.NetGain.Sub(minimum.NetGain).Abs()
	if !diff.GreaterThan(strategyAdviceThreshold) {
		return Advice{}, false
	}

	better := domain.StrategyStopAtMinimum
	description := fmt.Sprintf("Stopping at %g contribution years earns %s more than paying through", minimum.MinPensionYearsRequired, money.FormatCompact(diff))
	if full.NetGain.GreaterThan(minimum.NetGain) {
		better = domain.StrategyPayThrough
		description = fmt.Sprintf("Paying through to the claim age earns %s more than stopping at the minimum", money.FormatCompact(diff))
	}

	if chosen == better {
		return Advice{Kind: AdviceSuccess, Title: "Your contribution strategy is the better one", Description: description}, true
	}
	return Advice{Kind: AdviceInfo, Title: fmt.Sprintf("Switching to %q pays more", better.Description()), Description: description}, true
}

// PaybackLabel renders a payback horizon for reports
func PaybackLabel(years float64) string {
	if years <= 0 || math.IsInf(years, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f years", years)
}
