package compare

import (
	"fmt"

	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/rgehrsitz/quitcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one candidate quit age with its key metrics
type ComparisonResult struct {
	QuitAge     float64                  `json:"quitAge"`
	IsImmediate bool                     `json:"isImmediate"`
	IsCurrent   bool                     `json:"isCurrent"`
	IsBest      bool                     `json:"isBest"`
	Result      *domain.RetirementResult `json:"-"`

	// Key Metrics
	TotalFlexCost  decimal.Decimal `json:"totalFlexCost"`
	MonthlyPension decimal.Decimal `json:"monthlyPension"`
	NetGain        decimal.Decimal `json:"netGain"`
	YearsFlexPay   float64         `json:"yearsFlexPay"`
	PaybackYears   float64         `json:"paybackYears"`
	PensionOK      bool            `json:"pensionOK"`
	MedicalOK      bool            `json:"medicalOK"`

	// Comparison to the best candidate
	NetGainDiffFromBest decimal.Decimal `json:"netGainDiffFromBest"`
	PensionDiffFromBest decimal.Decimal `json:"pensionDiffFromBest"`
}

// Label names the candidate for tables, e.g. "45 (current)"
func (r *ComparisonResult) Label() string {
	label := fmt.Sprintf("%g", r.QuitAge)
	switch {
	case r.IsCurrent:
		label += " (current)"
	case r.IsImmediate:
		label += " (now)"
	}
	if r.IsBest && !r.IsCurrent {
		label += " *best"
	}
	return label
}

// ComparisonSet is the outcome of comparing several quit ages
type ComparisonSet struct {
	AgeNow          int                `json:"ageNow"`
	CurrentAge      float64            `json:"currentAge"`
	ClaimAge        float64            `json:"claimAge"`
	Strategy        domain.Strategy    `json:"strategy"`
	Results         []ComparisonResult `json:"results"`
	BestIndex       int                `json:"bestIndex"`
	Recommendations []string           `json:"recommendations"`
	ConfigPath      string             `json:"configPath,omitempty"`
}

// Best returns the candidate with the highest net gain
func (cs *ComparisonSet) Best() *ComparisonResult {
	if cs.BestIndex < 0 || cs.BestIndex >= len(cs.Results) {
		return nil
	}
	return &cs.Results[cs.BestIndex]
}

// Current returns the candidate matching the user's chosen quit age, if present
func (cs *ComparisonSet) Current() *ComparisonResult {
	for i := range cs.Results {
		if cs.Results[i].IsCurrent {
			return &cs.Results[i]
		}
	}
	return nil
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for a single projection
func (mc *MetricsCalculator) CalculateMetrics(quitAge float64, result *domain.RetirementResult) ComparisonResult {
	return ComparisonResult{
		QuitAge:        quitAge,
		Result:         result,
		TotalFlexCost:  result.TotalFlexCost,
		MonthlyPension: result.MonthlyPension,
		NetGain:        result.NetGain,
		YearsFlexPay:   result.YearsFlexPay,
		PaybackYears:   result.PaybackYears,
		PensionOK:      result.PensionOK,
		MedicalOK:      result.MedicalOK,
	}
}

// CalculateComparison computes the differences between a candidate and the best one
func (mc *MetricsCalculator) CalculateComparison(candidate, best ComparisonResult) ComparisonResult {
	candidate.NetGainDiffFromBest = candidate.NetGain.Sub(best.NetGain)
	candidate.PensionDiffFromBest = candidate.MonthlyPension.Sub(best.MonthlyPension)
	return candidate
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	best := compSet.Best()
	if best == nil {
		return recommendations
	}

	recommendations = append(recommendations,
		fmt.Sprintf("Best Net Gain: quitting at %g yields %s lifetime net gain", best.QuitAge, money.Format(best.NetGain)))

	if current := compSet.Current(); current != nil && current != best {
		recommendations = append(recommendations,
			fmt.Sprintf("Switching: quitting at %g instead of %g adds %s net gain",
				best.QuitAge, current.QuitAge, money.Format(current.NetGainDiffFromBest.Neg())))
	}

	first := &compSet.Results[0]
	if first == best && len(compSet.Results) > 1 {
		recommendations = append(recommendations,
			"Earliest Is Best: every extra working year lowers the lifetime net gain")
	}

	highest := first
	for i := range compSet.Results {
		if compSet.Results[i].MonthlyPension.GreaterThan(highest.MonthlyPension) {
			highest = &compSet.Results[i]
		}
	}
	if highest != best {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Pension: quitting at %g pays %s per month", highest.QuitAge, money.Format(highest.MonthlyPension)))
	}

	for i := range compSet.Results {
		if !compSet.Results[i].PensionOK {
			recommendations = append(recommendations,
				fmt.Sprintf("Shortfall: quitting at %g leaves the pension contribution years short", compSet.Results[i].QuitAge))
			break
		}
	}

	return recommendations
}
