package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Evaluate4050 applies the "4050" unemployment subsidy rules to a quit decision.
// monthlyCost is the self-paid contribution the subsidy reimburses a share of.
func (ce *CalculationEngine) Evaluate4050(gender domain.Gender, hukou domain.Hukou, quitAge, claimAge float64, monthlyCost decimal.Decimal) domain.Subsidy4050 {
	rules := ce.Policy.Subsidy4050

	if hukou != domain.HukouBeijing {
		return domain.Subsidy4050{SubsidyAmount: decimal.Zero, SubsidyRate: decimal.Zero}
	}

	threshold := rules.SubsidyMinAge(gender)
	if quitAge < threshold {
		return domain.Subsidy4050{
			SubsidyAmount: decimal.Zero,
			SubsidyRate:   decimal.Zero,
			Reason:        fmt.Sprintf("must be at least %g years old at quit time", threshold),
		}
	}

	// A gap above the full-coverage limit drops to the capped duration, so the
	// subsidized years jump from 5 down to 3 just past the boundary.
	yearsToRetire := claimAge - quitAge
	subsidyYears := rules.CappedYears
	if yearsToRetire <= rules.FullGapYears {
		subsidyYears = yearsToRetire
	}
	subsidyYears = math.Max(0, subsidyYears)

	amount := monthlyCost.
		Mul(decimal.NewFromInt(12)).
		Mul(decimal.NewFromFloat(subsidyYears)).
		Mul(rules.Rate)

	return domain.Subsidy4050{
		Eligible:      true,
		SubsidyYears:  subsidyYears,
		SubsidyAmount: amount,
		SubsidyRate:   rules.Rate,
		YearsToRetire: &yearsToRetire,
	}
}
