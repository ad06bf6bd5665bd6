package compare

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/domain"
)

// ErrNoCandidates is returned when no candidate quit age falls between now and the claim age
var ErrNoCandidates = errors.New("no candidate quit ages between current age and claim age")

// DefaultOffsets are the years added to the current quit age to form extra candidates
var DefaultOffsets = []float64{3, 5}

// CompareEngine orchestrates quit-age comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	CurrentAge float64         // The quit age the user is currently considering
	Offsets    []float64       // Years added to CurrentAge, capped at the claim age (nil uses DefaultOffsets)
	Candidates []float64       // Additional explicit quit ages
	ClaimAge   *float64        // Claim age shared by every candidate (nil uses the statutory age)
	Strategy   domain.Strategy // Contribution strategy shared by every candidate
}

// CandidateAges returns the sorted, unique quit ages to compare, restricted to [ageNow, claimAge]
func CandidateAges(ageNow int, claimAge float64, options CompareOptions) []float64 {
	offsets := options.Offsets
	if offsets == nil {
		offsets = DefaultOffsets
	}

	raw := []float64{float64(ageNow), options.CurrentAge}
	for _, off := range offsets {
		raw = append(raw, min(options.CurrentAge+off, claimAge))
	}
	raw = append(raw, options.Candidates...)

	seen := make(map[float64]bool, len(raw))
	ages := make([]float64, 0, len(raw))
	for _, age := range raw {
		if seen[age] || age < float64(ageNow) || age > claimAge {
			continue
		}
		seen[age] = true
		ages = append(ages, age)
	}
	sort.Float64s(ages)
	return ages
}

// Compare projects every candidate quit age for a profile and picks the one with the highest net gain
func (ce *CompareEngine) Compare(
	ctx context.Context,
	profile *domain.Profile,
	options CompareOptions,
) (*ComparisonSet, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", domain.ErrInvalidProfile)
	}

	ageNow := calculation.AgeFromBirth(profile.BirthYear, profile.BirthMonth)
	claimAge := domain.LegalRetirementAge(profile.Gender, profile.BirthYear)
	if options.ClaimAge != nil {
		claimAge = *options.ClaimAge
	}

	ages := CandidateAges(ageNow, claimAge, options)
	if len(ages) == 0 {
		return nil, fmt.Errorf("%w (age %d, claim %g)", ErrNoCandidates, ageNow, claimAge)
	}

	scenario := domain.Scenario{Strategy: options.Strategy}.WithClaimAge(claimAge)
	results := make([]ComparisonResult, 0, len(ages))
	bestIndex := 0
	for i, age := range ages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := ce.CalcEngine.ComputeRetirement(profile, scenario.WithQuitAge(age))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate quit age %g: %w", age, err)
		}

		cr := ce.MetricsCalculator.CalculateMetrics(age, r)
		cr.IsImmediate = age == float64(ageNow)
		cr.IsCurrent = age == options.CurrentAge
		results = append(results, cr)

		// Strictly greater keeps the earliest candidate on ties
		if cr.NetGain.GreaterThan(results[bestIndex].NetGain) {
			bestIndex = i
		}
	}

	best := results[bestIndex]
	for i := range results {
		results[i] = ce.MetricsCalculator.CalculateComparison(results[i], best)
	}
	results[bestIndex].IsBest = true

	compSet := &ComparisonSet{
		AgeNow:     ageNow,
		CurrentAge: options.CurrentAge,
		ClaimAge:   claimAge,
		Strategy:   options.Strategy,
		Results:    results,
		BestIndex:  bestIndex,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
