package calculation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rgehrsitz/quitcalc/internal/domain"
)

// ClaimKind labels a point in the flexible claiming window
type ClaimKind string

const (
	ClaimEarly ClaimKind = "early"
	ClaimLegal ClaimKind = "legal"
	ClaimDelay ClaimKind = "delay"
)

// claimMatchTolerance is how close an age must be to an option to count as selecting it
const claimMatchTolerance = 0.1

// ClaimOption is one selectable claim age
type ClaimOption struct {
	Kind ClaimKind `json:"kind"`
	Age  float64   `json:"age"`
}

// ClaimAgeOptions returns the earliest, statutory and latest claim ages of a window
func ClaimAgeOptions(r domain.FlexRange) []ClaimOption {
	return []ClaimOption{
		{Kind: ClaimEarly, Age: r.Earliest},
		{Kind: ClaimLegal, Age: r.LegalAge},
		{Kind: ClaimDelay, Age: r.Latest},
	}
}

// MatchClaimOption returns the option an age selects, if any
func MatchClaimOption(r domain.FlexRange, age float64) (ClaimOption, bool) {
	for _, opt := range ClaimAgeOptions(r) {
		if math.Abs(opt.Age-age) < claimMatchTolerance {
			return opt, true
		}
	}
	return ClaimOption{}, false
}

// ResolveClaimAge turns "early", "legal", "delay" or a numeric age into a claim age.
// An empty string resolves to the statutory age.
func ResolveClaimAge(r domain.FlexRange, value string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", string(ClaimLegal):
		return r.LegalAge, nil
	case string(ClaimEarly), "earliest":
		return r.Earliest, nil
	case string(ClaimDelay), "latest", "delayed":
		return r.Latest, nil
	}
	age, err := strconv.ParseFloat(v, 64)
	if err != nil || !isFinite(age) || age <= 0 {
		return 0, fmt.Errorf("%w: claim age %q is not early, legal, delay or a positive age", domain.ErrInvalidScenario, value)
	}
	return age, nil
}

// ClaimAgeNote explains how the claim age affects the annuity divisor
func ClaimAgeNote(result *domain.RetirementResult) string {
	d := PensionDivisor(result.ActualClaimAge)
	switch {
	case result.ActualClaimAge < result.LegalAge:
		return fmt.Sprintf("Early claim: lower pension (divisor %d months), paid out sooner", d)
	case result.ActualClaimAge > result.LegalAge:
		return fmt.Sprintf("Delayed claim: higher pension (divisor %d months), longer contribution period", d)
	default:
		return fmt.Sprintf("Claiming at the statutory age (divisor %d months)", d)
	}
}
