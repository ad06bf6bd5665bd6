package domain

import (
	"math"
	"time"
)

// Statutory retirement age schedule after the phased reform.
const (
	femaleBaseAge       = 50.0
	femalePivotYear     = 1975
	femaleStepPerYear   = 0.2
	femaleMaxLegalAge   = 55.0
	maleBaseAge         = 60.0
	malePivotYear       = 1965
	maleStepPerYear     = 0.15
	maleMaxLegalAge     = 63.0
	flexibleWindowYears = 3.0
	maxFlexibleClaimAge = 65.0
)

// FlexRange is the window in which a pension may be claimed
type FlexRange struct {
	LegalAge    float64 `json:"legal_age"`
	OriginalAge float64 `json:"original_age"`
	Earliest    float64 `json:"earliest"`
	Latest      float64 `json:"latest"`
}

// Contains reports whether age falls inside the flexible window
func (r FlexRange) Contains(age float64) bool {
	return age >= r.Earliest && age <= r.Latest
}

// AgeFromBirth returns the age in whole years at now. Only the birth month is
// known, so the birthday counts as reached once the month has begun.
func AgeFromBirth(year, month int, now time.Time) int {
	age := now.Year() - year
	if int(now.Month()) < month {
		age--
	}
	return age
}

// LegalRetirementAge returns the statutory retirement age for a birth cohort
func LegalRetirementAge(gender Gender, birthYear int) float64 {
	if gender == GenderFemale {
		age := femaleBaseAge + float64(birthYear-femalePivotYear)*femaleStepPerYear
		return clamp(age, femaleBaseAge, femaleMaxLegalAge)
	}
	age := maleBaseAge + float64(birthYear-malePivotYear)*maleStepPerYear
	return clamp(age, maleBaseAge, maleMaxLegalAge)
}

// OriginalRetirementAge returns the pre-reform retirement age
func OriginalRetirementAge(gender Gender) float64 {
	if gender == GenderFemale {
		return femaleBaseAge
	}
	return maleBaseAge
}

// FlexibleRetirementRange returns the legal age and the early/late claim window
func FlexibleRetirementRange(gender Gender, birthYear int) FlexRange {
	legal := LegalRetirementAge(gender, birthYear)
	original := OriginalRetirementAge(gender)
	return FlexRange{
		LegalAge:    legal,
		OriginalAge: original,
		Earliest:    math.Max(legal-flexibleWindowYears, original),
		Latest:      math.Min(legal+flexibleWindowYears, maxFlexibleClaimAge),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
