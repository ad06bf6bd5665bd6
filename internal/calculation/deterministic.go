package calculation

import (
	"time"

	"github.com/rgehrsitz/quitcalc/internal/domain"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) {
	if f == nil {
		f = time.Now
	}
	nowFunc = f
}

// Now returns the time used for age calculations.
func Now() time.Time { return nowFunc() }

// AgeFromBirth returns the current age in whole years for a birth year and month.
func AgeFromBirth(year, month int) int {
	return domain.AgeFromBirth(year, month, nowFunc())
}
