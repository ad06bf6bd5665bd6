package calculation

import "math"

const (
	minDivisorAge      = 40
	maxDivisorAge      = 70
	fallbackDivisorAge = 60
)

// pensionDivisors maps claim age to the number of months the personal account
// is spread over. Read-only after initialization.
var pensionDivisors = map[int]int{
	40: 233, 41: 230, 42: 226, 43: 223, 44: 220,
	45: 216, 46: 212, 47: 208, 48: 204, 49: 199,
	50: 195, 51: 190, 52: 185, 53: 180, 54: 175,
	55: 170, 56: 164, 57: 158, 58: 152, 59: 145,
	60: 139, 61: 132, 62: 125, 63: 117, 64: 109,
	65: 101, 66: 93, 67: 84, 68: 75, 69: 65,
	70: 56,
}

// PensionDivisor returns the personal-account divisor for a claim age.
// The age is floored first and then clamped to [40, 70].
func PensionDivisor(age float64) int {
	key := math.Floor(age)
	key = math.Max(minDivisorAge, math.Min(maxDivisorAge, key))
	if d, ok := pensionDivisors[int(key)]; ok {
		return d
	}
	return pensionDivisors[fallbackDivisorAge]
}
