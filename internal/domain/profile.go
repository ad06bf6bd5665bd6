package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Gender selects the statutory retirement schedule and medical thresholds
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// ParseGender accepts "female"/"male" and the short forms "f"/"m"
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f":
		return GenderFemale, nil
	case "male", "m":
		return GenderMale, nil
	default:
		return "", fmt.Errorf("unknown gender %q (valid: female, male)", s)
	}
}

// Hukou is the Beijing household registration status
type Hukou string

const (
	HukouBeijing    Hukou = "yes"
	HukouNonBeijing Hukou = "no"
)

// ParseHukou accepts "yes"/"no" and the boolean spellings "true"/"false"
func ParseHukou(s string) (Hukou, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return HukouBeijing, nil
	case "no", "n", "false":
		return HukouNonBeijing, nil
	default:
		return "", fmt.Errorf("unknown hukou %q (valid: yes, no)", s)
	}
}

// PaymentMethod is how contributions are paid after leaving formal employment
type PaymentMethod string

const (
	PaymentFlexibleEmployment PaymentMethod = "flexible_employment"
	PaymentEmployerProxy      PaymentMethod = "employer_proxy"
)

// Label returns a human-readable name for the payment method
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentFlexibleEmployment:
		return "Flexible employment"
	case PaymentEmployerProxy:
		return "Employer proxy"
	default:
		return string(p)
	}
}

// Profile describes the person whose quit decision is being modeled
type Profile struct {
	BirthYear    int             `yaml:"birth_year" json:"birth_year"`
	BirthMonth   int             `yaml:"birth_month" json:"birth_month"`
	Gender       Gender          `yaml:"gender" json:"gender"`
	Hukou        Hukou           `yaml:"hukou" json:"hukou"`
	YearsPaidNow float64         `yaml:"years_paid_now" json:"years_paid_now"`
	BalanceNow   decimal.Decimal `yaml:"balance_now" json:"balance_now"`
}

// Equal reports whether two profiles hold the same values
func (p Profile) Equal(o Profile) bool {
	return p.BirthYear == o.BirthYear &&
		p.BirthMonth == o.BirthMonth &&
		p.Gender == o.Gender &&
		p.Hukou == o.Hukou &&
		p.YearsPaidNow == o.YearsPaidNow &&
		p.BalanceNow.Equal(o.BalanceNow)
}

// Validate checks the preconditions the calculation engine relies on
func (p *Profile) Validate() error {
	if p.BirthYear < 1900 || p.BirthYear > 2100 {
		return &ValidationError{Field: "birth_year", Message: fmt.Sprintf("birth year %d out of range", p.BirthYear)}
	}
	if p.BirthMonth < 1 || p.BirthMonth > 12 {
		return &ValidationError{Field: "birth_month", Message: "birth month must be between 1 and 12"}
	}
	if p.Gender != GenderFemale && p.Gender != GenderMale {
		return &ValidationError{Field: "gender", Message: fmt.Sprintf("unknown gender %q", p.Gender)}
	}
	if p.Hukou != HukouBeijing && p.Hukou != HukouNonBeijing {
		return &ValidationError{Field: "hukou", Message: fmt.Sprintf("unknown hukou %q", p.Hukou)}
	}
	if p.YearsPaidNow <= 0 {
		return &ValidationError{Field: "years_paid_now", Message: "years of contribution must be positive"}
	}
	if p.BalanceNow.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "balance_now", Message: "personal account balance must be positive"}
	}
	return nil
}
