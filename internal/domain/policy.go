package domain

import (
	"github.com/shopspring/decimal"
)

// PolicyConfig holds every Beijing social-insurance parameter used by the
// projection. Policy updates (for example a new contribution base) touch only
// this structure or the YAML overlay loaded into it.
type PolicyConfig struct {
	Metadata PolicyMetadata `yaml:"metadata" json:"metadata"`

	// Contribution base and personal-account credit
	MinWageBase          decimal.Decimal `yaml:"min_wage_base" json:"min_wage_base"`
	AccountRate          decimal.Decimal `yaml:"account_rate" json:"account_rate"`
	FlexibleMonthly      decimal.Decimal `yaml:"flexible_monthly" json:"flexible_monthly"`
	EmployerProxyMonthly decimal.Decimal `yaml:"employer_proxy_monthly" json:"employer_proxy_monthly"`

	// Pension formula
	AverageSocialWage decimal.Decimal `yaml:"average_social_wage" json:"average_social_wage"`
	BasePensionRate   decimal.Decimal `yaml:"base_pension_rate" json:"base_pension_rate"`
	BasePensionFactor decimal.Decimal `yaml:"base_pension_factor" json:"base_pension_factor"`
	MinPensionYears   float64         `yaml:"min_pension_years" json:"min_pension_years"`

	// Medical insurance
	MedicalYearsFemale  float64         `yaml:"medical_years_female" json:"medical_years_female"`
	MedicalYearsMale    float64         `yaml:"medical_years_male" json:"medical_years_male"`
	MedicalBuyInMonthly decimal.Decimal `yaml:"medical_buy_in_monthly" json:"medical_buy_in_monthly"`

	// Economic assumptions
	InflationRate  float64 `yaml:"inflation_rate" json:"inflation_rate"`
	LifeExpectancy float64 `yaml:"life_expectancy" json:"life_expectancy"`

	Subsidy4050 SubsidyRules `yaml:"subsidy_4050" json:"subsidy_4050"`
}

// PolicyMetadata describes where the policy numbers came from
type PolicyMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Region      string `yaml:"region" json:"region"`
	Description string `yaml:"description" json:"description"`
}

// SubsidyRules parameterizes the "4050" unemployment subsidy
type SubsidyRules struct {
	Rate         decimal.Decimal `yaml:"rate" json:"rate"`
	MinAgeFemale float64         `yaml:"min_age_female" json:"min_age_female"`
	MinAgeMale   float64         `yaml:"min_age_male" json:"min_age_male"`
	FullGapYears float64         `yaml:"full_gap_years" json:"full_gap_years"`
	CappedYears  float64         `yaml:"capped_years" json:"capped_years"`
}

// DefaultPolicy returns the Beijing policy set the calculator is built around
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		Metadata: PolicyMetadata{
			DataYear:    2025,
			Region:      "Beijing",
			Description: "Beijing urban employee pension and medical insurance, minimum contribution base",
		},
		MinWageBase:          decimal.NewFromInt(6326),
		AccountRate:          decimal.NewFromFloat(0.08),
		FlexibleMonthly:      decimal.NewFromInt(1800),
		EmployerProxyMonthly: decimal.NewFromInt(2800),
		AverageSocialWage:    decimal.NewFromInt(14000),
		BasePensionRate:      decimal.NewFromFloat(0.01),
		BasePensionFactor:    decimal.NewFromFloat(0.9),
		MinPensionYears:      20,
		MedicalYearsFemale:   20,
		MedicalYearsMale:     25,
		MedicalBuyInMonthly:  decimal.NewFromInt(500),
		InflationRate:        0.03,
		LifeExpectancy:       80,
		Subsidy4050: SubsidyRules{
			Rate:         decimal.NewFromFloat(0.6),
			MinAgeFemale: 40,
			MinAgeMale:   50,
			FullGapYears: 5,
			CappedYears:  3,
		},
	}
}

// SelfPayMonthly returns the monthly self-paid contribution and how it is paid
func (p PolicyConfig) SelfPayMonthly(hukou Hukou) (decimal.Decimal, PaymentMethod) {
	if hukou == HukouBeijing {
		return p.FlexibleMonthly, PaymentFlexibleEmployment
	}
	return p.EmployerProxyMonthly, PaymentEmployerProxy
}

// MonthlyAccountCredit is the amount credited to the personal account each paid month
func (p PolicyConfig) MonthlyAccountCredit() decimal.Decimal {
	return p.MinWageBase.Mul(p.AccountRate)
}

// MedicalYearsRequired returns the minimum medical contribution years by gender
func (p PolicyConfig) MedicalYearsRequired(gender Gender) float64 {
	if gender == GenderFemale {
		return p.MedicalYearsFemale
	}
	return p.MedicalYearsMale
}

// SubsidyMinAge returns the minimum quit age for the 4050 subsidy by gender
func (s SubsidyRules) SubsidyMinAge(gender Gender) float64 {
	if gender == GenderFemale {
		return s.MinAgeFemale
	}
	return s.MinAgeMale
}
