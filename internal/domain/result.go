package domain

import (
	"github.com/shopspring/decimal"
)

// Subsidy4050 is the outcome of the "4050" unemployment subsidy rules
type Subsidy4050 struct {
	Eligible      bool            `json:"eligible"`
	SubsidyYears  float64         `json:"subsidy_years"`
	SubsidyAmount decimal.Decimal `json:"subsidy_amount"`
	SubsidyRate   decimal.Decimal `json:"subsidy_rate"`
	Reason        string          `json:"reason,omitempty"`
	YearsToRetire *float64        `json:"years_to_retire,omitempty"`
}

// StopPlan describes the stop-at-minimum branch: when paying stops and how
// long the unpaid wait until claiming lasts. It is nil for pay-through.
type StopPlan struct {
	StopPayAge   float64 `json:"stop_pay_age"`
	YearsWaiting float64 `json:"years_waiting"`
}

// RetirementResult is the complete projection for one quit scenario
type RetirementResult struct {
	AgeNow    int           `json:"age_now"`
	LegalAge  float64       `json:"legal_age"`
	QuitAge   float64       `json:"quit_age"`
	Gender    Gender        `json:"gender"`
	Hukou     Hukou         `json:"hukou"`
	PayMethod PaymentMethod `json:"pay_method"`

	// Contribution timeline
	FlexMonthly    decimal.Decimal `json:"flex_monthly"`
	YearsWorking   float64         `json:"years_working"`
	YearsFlexPay   float64         `json:"years_flex_pay"`
	TotalYears     float64         `json:"total_years"`
	Strategy       Strategy        `json:"strategy"`
	StopPlan       *StopPlan       `json:"stop_plan,omitempty"`
	ActualClaimAge float64         `json:"actual_claim_age"`
	RetireYear     int             `json:"retire_year"`

	// Costs
	PensionFlexCost  decimal.Decimal `json:"pension_flex_cost"`
	MedicalExtraCost decimal.Decimal `json:"medical_extra_cost"`
	MedicalMonthly   decimal.Decimal `json:"medical_monthly"`
	TotalFlexCost    decimal.Decimal `json:"total_flex_cost"`

	// Personal account
	BalanceNow          decimal.Decimal `json:"balance_now"`
	AvgYearlyToAccount  decimal.Decimal `json:"avg_yearly_to_account"`
	YearlyToAccountFlex decimal.Decimal `json:"yearly_to_account_flex"`
	FinalBalance        decimal.Decimal `json:"final_balance"`

	// Pension
	PersonalPension decimal.Decimal `json:"personal_pension"`
	BasePension     decimal.Decimal `json:"base_pension"`
	MonthlyPension  decimal.Decimal `json:"monthly_pension"`
	RealPension     decimal.Decimal `json:"real_pension"`
	PaybackYears    float64         `json:"payback_years"`
	TotalReceived   decimal.Decimal `json:"total_received"`
	NetGain         decimal.Decimal `json:"net_gain"`

	// Eligibility
	PensionOK               bool    `json:"pension_ok"`
	PensionShortfall        float64 `json:"pension_shortfall"`
	MinPensionYearsRequired float64 `json:"min_pension_years_required"`
	MedicalOK               bool    `json:"medical_ok"`
	MedicalShortfall        float64 `json:"medical_shortfall"`
	NeedMedicalYears        float64 `json:"need_medical_years"`

	FlexRange   FlexRange   `json:"flex_range"`
	Subsidy4050 Subsidy4050 `json:"subsidy_4050"`
}

// StopAtMinYears reports whether the result was projected with the stop-at-minimum strategy
func (r *RetirementResult) StopAtMinYears() bool {
	return r.Strategy == StrategyStopAtMinimum
}

// StopPayAge returns the age at which self-payment stops, if the strategy has one
func (r *RetirementResult) StopPayAge() (float64, bool) {
	if r.StopPlan == nil {
		return 0, false
	}
	return r.StopPlan.StopPayAge, true
}

// YearsWaiting returns the unpaid years between stopping payment and claiming
func (r *RetirementResult) YearsWaiting() float64 {
	if r.StopPlan == nil {
		return 0
	}
	return r.StopPlan.YearsWaiting
}

// NetSelfCost is the total self-funded cost less any 4050 subsidy
func (r *RetirementResult) NetSelfCost() decimal.Decimal {
	return r.TotalFlexCost.Sub(r.Subsidy4050.SubsidyAmount)
}
