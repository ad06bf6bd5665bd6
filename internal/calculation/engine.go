package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// CalculationEngine projects the pension and medical-insurance outcome of
// quitting formal employment at a given age.
type CalculationEngine struct {
	Policy domain.PolicyConfig
	Logger Logger
	Debug  bool // Enable debug output for the strategy branch taken
}

// NewCalculationEngine creates a new calculation engine using the default Beijing policy
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithPolicy(domain.DefaultPolicy())
}

// NewCalculationEngineWithPolicy creates a new calculation engine with a custom policy set
func NewCalculationEngineWithPolicy(policy domain.PolicyConfig) *CalculationEngine {
	return &CalculationEngine{
		Policy: policy,
		Logger: NopLogger{},
	}
}

// SetLogger sets a logger for the engine (nil resets to no-op).
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// ComputeRetirement runs the full projection for one profile and scenario.
// The claim age defaults to the statutory retirement age when the scenario
// leaves it unset.
func (ce *CalculationEngine) ComputeRetirement(profile *domain.Profile, scenario domain.Scenario) (*domain.RetirementResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", domain.ErrInvalidProfile)
	}
	if profile.YearsPaidNow <= 0 || !isFinite(profile.YearsPaidNow) {
		return nil, fmt.Errorf("%w: years paid must be positive, got %g", domain.ErrInvalidProfile, profile.YearsPaidNow)
	}
	if !isFinite(scenario.QuitAge) {
		return nil, fmt.Errorf("%w: quit age must be a finite number", domain.ErrInvalidScenario)
	}
	if scenario.ClaimAge != nil && !isFinite(*scenario.ClaimAge) {
		return nil, fmt.Errorf("%w: claim age must be a finite number", domain.ErrInvalidScenario)
	}
	if scenario.Strategy != domain.StrategyPayThrough && scenario.Strategy != domain.StrategyStopAtMinimum {
		return nil, fmt.Errorf("%w: unknown strategy %d", domain.ErrInvalidScenario, scenario.Strategy)
	}

	policy := ce.Policy
	log := ce.logger()

	flexMonthly, payMethod := policy.SelfPayMonthly(profile.Hukou)
	monthlyToAccount := policy.MonthlyAccountCredit()

	ageNow := AgeFromBirth(profile.BirthYear, profile.BirthMonth)
	flexRange := domain.FlexibleRetirementRange(profile.Gender, profile.BirthYear)

	claimAge := flexRange.LegalAge
	if scenario.ClaimAge != nil {
		claimAge = *scenario.ClaimAge
	}
	quitAge := scenario.QuitAge

	retireYear := profile.BirthYear + int(math.Ceil(claimAge))

	// Working years floor at zero so a quit age in the past is tolerated
	yearsWorking := math.Max(quitAge-float64(ageNow), 0)
	avgYearlyToAccount := profile.BalanceNow.Div(decimal.NewFromFloat(profile.YearsPaidNow))
	yearsAtQuit := profile.YearsPaidNow + yearsWorking
	balanceAtQuit := profile.BalanceNow.Add(avgYearlyToAccount.Mul(decimal.NewFromFloat(yearsWorking)))

	var (
		yearsFlexPay float64
		stopPlan     *domain.StopPlan
	)
	switch scenario.Strategy {
	case domain.StrategyStopAtMinimum:
		yearsNeeded := math.Max(policy.MinPensionYears-yearsAtQuit, 0)
		yearsFlexPay = math.Max(math.Min(yearsNeeded, claimAge-quitAge), 0)
		stopPayAge := quitAge + yearsFlexPay
		stopPlan = &domain.StopPlan{
			StopPayAge:   stopPayAge,
			YearsWaiting: math.Max(claimAge-stopPayAge, 0),
		}
		if ce.Debug {
			log.Debugf("stop-at-minimum: years at quit %.2f, need %.2f, pay %.2f, stop at %.2f, wait %.2f",
				yearsAtQuit, yearsNeeded, yearsFlexPay, stopPayAge, stopPlan.YearsWaiting)
		}
	default:
		yearsFlexPay = math.Max(claimAge-quitAge, 0)
		if ce.Debug {
			log.Debugf("pay-through: self-pay %.2f years from %.2f to %.2f", yearsFlexPay, quitAge, claimAge)
		}
	}

	flexYears := decimal.NewFromFloat(yearsFlexPay)
	yearlyToAccountFlex := monthlyToAccount.Mul(monthsPerYear)
	pensionFlexCost := flexMonthly.Mul(monthsPerYear).Mul(flexYears)

	subsidy := ce.Evaluate4050(profile.Gender, profile.Hukou, quitAge, claimAge, flexMonthly)

	totalYears := yearsAtQuit + yearsFlexPay
	finalBalance := balanceAtQuit.Add(yearlyToAccountFlex.Mul(flexYears))

	divisor := PensionDivisor(claimAge)
	personalPension := finalBalance.Div(decimal.NewFromInt(int64(divisor)))
	basePension := policy.AverageSocialWage.
		Mul(decimal.NewFromFloat(totalYears)).
		Mul(policy.BasePensionRate).
		Mul(policy.BasePensionFactor)
	monthlyPension := personalPension.Add(basePension)

	minYears := policy.MinPensionYears
	pensionOK := totalYears >= minYears
	pensionShortfall := 0.0
	if !pensionOK {
		pensionShortfall = minYears - totalYears
	}

	needMedicalYears := policy.MedicalYearsRequired(profile.Gender)
	medicalOK := totalYears >= needMedicalYears
	medicalShortfall := 0.0
	medicalExtraCost := decimal.Zero
	if !medicalOK {
		medicalShortfall = needMedicalYears - totalYears
		medicalExtraCost = decimal.NewFromFloat(medicalShortfall).Mul(monthsPerYear).Mul(policy.MedicalBuyInMonthly)
	}

	totalFlexCost := pensionFlexCost.Add(medicalExtraCost)
	annualPension := monthlyPension.Mul(monthsPerYear)

	paybackYears := 0.0
	if totalFlexCost.IsPositive() && annualPension.IsPositive() {
		paybackYears = totalFlexCost.Div(annualPension).InexactFloat64()
	}

	realPension := presentValue(monthlyPension, claimAge-float64(ageNow), policy.InflationRate)

	yearsReceiving := policy.LifeExpectancy - claimAge
	totalReceived := annualPension.Mul(decimal.NewFromFloat(yearsReceiving))
	netGain := totalReceived.Sub(totalFlexCost)

	if ce.Debug {
		log.Debugf("claim %.2f divisor %d: personal %s + base %s = %s/month, net gain %s",
			claimAge, divisor, personalPension.StringFixed(2), basePension.StringFixed(2),
			monthlyPension.StringFixed(2), netGain.StringFixed(2))
	}

	return &domain.RetirementResult{
		AgeNow:    ageNow,
		LegalAge:  flexRange.LegalAge,
		QuitAge:   quitAge,
		Gender:    profile.Gender,
		Hukou:     profile.Hukou,
		PayMethod: payMethod,

		FlexMonthly:    flexMonthly,
		YearsWorking:   yearsWorking,
		YearsFlexPay:   yearsFlexPay,
		TotalYears:     totalYears,
		Strategy:       scenario.Strategy,
		StopPlan:       stopPlan,
		ActualClaimAge: claimAge,
		RetireYear:     retireYear,

		PensionFlexCost:  pensionFlexCost,
		MedicalExtraCost: medicalExtraCost,
		MedicalMonthly:   policy.MedicalBuyInMonthly,
		TotalFlexCost:    totalFlexCost,

		BalanceNow:          profile.BalanceNow,
		AvgYearlyToAccount:  avgYearlyToAccount,
		YearlyToAccountFlex: yearlyToAccountFlex,
		FinalBalance:        finalBalance,

		PersonalPension: personalPension,
		BasePension:     basePension,
		MonthlyPension:  monthlyPension,
		RealPension:     realPension,
		PaybackYears:    paybackYears,
		TotalReceived:   totalReceived,
		NetGain:         netGain,

		PensionOK:               pensionOK,
		PensionShortfall:        pensionShortfall,
		MinPensionYearsRequired: minYears,
		MedicalOK:               medicalOK,
		MedicalShortfall:        medicalShortfall,
		NeedMedicalYears:        needMedicalYears,

		FlexRange:   flexRange,
		Subsidy4050: subsidy,
	}, nil
}

// presentValue discounts a future nominal amount back to today's purchasing power
func presentValue(amount decimal.Decimal, years, inflation float64) decimal.Decimal {
	factor := math.Pow(1+inflation, years)
	if factor <= 0 || !isFinite(factor) {
		return amount
	}
	return amount.Div(decimal.NewFromFloat(factor))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
