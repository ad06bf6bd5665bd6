package calculation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func useFixedClock(t *testing.T) {
	t.Helper()
	SetNowFunc(func() time.Time { return fixedNow })
	t.Cleanup(func() { SetNowFunc(nil) })
}

func sampleProfile() *domain.Profile {
	return &domain.Profile{
		BirthYear:    1988,
		BirthMonth:   6,
		Gender:       domain.GenderFemale,
		Hukou:        domain.HukouBeijing,
		YearsPaidNow: 10,
		BalanceNow:   decimal.NewFromInt(80000),
	}
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Equal(t, domain.DefaultPolicy().Metadata, engine.Policy.Metadata)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestComputeRetirement_DebugLogsStrategyBranch(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: 45, Strategy: domain.StrategyStopAtMinimum})
	require.NoError(t, err)
	require.NotEmpty(t, logger.messages)
	assert.Contains(t, logger.messages[0], "stop-at-minimum")

	logger.messages = nil
	engine.Debug = false
	_, err = engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: 45})
	require.NoError(t, err)
	assert.Empty(t, logger.messages)
}

func TestComputeRetirement_PayThroughScenario(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()

	r, err := engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: 45, Strategy: domain.StrategyPayThrough})
	require.NoError(t, err)

	assert.Equal(t, 37, r.AgeNow)
	assert.InDelta(t, 52.6, r.LegalAge, 1e-9)
	assert.InDelta(t, 52.6, r.ActualClaimAge, 1e-9)
	assert.Equal(t, 2041, r.RetireYear)
	assert.Equal(t, domain.PaymentFlexibleEmployment, r.PayMethod)
	assert.True(t, r.FlexMonthly.Equal(decimal.NewFromInt(1800)))

	assert.InDelta(t, 8.0, r.YearsWorking, 1e-9)
	assert.InDelta(t, 7.6, r.YearsFlexPay, 1e-9)
	assert.InDelta(t, 25.6, r.TotalYears, 1e-9)
	assert.Nil(t, r.StopPlan)
	assert.Equal(t, 0.0, r.YearsWaiting())

	assert.InDelta(t, 8000.0, r.AvgYearlyToAccount.InexactFloat64(), 1e-6)
	assert.InDelta(t, 6072.96, r.YearlyToAccountFlex.InexactFloat64(), 1e-6)
	assert.InDelta(t, 190154.496, r.FinalBalance.InexactFloat64(), 1e-6)
	assert.InDelta(t, 190154.496/185, r.PersonalPension.InexactFloat64(), 1e-6)
	assert.InDelta(t, 3225.6, r.BasePension.InexactFloat64(), 1e-6)
	assert.InDelta(t, 190154.496/185+3225.6, r.MonthlyPension.InexactFloat64(), 1e-6)
	assert.True(t, r.MonthlyPension.IsPositive())

	assert.InDelta(t, 164160.0, r.PensionFlexCost.InexactFloat64(), 1e-6)
	assert.True(t, r.MedicalExtraCost.IsZero())
	assert.InDelta(t, 164160.0, r.TotalFlexCost.InexactFloat64(), 1e-6)

	assert.True(t, r.PensionOK)
	assert.Equal(t, 0.0, r.PensionShortfall)
	assert.Equal(t, 20.0, r.MinPensionYearsRequired)
	assert.True(t, r.MedicalOK)
	assert.Equal(t, 20.0, r.NeedMedicalYears)

	monthly := r.MonthlyPension.InexactFloat64()
	assert.InDelta(t, 164160.0/(monthly*12), r.PaybackYears, 1e-6)
	assert.InDelta(t, monthly/math.Pow(1.03, 52.6-37), r.RealPension.InexactFloat64(), 1e-6)
	assert.InDelta(t, monthly*12*(80-52.6), r.TotalReceived.InexactFloat64(), 1e-4)
	assert.InDelta(t, monthly*12*(80-52.6)-164160, r.NetGain.InexactFloat64(), 1e-4)

	assert.True(t, r.Subsidy4050.Eligible)
	assert.Equal(t, 3.0, r.Subsidy4050.SubsidyYears)
	assert.InDelta(t, 38880.0, r.Subsidy4050.SubsidyAmount.InexactFloat64(), 1e-9)
}

func TestComputeRetirement_StopAtMinimum(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()

	r, err := engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: 45, Strategy: domain.StrategyStopAtMinimum})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, r.YearsFlexPay, 1e-9)
	assert.InDelta(t, 20.0, r.TotalYears, 1e-9)
	require.NotNil(t, r.StopPlan)
	stop, ok := r.StopPayAge()
	assert.True(t, ok)
	assert.InDelta(t, 47.0, stop, 1e-9)
	assert.InDelta(t, 5.6, r.YearsWaiting(), 1e-9)
	assert.True(t, r.PensionOK)
	assert.True(t, r.MedicalOK)
	assert.InDelta(t, 43200.0, r.PensionFlexCost.InexactFloat64(), 1e-9)
}

func TestComputeRetirement_NonBeijingHukou(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()
	profile := sampleProfile()
	profile.Hukou = domain.HukouNonBeijing

	r, err := engine.ComputeRetirement(profile, domain.Scenario{QuitAge: 45})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentEmployerProxy, r.PayMethod)
	assert.True(t, r.FlexMonthly.Equal(decimal.NewFromInt(2800)))
	assert.True(t, r.FlexMonthly.GreaterThan(domain.DefaultPolicy().FlexibleMonthly))
	assert.False(t, r.Subsidy4050.Eligible)
	assert.True(t, r.Subsidy4050.SubsidyAmount.IsZero())
	assert.Empty(t, r.Subsidy4050.Reason)
}

func TestComputeRetirement_MedicalShortfall(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()
	profile := &domain.Profile{
		BirthYear:    1985,
		BirthMonth:   6,
		Gender:       domain.GenderMale,
		Hukou:        domain.HukouBeijing,
		YearsPaidNow: 5,
		BalanceNow:   decimal.NewFromInt(30000),
	}

	r, err := engine.ComputeRetirement(profile, domain.Scenario{QuitAge: 40, Strategy: domain.StrategyStopAtMinimum})
	require.NoError(t, err)

	assert.Equal(t, 40, r.AgeNow)
	assert.InDelta(t, 15.0, r.YearsFlexPay, 1e-9)
	assert.True(t, r.PensionOK)
	assert.False(t, r.MedicalOK)
	assert.InDelta(t, 5.0, r.MedicalShortfall, 1e-9)
	assert.InDelta(t, 30000.0, r.MedicalExtraCost.InexactFloat64(), 1e-9)
	assert.True(t, r.MedicalMonthly.Equal(decimal.NewFromInt(500)))
	assert.True(t, r.TotalFlexCost.Equal(r.PensionFlexCost.Add(r.MedicalExtraCost)))
}

func TestComputeRetirement_QuitAtOrAfterClaim(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()

	for _, strategy := range []domain.Strategy{domain.StrategyPayThrough, domain.StrategyStopAtMinimum} {
		for _, quit := range []float64{53, 55, 60} {
			r, err := engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: quit, Strategy: strategy})
			require.NoError(t, err)
			assert.Equal(t, 0.0, r.YearsFlexPay, "%s quit %g", strategy, quit)
			assert.Equal(t, 0.0, r.YearsWaiting(), "%s quit %g", strategy, quit)
			assert.Equal(t, 0.0, r.PaybackYears)
			assert.True(t, r.PensionFlexCost.IsZero())
		}
	}
}

func TestComputeRetirement_StopNeverExceedsPayThrough(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()
	profile := sampleProfile()

	for _, paid := range []float64{1, 5, 10, 18, 25} {
		profile.YearsPaidNow = paid
		for quit := 30.0; quit <= 66; quit += 0.5 {
			full, err := engine.ComputeRetirement(profile, domain.Scenario{QuitAge: quit})
			require.NoError(t, err)
			minimum, err := engine.ComputeRetirement(profile, domain.Scenario{QuitAge: quit, Strategy: domain.StrategyStopAtMinimum})
			require.NoError(t, err)
			assert.LessOrEqual(t, minimum.YearsFlexPay, full.YearsFlexPay, "paid %g quit %g", paid, quit)
			assert.GreaterOrEqual(t, minimum.YearsFlexPay, 0.0)
			assert.GreaterOrEqual(t, minimum.YearsWaiting(), 0.0)
		}
	}
}

func TestComputeRetirement_Idempotent(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()
	scenario := domain.Scenario{QuitAge: 45.5, Strategy: domain.StrategyStopAtMinimum}.WithClaimAge(55)

	a, err := engine.ComputeRetirement(sampleProfile(), scenario)
	require.NoError(t, err)
	b, err := engine.ComputeRetirement(sampleProfile(), scenario)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeRetirement_DefaultClaimMatchesLegalAge(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()
	profile := sampleProfile()

	r := domain.FlexibleRetirementRange(profile.Gender, profile.BirthYear)
	byDefault, err := engine.ComputeRetirement(profile, domain.Scenario{QuitAge: 45})
	require.NoError(t, err)
	explicit, err := engine.ComputeRetirement(profile, domain.Scenario{QuitAge: 45}.WithClaimAge(r.LegalAge))
	require.NoError(t, err)

	assert.True(t, byDefault.MonthlyPension.Equal(explicit.MonthlyPension))
	assert.Equal(t, byDefault, explicit)
}

func TestComputeRetirement_QuitAgeInThePastIsTolerated(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()

	for _, quit := range []float64{0, -5, 30} {
		r, err := engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: quit})
		require.NoError(t, err)
		assert.Equal(t, 0.0, r.YearsWorking)
		assert.True(t, r.FinalBalance.GreaterThan(r.BalanceNow))
	}
}

func TestComputeRetirement_InvalidInput(t *testing.T) {
	useFixedClock(t)
	engine := NewCalculationEngine()

	profile := sampleProfile()
	profile.YearsPaidNow = 0
	r, err := engine.ComputeRetirement(profile, domain.Scenario{QuitAge: 45})
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, domain.ErrInvalidProfile))

	_, err = engine.ComputeRetirement(nil, domain.Scenario{QuitAge: 45})
	assert.True(t, errors.Is(err, domain.ErrInvalidProfile))

	_, err = engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: math.NaN()})
	assert.True(t, errors.Is(err, domain.ErrInvalidScenario))

	_, err = engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: 45}.WithClaimAge(math.Inf(1)))
	assert.True(t, errors.Is(err, domain.ErrInvalidScenario))

	_, err = engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: 45, Strategy: domain.Strategy(9)})
	assert.True(t, errors.Is(err, domain.ErrInvalidScenario))
}

func TestComputeRetirement_CustomPolicy(t *testing.T) {
	useFixedClock(t)
	policy := domain.DefaultPolicy()
	policy.FlexibleMonthly = decimal.NewFromInt(2000)
	policy.LifeExpectancy = 85
	engine := NewCalculationEngineWithPolicy(policy)

	r, err := engine.ComputeRetirement(sampleProfile(), domain.Scenario{QuitAge: 45})
	require.NoError(t, err)
	assert.True(t, r.FlexMonthly.Equal(decimal.NewFromInt(2000)))
	monthly := r.MonthlyPension.InexactFloat64()
	assert.InDelta(t, monthly*12*(85-52.6), r.TotalReceived.InexactFloat64(), 1e-4)
}

func TestAgeFromBirth_UsesClock(t *testing.T) {
	useFixedClock(t)
	assert.Equal(t, 37, AgeFromBirth(1988, 6))
	assert.Equal(t, 38, AgeFromBirth(1988, 3))
	assert.Equal(t, fixedNow, Now())
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
