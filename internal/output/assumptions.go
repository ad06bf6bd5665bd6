package output

import (
	"fmt"

	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/rgehrsitz/quitcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// Assumptions lists the modeling assumptions rendered in detailed outputs.
func Assumptions(p domain.PolicyConfig) []string {
	return []string{
		fmt.Sprintf("Policy set: %s %d", p.Metadata.Region, p.Metadata.DataYear),
		fmt.Sprintf("Minimum contribution base: %s/month, %s%% credited to the personal account",
			money.Format(p.MinWageBase), p.AccountRate.Shift(2).String()),
		fmt.Sprintf("Self-payment: %s/month (flexible employment), %s/month (employer proxy)",
			money.Format(p.FlexibleMonthly), money.Format(p.EmployerProxyMonthly)),
		fmt.Sprintf("Base pension: average social wage %s x contribution years x %s%% x %s%%",
			money.Format(p.AverageSocialWage), p.BasePensionRate.Shift(2).String(), p.BasePensionFactor.Shift(2).String()),
		fmt.Sprintf("Minimum pension contribution: %g years; medical: %g (female) / %g (male) years",
			p.MinPensionYears, p.MedicalYearsFemale, p.MedicalYearsMale),
		fmt.Sprintf("Inflation: %s%% annually; pension received until age %g",
			decimal.NewFromFloat(p.InflationRate).Shift(2).String(), p.LifeExpectancy),
	}
}
