package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/rgehrsitz/quitcalc/pkg/money"
)

// ConsoleFormatter renders the detailed console report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	r := report.Result
	var buf bytes.Buffer
	rule := strings.Repeat("=", 72)
	thin := strings.Repeat("-", 72)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "EARLY QUIT RETIREMENT ANALYSIS")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Age now: %d   Gender: %s   Hukou: %s\n", r.AgeNow, r.Gender, hukouLabel(r.Hukou))
	fmt.Fprintf(&buf, "Quit age: %g   Claim age: %g (statutory %g, window %g-%g)\n",
		r.QuitAge, r.ActualClaimAge, r.LegalAge, r.FlexRange.Earliest, r.FlexRange.Latest)
	fmt.Fprintf(&buf, "Strategy: %s   Payment: %s at %s/month\n", r.Strategy.Description(), r.PayMethod.Label(), money.Format(r.FlexMonthly))
	fmt.Fprintln(&buf, calculation.ClaimAgeNote(r))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "MONTHLY PENSION")
	fmt.Fprintln(&buf, thin)
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Personal account", money.Format(r.PersonalPension))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Base pension", money.Format(r.BasePension))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Total (nominal)", money.Format(r.MonthlyPension))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Total (today's money)", money.Format(r.RealPension))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Retire year", fmt.Sprint(r.RetireYear))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CONTRIBUTIONS")
	fmt.Fprintln(&buf, thin)
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Years still employed", FormatYears(r.YearsWorking))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Years self-paid", FormatYears(r.YearsFlexPay))
	if stop, ok := r.StopPayAge(); ok {
		fmt.Fprintf(&buf, "  %-28s %16g\n", "Stop paying at age", stop)
		fmt.Fprintf(&buf, "  %-28s %16s\n", "Waiting without paying", FormatYears(r.YearsWaiting()))
	}
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Total contribution years", FormatYears(r.TotalYears))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Personal account at claim", money.Format(r.FinalBalance))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "COST AND RETURN")
	fmt.Fprintln(&buf, thin)
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Self-paid pension", money.Format(r.PensionFlexCost))
	if !r.MedicalExtraCost.IsZero() {
		fmt.Fprintf(&buf, "  %-28s %16s\n", "Medical buy-in", money.Format(r.MedicalExtraCost))
	}
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Total self-funded cost", money.Format(r.TotalFlexCost))
	if r.Subsidy4050.Eligible {
		fmt.Fprintf(&buf, "  %-28s %16s\n", "4050 subsidy", money.Format(r.Subsidy4050.SubsidyAmount))
		fmt.Fprintf(&buf, "  %-28s %16s\n", "Net of subsidy", money.Format(r.NetSelfCost()))
	}
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Payback", calculation.PaybackLabel(r.PaybackYears))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Pension received", money.Format(r.TotalReceived))
	fmt.Fprintf(&buf, "  %-28s %16s\n", "Net lifetime gain", money.Format(r.NetGain))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "ELIGIBILITY")
	fmt.Fprintln(&buf, thin)
	fmt.Fprintf(&buf, "  Pension (%g years): %s\n", r.MinPensionYearsRequired, eligibilityLabel(r.PensionOK, r.PensionShortfall))
	fmt.Fprintf(&buf, "  Medical (%g years): %s\n", r.NeedMedicalYears, eligibilityLabel(r.MedicalOK, r.MedicalShortfall))
	fmt.Fprintf(&buf, "  4050 subsidy: %s\n", subsidyLabel(r.Subsidy4050))
	fmt.Fprintln(&buf)

	if tl := report.Timeline; tl != nil {
		fmt.Fprintln(&buf, "TIMELINE")
		fmt.Fprintln(&buf, thin)
		fmt.Fprintf(&buf, "  %d now (age %d)\n", tl.StartYear, tl.StartAge)
		fmt.Fprintf(&buf, "  %d quit\n", tl.QuitYear)
		if tl.StopPayYear != nil {
			fmt.Fprintf(&buf, "  %d stop paying\n", *tl.StopPayYear)
		}
		fmt.Fprintf(&buf, "  %d claim pension\n", tl.ClaimYear)
		for _, s := range tl.Segments {
			fmt.Fprintf(&buf, "  %-10s %5.1f years %5.1f%%\n", s.Kind, s.Years, s.Percent)
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Advice) > 0 {
		fmt.Fprintln(&buf, "ADVICE")
		fmt.Fprintln(&buf, thin)
		for _, a := range report.Advice {
			fmt.Fprintf(&buf, "  [%s] %s\n", a.Kind, a.Title)
			fmt.Fprintf(&buf, "      %s\n", a.Description)
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "ASSUMPTIONS")
		fmt.Fprintln(&buf, thin)
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "  • %s\n", a)
		}
	}
	return buf.Bytes(), nil
}

// ConsoleLiteFormatter provides a concise console summary via the formatter interface.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *Report) ([]byte, error) {
	r := report.Result
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "EARLY QUIT SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Quit=%g Claim=%g Strategy=%s\n", r.QuitAge, r.ActualClaimAge, r.Strategy)
	fmt.Fprintf(&buf, "MonthlyPension=%s RealPension=%s\n", money.Format(r.MonthlyPension), money.Format(r.RealPension))
	fmt.Fprintf(&buf, "TotalCost=%s NetGain=%s Payback=%s\n", money.Format(r.TotalFlexCost), money.Format(r.NetGain), calculation.PaybackLabel(r.PaybackYears))
	fmt.Fprintf(&buf, "PensionOK=%t MedicalOK=%t Subsidy4050=%t\n", r.PensionOK, r.MedicalOK, r.Subsidy4050.Eligible)
	return buf.Bytes(), nil
}

func hukouLabel(h domain.Hukou) string {
	if h == domain.HukouBeijing {
		return "Beijing"
	}
	return "non-Beijing"
}

func eligibilityLabel(ok bool, shortfall float64) string {
	if ok {
		return "met"
	}
	return fmt.Sprintf("short by %.1f years", shortfall)
}

func subsidyLabel(s domain.Subsidy4050) string {
	switch {
	case s.Eligible:
		return fmt.Sprintf("eligible, %g years at %s%%", s.SubsidyYears, s.SubsidyRate.Shift(2).String())
	case s.Reason != "":
		return "not eligible (" + s.Reason + ")"
	default:
		return "not eligible (requires Beijing hukou)"
	}
}
