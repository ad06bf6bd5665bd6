package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVSummarizer implements the simple metric,value CSV output.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	r := report.Result
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	stopAge, _ := r.StopPayAge()
	rows := [][]string{
		{"Metric", "Value"},
		{"AgeNow", strconv.Itoa(r.AgeNow)},
		{"QuitAge", floatToString(r.QuitAge)},
		{"ClaimAge", floatToString(r.ActualClaimAge)},
		{"LegalAge", floatToString(r.LegalAge)},
		{"Strategy", r.Strategy.String()},
		{"PayMethod", string(r.PayMethod)},
		{"FlexMonthly", r.FlexMonthly.StringFixed(2)},
		{"YearsWorking", floatFixed(r.YearsWorking)},
		{"YearsFlexPay", floatFixed(r.YearsFlexPay)},
		{"StopPayAge", optionalFloat(stopAge, r.StopPlan != nil)},
		{"YearsWaiting", optionalFloat(r.YearsWaiting(), r.StopPlan != nil)},
		{"TotalYears", floatFixed(r.TotalYears)},
		{"PensionFlexCost", r.PensionFlexCost.StringFixed(2)},
		{"MedicalExtraCost", r.MedicalExtraCost.StringFixed(2)},
		{"TotalFlexCost", r.TotalFlexCost.StringFixed(2)},
		{"FinalBalance", r.FinalBalance.StringFixed(2)},
		{"PersonalPension", r.PersonalPension.StringFixed(2)},
		{"BasePension", r.BasePension.StringFixed(2)},
		{"MonthlyPension", r.MonthlyPension.StringFixed(2)},
		{"RealPension", r.RealPension.StringFixed(2)},
		{"PaybackYears", floatFixed(r.PaybackYears)},
		{"TotalReceived", r.TotalReceived.StringFixed(2)},
		{"NetGain", r.NetGain.StringFixed(2)},
		{"PensionOK", strconv.FormatBool(r.PensionOK)},
		{"PensionShortfall", floatFixed(r.PensionShortfall)},
		{"MedicalOK", strconv.FormatBool(r.MedicalOK)},
		{"MedicalShortfall", floatFixed(r.MedicalShortfall)},
		{"Subsidy4050Eligible", strconv.FormatBool(r.Subsidy4050.Eligible)},
		{"Subsidy4050Amount", r.Subsidy4050.SubsidyAmount.StringFixed(2)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func floatToString(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func floatFixed(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func optionalFloat(f float64, present bool) string {
	if !present {
		return ""
	}
	return floatFixed(f)
}
