package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Quit Age",
		"Immediate",
		"Current",
		"Best",
		"Years Self-Paid",
		"Total Self-Paid Cost",
		"Monthly Pension",
		"Net Gain",
		"Payback Years",
		"Pension OK",
		"Medical OK",
		"Net Gain Diff from Best",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i := range compSet.Results {
		if err := writer.Write(cf.formatRow(&compSet.Results[i])); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult) []string {
	return []string{
		formatFloat(result.QuitAge),
		strconv.FormatBool(result.IsImmediate),
		strconv.FormatBool(result.IsCurrent),
		strconv.FormatBool(result.IsBest),
		strconv.FormatFloat(result.YearsFlexPay, 'f', 2, 64),
		result.TotalFlexCost.StringFixed(2),
		result.MonthlyPension.StringFixed(2),
		result.NetGain.StringFixed(2),
		strconv.FormatFloat(result.PaybackYears, 'f', 2, 64),
		strconv.FormatBool(result.PensionOK),
		strconv.FormatBool(result.MedicalOK),
		result.NetGainDiffFromBest.StringFixed(2),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
