package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/quitcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing quit ages
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("QUIT AGE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Age Now: %d   Claim Age: %g   Strategy: %s\n",
		compSet.AgeNow, compSet.ClaimAge, compSet.Strategy.Description()))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	labelWidth := 20
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		labelWidth, "Quit Age",
		numWidth, "Self-Paid Cost",
		numWidth, "Monthly Pension",
		numWidth, "Net Gain"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for i := range compSet.Results {
		sb.WriteString(tf.formatRow(&compSet.Results[i], labelWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	// Differences from the best candidate
	if len(compSet.Results) > 1 {
		sb.WriteString("\nCOMPARISON TO BEST\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, r := range compSet.Results {
			if r.IsBest {
				continue
			}
			sb.WriteString(fmt.Sprintf("%s: net gain %s%s, pension %s%s/month\n",
				r.Label(),
				tf.deltaSymbol(r.NetGainDiffFromBest), money.FormatCompact(r.NetGainDiffFromBest),
				tf.deltaSymbol(r.PensionDiffFromBest), money.Format(r.PensionDiffFromBest)))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// formatRow formats a single candidate row
func (tf *TableFormatter) formatRow(result *ComparisonResult, labelWidth, numWidth int) string {
	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		labelWidth, tf.truncate(result.Label(), labelWidth),
		numWidth, money.FormatCompact(result.TotalFlexCost),
		numWidth, money.Format(result.MonthlyPension),
		numWidth, money.FormatCompact(result.NetGain))
}

// deltaSymbol returns a + for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each candidate
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	parts := make([]string, 0, len(compSet.Results))
	for _, r := range compSet.Results {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Label(), money.FormatCompact(r.NetGain)))
	}
	return strings.Join(parts, " | ")
}
