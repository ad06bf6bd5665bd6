package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/domain"
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Show the statutory retirement age and flexible claiming window for a birth cohort",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		genderFlag, _ := cmd.Flags().GetString("gender")
		birthYear, _ := cmd.Flags().GetInt("birth-year")
		format, _ := cmd.Flags().GetString("format")

		gender, err := domain.ParseGender(genderFlag)
		if err != nil {
			log.Fatal(err)
		}
		if err := runRange(cmd.OutOrStdout(), gender, birthYear, format); err != nil {
			log.Fatal(err)
		}
	},
}

// rangeReport is the JSON shape of the range command
type rangeReport struct {
	Gender    domain.Gender             `json:"gender"`
	BirthYear int                       `json:"birth_year"`
	Range     domain.FlexRange          `json:"range"`
	Options   []calculation.ClaimOption `json:"options"`
	Divisors  map[string]int            `json:"divisors"`
}

func runRange(w io.Writer, gender domain.Gender, birthYear int, format string) error {
	if birthYear < 1900 || birthYear > 2100 {
		return &domain.ValidationError{Field: "birth-year", Message: "must be between 1900 and 2100"}
	}
	r := domain.FlexibleRetirementRange(gender, birthYear)
	options := calculation.ClaimAgeOptions(r)

	switch strings.ToLower(format) {
	case "json":
		report := rangeReport{
			Gender:    gender,
			BirthYear: birthYear,
			Range:     r,
			Options:   options,
			Divisors:  make(map[string]int, len(options)),
		}
		for _, opt := range options {
			report.Divisors[string(opt.Kind)] = calculation.PensionDivisor(opt.Age)
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal range: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "text", "":
		var b strings.Builder
		fmt.Fprintf(&b, "RETIREMENT AGE (%s, born %d)\n", gender, birthYear)
		b.WriteString(strings.Repeat("=", 40) + "\n")
		fmt.Fprintf(&b, "Statutory age:      %s\n", roundAge(r.LegalAge))
		fmt.Fprintf(&b, "Pre-reform age:     %s\n", roundAge(r.OriginalAge))
		fmt.Fprintf(&b, "Claiming window:    %s - %s\n\n", roundAge(r.Earliest), roundAge(r.Latest))
		b.WriteString("CLAIM OPTIONS\n")
		for _, opt := range options {
			fmt.Fprintf(&b, "  %-6s %6s   divisor %d months\n",
				opt.Kind, roundAge(opt.Age), calculation.PensionDivisor(opt.Age))
		}
		_, err := io.WriteString(w, b.String())
		return err

	default:
		return fmt.Errorf("unknown output format: %s (valid: text, json)", format)
	}
}

func roundAge(age float64) string {
	return fmt.Sprintf("%g", math.Round(age*10)/10)
}

func init() {
	rangeCmd.Flags().String("gender", "", "Gender: female or male")
	rangeCmd.Flags().Int("birth-year", 0, "Birth year")
	rangeCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	_ = rangeCmd.MarkFlagRequired("gender")
	_ = rangeCmd.MarkFlagRequired("birth-year")
}
