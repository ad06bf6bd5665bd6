package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/quitcalc/internal/compare"
)

// compareFlags select the candidate quit ages
type compareFlags struct {
	current    *float64
	offsets    []float64
	candidates []float64
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare quitting now, at the planned age and a few years later",
	Long: `Compare the net gain of several quit ages for the same profile, claim age
and contribution strategy.

Examples:
  quitcalc compare profile.yaml
  quitcalc compare profile.yaml --current 45 --offsets 2,4,6
  quitcalc compare profile.yaml --candidates 40,42 --format csv
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var cf compareFlags
		flags := cmd.Flags()
		if flags.Changed("current") {
			current, _ := flags.GetFloat64("current")
			cf.current = &current
		}
		if flags.Changed("offsets") {
			cf.offsets, _ = flags.GetFloat64Slice("offsets")
		}
		cf.candidates, _ = flags.GetFloat64Slice("candidates")
		format, _ := flags.GetString("format")

		if err := runCompare(cmd.Context(), cmd.OutOrStdout(), args[0], format, readScenarioFlags(cmd), cf); err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
	},
}

func runCompare(ctx context.Context, w io.Writer, inputFile, format string, sf scenarioFlags, cf compareFlags) error {
	input, err := loadInput(inputFile, sf)
	if err != nil {
		return err
	}

	options := compare.CompareOptions{
		CurrentAge: input.Scenario.QuitAge,
		Offsets:    input.Compare.Offsets,
		Candidates: append(append([]float64{}, input.Compare.Candidates...), cf.candidates...),
		ClaimAge:   input.Scenario.ClaimAge,
		Strategy:   input.Scenario.Strategy,
	}
	if input.Compare.CurrentAge != nil && sf.quitAge == nil {
		options.CurrentAge = *input.Compare.CurrentAge
	}
	if cf.current != nil {
		options.CurrentAge = *cf.current
	}
	if cf.offsets != nil {
		options.Offsets = cf.offsets
	}

	engine := compare.NewCompareEngine(newEngine(input.Policy, sf.debug))
	set, err := engine.Compare(ctx, &input.Profile, options)
	if err != nil {
		return err
	}
	set.ConfigPath = inputFile

	var out string
	switch strings.ToLower(format) {
	case "csv":
		out, err = (&compare.CSVFormatter{}).Format(set)
	case "json":
		out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
	case "table", "console", "":
		out = (&compare.TableFormatter{}).Format(set)
	case "compact":
		out = (&compare.TableFormatter{}).FormatCompact(set)
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func init() {
	compareCmd.Flags().Float64("current", 0, "Quit age being considered (default: compare.current_age or scenario.quit_age)")
	compareCmd.Flags().Float64Slice("offsets", nil, "Years added to the current quit age, e.g. 3,5")
	compareCmd.Flags().Float64Slice("candidates", nil, "Additional explicit quit ages")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	addScenarioFlags(compareCmd)
}
