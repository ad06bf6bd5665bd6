package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/config"
	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/rgehrsitz/quitcalc/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "quitcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// scenarioFlags are the per-run overrides shared by calculate, compare and advice
type scenarioFlags struct {
	quitAge    *float64
	claim      string
	strategy   string
	policyFile string
	debug      bool
}

func readScenarioFlags(cmd *cobra.Command) scenarioFlags {
	var sf scenarioFlags
	flags := cmd.Flags()
	if flags.Changed("quit-age") {
		age, _ := flags.GetFloat64("quit-age")
		sf.quitAge = &age
	}
	sf.claim, _ = flags.GetString("claim")
	sf.strategy, _ = flags.GetString("strategy")
	sf.policyFile, _ = flags.GetString("policy")
	sf.debug, _ = flags.GetBool("debug")
	return sf
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("quit-age", 0, "Quit age (overrides scenario.quit_age)")
	cmd.Flags().String("claim", "", "Claim age: early, legal, delay or a numeric age (overrides scenario.claim_age)")
	cmd.Flags().String("strategy", "", "Contribution strategy after quitting: full or min (overrides scenario.strategy)")
	cmd.Flags().String("policy", "", "Path to a policy YAML file merged over the built-in Beijing policy")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}

// loadInput parses the input file and applies the command-line overrides
func loadInput(inputFile string, sf scenarioFlags) (*config.Input, error) {
	parser := config.NewInputParser()

	var input *config.Input
	var err error
	if sf.policyFile != "" {
		input, err = parser.LoadFromFileWithPolicy(inputFile, sf.policyFile)
	} else {
		input, err = parser.LoadFromFile(inputFile)
	}
	if err != nil {
		return nil, err
	}

	if sf.quitAge != nil {
		if *sf.quitAge <= 0 {
			return nil, &domain.ValidationError{Field: "quit-age", Message: "must be positive"}
		}
		input.Scenario = input.Scenario.WithQuitAge(*sf.quitAge)
	}
	if sf.claim != "" {
		r := domain.FlexibleRetirementRange(input.Profile.Gender, input.Profile.BirthYear)
		claim, err := calculation.ResolveClaimAge(r, sf.claim)
		if err != nil {
			return nil, err
		}
		if !r.Contains(claim) {
			return nil, &domain.ValidationError{
				Field:   "claim",
				Message: fmt.Sprintf("%g is outside the flexible claiming window %g-%g", claim, r.Earliest, r.Latest),
			}
		}
		input.Scenario = input.Scenario.WithClaimAge(claim)
		input.ClaimSelector = sf.claim
	}
	if sf.strategy != "" {
		strategy, err := domain.ParseStrategy(sf.strategy)
		if err != nil {
			return nil, err
		}
		input.Scenario = input.Scenario.WithStrategy(strategy)
	}
	return input, nil
}

// newEngine builds a calculation engine for the input's policy
func newEngine(policy domain.PolicyConfig, debugMode bool) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithPolicy(policy)
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	engine.Debug = debugMode
	return engine
}

var rootCmd = &cobra.Command{
	Use:   "quitcalc",
	Short: "Beijing early-quit pension calculator",
	Long: `Projects what quitting a job early means for a Beijing urban employee pension:
self-paid contribution cost, monthly pension, lifetime net gain, eligibility
for pension and medical insurance, and the 4050 employment subsidy.`,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Project the pension for one quit scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		save, _ := cmd.Flags().GetBool("save")
		if save {
			filename, err := saveCalculate(args[0], format, readScenarioFlags(cmd))
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return
		}
		if err := runCalculate(cmd.OutOrStdout(), args[0], format, readScenarioFlags(cmd)); err != nil {
			log.Fatal(err)
		}
	},
}

func buildReport(inputFile string, sf scenarioFlags) (*output.Report, error) {
	input, err := loadInput(inputFile, sf)
	if err != nil {
		return nil, err
	}
	engine := newEngine(input.Policy, sf.debug)
	return output.BuildReport(engine, &input.Profile, input.Scenario)
}

func runCalculate(w io.Writer, inputFile, format string, sf scenarioFlags) error {
	report, err := buildReport(inputFile, sf)
	if err != nil {
		return err
	}
	return output.GenerateReport(w, report, format)
}

// saveCalculate writes the report to a timestamped file in the working directory
func saveCalculate(inputFile, format string, sf scenarioFlags) (string, error) {
	f := output.GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("unsupported format: %s (available: %v)", format, output.AvailableFormatterNames())
	}
	report, err := buildReport(inputFile, sf)
	if err != nil {
		return "", err
	}
	ext := "txt"
	switch f.Name() {
	case "json", "csv":
		ext = f.Name()
	}
	return output.WriteFormatted(f, report, ext)
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		policyFile, _ := cmd.Flags().GetString("policy")
		if err := runValidate(cmd.OutOrStdout(), args[0], policyFile); err != nil {
			log.Fatal(err)
		}
	},
}

func runValidate(w io.Writer, inputFile, policyFile string) error {
	if _, err := loadInput(inputFile, scenarioFlags{policyFile: policyFile}); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Input file %s is valid\n", inputFile)
	return err
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Generate an example input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExample(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", args[0])
	},
}

func runExample(outputFile string) error {
	data, err := config.CreateExampleInput()
	if err != nil {
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", fmt.Sprintf("Output format (%s; aliases: %s)",
		strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", ")))
	calculateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	addScenarioFlags(calculateCmd)

	validateCmd.Flags().String("policy", "", "Path to a policy YAML file merged over the built-in Beijing policy")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(adviceCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
