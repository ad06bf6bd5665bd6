package output

import (
	"fmt"
	"io"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/domain"
)

// Report bundles one projection with everything the formatters render around it
type Report struct {
	Profile      domain.Profile            `json:"profile"`
	Result       *domain.RetirementResult  `json:"result"`
	Timeline     *calculation.Timeline     `json:"timeline,omitempty"`
	Advice       []calculation.Advice      `json:"advice"`
	ClaimOptions []calculation.ClaimOption `json:"claim_options"`
	Policy       domain.PolicyMetadata     `json:"policy"`
	Assumptions  []string                  `json:"assumptions"`
}

// BuildReport runs the projection, timeline and advice for a scenario
func BuildReport(engine *calculation.CalculationEngine, profile *domain.Profile, scenario domain.Scenario) (*Report, error) {
	result, err := engine.ComputeRetirement(profile, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to compute retirement: %w", err)
	}
	advice, err := engine.Advise(profile, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to build advice: %w", err)
	}

	report := &Report{
		Profile:      *profile,
		Result:       result,
		Advice:       advice,
		ClaimOptions: calculation.ClaimAgeOptions(result.FlexRange),
		Policy:       engine.Policy.Metadata,
		Assumptions:  Assumptions(engine.Policy),
	}
	if tl, ok := calculation.BuildTimeline(result, calculation.Now()); ok {
		report.Timeline = &tl
	}
	return report, nil
}

// GenerateReport renders a report with the named formatter and writes it to w
func GenerateReport(w io.Writer, report *Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %v)", format, AvailableFormatterNames())
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
