package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Input is a fully parsed input file: who the user is, what they want to try
// and the policy set to project with.
type Input struct {
	Profile       domain.Profile
	Scenario      domain.Scenario
	ClaimSelector string // claim_age as written, e.g. "early" or "55"
	Compare       CompareSettings
	Policy        domain.PolicyConfig
}

// CompareSettings holds the optional compare block
type CompareSettings struct {
	CurrentAge *float64
	Offsets    []float64
	Candidates []float64
}

type rawInput struct {
	Profile struct {
		BirthYear    int             `yaml:"birth_year"`
		BirthMonth   int             `yaml:"birth_month"`
		Gender       string          `yaml:"gender"`
		Hukou        string          `yaml:"hukou"`
		YearsPaidNow float64         `yaml:"years_paid_now"`
		BalanceNow   decimal.Decimal `yaml:"balance_now"`
	} `yaml:"profile"`
	Scenario struct {
		QuitAge  float64 `yaml:"quit_age"`
		ClaimAge string  `yaml:"claim_age"`
		Strategy string  `yaml:"strategy"`
	} `yaml:"scenario"`
	Compare struct {
		CurrentAge *float64  `yaml:"current_age"`
		Offsets    []float64 `yaml:"offsets"`
		Candidates []float64 `yaml:"candidates"`
	} `yaml:"compare"`
	Policy yaml.Node `yaml:"policy"`
}

// InputParser handles parsing of input configuration files
type InputParser struct {
	schema *SchemaValidator
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an input file using the default Beijing policy
func (ip *InputParser) LoadFromFile(filename string) (*Input, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, domain.DefaultPolicy())
}

// LoadFromFileWithPolicy loads an input file with a policy file overlaid on the
// defaults. Policy values inside the input file still take precedence.
func (ip *InputParser) LoadFromFileWithPolicy(filename, policyFile string) (*Input, error) {
	policy, err := ip.LoadPolicyFile(policyFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, policy)
}

// LoadPolicyFile reads a policy YAML document over the default policy
func (ip *InputParser) LoadPolicyFile(filename string) (domain.PolicyConfig, error) {
	policy := domain.DefaultPolicy()
	data, err := os.ReadFile(filename)
	if err != nil {
		return policy, fmt.Errorf("failed to read policy file %s: %w", filename, err)
	}
	sv, err := ip.validator()
	if err != nil {
		return policy, err
	}
	if err := sv.ValidatePolicyYAML(data); err != nil {
		return policy, fmt.Errorf("policy file %s: %w", filename, err)
	}
	if err := decodeStrict(data, &policy); err != nil {
		return policy, fmt.Errorf("failed to parse policy YAML: %w", err)
	}
	if err := ValidatePolicy(&policy); err != nil {
		return policy, fmt.Errorf("policy validation failed: %w", err)
	}
	return policy, nil
}

func (ip *InputParser) validator() (*SchemaValidator, error) {
	if ip.schema == nil {
		sv, err := NewSchemaValidator()
		if err != nil {
			return nil, err
		}
		ip.schema = sv
	}
	return ip.schema, nil
}

// decodeStrict decodes YAML into out and rejects keys out does not declare
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Parse decodes and validates an input document against a base policy
func (ip *InputParser) Parse(data []byte, basePolicy domain.PolicyConfig) (*Input, error) {
	sv, err := ip.validator()
	if err != nil {
		return nil, err
	}
	if err := sv.ValidateYAML(data); err != nil {
		return nil, err
	}

	var raw rawInput
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input, err := ip.convert(&raw, basePolicy)
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(input); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return input, nil
}

func (ip *InputParser) convert(raw *rawInput, policy domain.PolicyConfig) (*Input, error) {
	gender, err := domain.ParseGender(raw.Profile.Gender)
	if err != nil {
		return nil, err
	}
	hukou, err := domain.ParseHukou(raw.Profile.Hukou)
	if err != nil {
		return nil, err
	}
	strategy, err := domain.ParseStrategy(raw.Scenario.Strategy)
	if err != nil {
		return nil, err
	}

	if !raw.Policy.IsZero() {
		block, err := yaml.Marshal(&raw.Policy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse policy block: %w", err)
		}
		if err := decodeStrict(block, &policy); err != nil {
			return nil, fmt.Errorf("failed to parse policy block: %w", err)
		}
	}

	input := &Input{
		Profile: domain.Profile{
			BirthYear:    raw.Profile.BirthYear,
			BirthMonth:   raw.Profile.BirthMonth,
			Gender:       gender,
			Hukou:        hukou,
			YearsPaidNow: raw.Profile.YearsPaidNow,
			BalanceNow:   raw.Profile.BalanceNow,
		},
		Scenario: domain.Scenario{
			QuitAge:  raw.Scenario.QuitAge,
			Strategy: strategy,
		},
		ClaimSelector: raw.Scenario.ClaimAge,
		Compare: CompareSettings{
			CurrentAge: raw.Compare.CurrentAge,
			Offsets:    raw.Compare.Offsets,
			Candidates: raw.Compare.Candidates,
		},
		Policy: policy,
	}

	// Without a scenario block the projection quits now.
	if input.Scenario.QuitAge == 0 {
		input.Scenario.QuitAge = float64(calculation.AgeFromBirth(input.Profile.BirthYear, input.Profile.BirthMonth))
	}

	if raw.Scenario.ClaimAge != "" {
		r := domain.FlexibleRetirementRange(gender, input.Profile.BirthYear)
		claim, err := calculation.ResolveClaimAge(r, raw.Scenario.ClaimAge)
		if err != nil {
			return nil, err
		}
		input.Scenario = input.Scenario.WithClaimAge(claim)
	}
	return input, nil
}

// ValidateConfiguration validates a parsed input before it reaches the engine
func (ip *InputParser) ValidateConfiguration(input *Input) error {
	if err := input.Profile.Validate(); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if err := ip.validateScenario(&input.Profile, &input.Scenario); err != nil {
		return fmt.Errorf("scenario validation failed: %w", err)
	}
	if c := input.Compare.CurrentAge; c != nil && *c <= 0 {
		return &domain.ValidationError{Field: "compare.current_age", Message: "must be positive"}
	}
	if err := ValidatePolicy(&input.Policy); err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateScenario(profile *domain.Profile, scenario *domain.Scenario) error {
	if scenario.QuitAge <= 0 {
		return &domain.ValidationError{Field: "scenario.quit_age", Message: "must be positive"}
	}
	if scenario.ClaimAge != nil {
		r := domain.FlexibleRetirementRange(profile.Gender, profile.BirthYear)
		if !r.Contains(*scenario.ClaimAge) {
			return &domain.ValidationError{
				Field:   "scenario.claim_age",
				Message: fmt.Sprintf("%g is outside the flexible claiming window %g-%g", *scenario.ClaimAge, r.Earliest, r.Latest),
			}
		}
	}
	return nil
}

// ValidatePolicy rejects policy values that would break the projection formulas
func ValidatePolicy(p *domain.PolicyConfig) error {
	positive := []struct {
		field string
		value decimal.Decimal
	}{
		{"min_wage_base", p.MinWageBase},
		{"flexible_monthly", p.FlexibleMonthly},
		{"employer_proxy_monthly", p.EmployerProxyMonthly},
		{"average_social_wage", p.AverageSocialWage},
	}
	for _, v := range positive {
		if !v.value.IsPositive() {
			return &domain.ValidationError{Field: "policy." + v.field, Message: "must be positive"}
		}
	}
	if p.AccountRate.IsNegative() || p.AccountRate.GreaterThan(decimal.NewFromInt(1)) {
		return &domain.ValidationError{Field: "policy.account_rate", Message: "must be between 0 and 1"}
	}
	if p.MedicalBuyInMonthly.IsNegative() {
		return &domain.ValidationError{Field: "policy.medical_buy_in_monthly", Message: "cannot be negative"}
	}
	if p.MinPensionYears <= 0 {
		return &domain.ValidationError{Field: "policy.min_pension_years", Message: "must be positive"}
	}
	if p.InflationRate <= -1 || p.InflationRate > 0.5 {
		return &domain.ValidationError{Field: "policy.inflation_rate", Message: "must be between -100% and 50%"}
	}
	if p.LifeExpectancy <= 0 {
		return &domain.ValidationError{Field: "policy.life_expectancy", Message: "must be positive"}
	}
	if p.Subsidy4050.Rate.IsNegative() || p.Subsidy4050.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return &domain.ValidationError{Field: "policy.subsidy_4050.rate", Message: "must be between 0 and 1"}
	}
	return nil
}
