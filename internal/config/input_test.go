package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func TestLoadFromFile_Valid(t *testing.T) {
	parser := NewInputParser()

	input, err := parser.LoadFromFile(testdata("valid.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1988, input.Profile.BirthYear)
	assert.Equal(t, 6, input.Profile.BirthMonth)
	assert.Equal(t, domain.GenderFemale, input.Profile.Gender)
	assert.Equal(t, domain.HukouBeijing, input.Profile.Hukou)
	assert.Equal(t, 10.0, input.Profile.YearsPaidNow)
	assert.True(t, input.Profile.BalanceNow.Equal(decimal.NewFromInt(80000)))

	assert.Equal(t, 45.0, input.Scenario.QuitAge)
	assert.Equal(t, domain.StrategyPayThrough, input.Scenario.Strategy)
	require.NotNil(t, input.Scenario.ClaimAge)
	assert.InDelta(t, 52.6, *input.Scenario.ClaimAge, 1e-9)
	assert.Equal(t, "legal", input.ClaimSelector)

	require.NotNil(t, input.Compare.CurrentAge)
	assert.Equal(t, 45.0, *input.Compare.CurrentAge)
	assert.Equal(t, []float64{3, 5}, input.Compare.Offsets)

	assert.Equal(t, domain.DefaultPolicy(), input.Policy)
}

func TestLoadFromFile_Minimal(t *testing.T) {
	input, err := NewInputParser().LoadFromFile(testdata("minimal.yaml"))
	require.NoError(t, err)

	assert.Equal(t, domain.GenderMale, input.Profile.Gender)
	assert.Equal(t, domain.HukouNonBeijing, input.Profile.Hukou)
	assert.True(t, input.Profile.BalanceNow.Equal(decimal.RequireFromString("120000.5")))
	assert.Equal(t, domain.StrategyStopAtMinimum, input.Scenario.Strategy)
	require.NotNil(t, input.Scenario.ClaimAge)
	assert.Equal(t, 62.0, *input.Scenario.ClaimAge)
	assert.Nil(t, input.Compare.CurrentAge)
	assert.Nil(t, input.Compare.Offsets)
}

func TestLoadFromFile_ProfileOnlyQuitsNow(t *testing.T) {
	calculation.SetNowFunc(func() time.Time { return time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calculation.SetNowFunc(nil) })

	input, err := NewInputParser().LoadFromFile(testdata("profile_only.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 37.0, input.Scenario.QuitAge)
	assert.Nil(t, input.Scenario.ClaimAge)
	assert.Equal(t, domain.StrategyPayThrough, input.Scenario.Strategy)
}

func TestLoadFromFile_PolicyBlock(t *testing.T) {
	input, err := NewInputParser().LoadFromFile(testdata("with_policy.yaml"))
	require.NoError(t, err)

	assert.True(t, input.Policy.FlexibleMonthly.Equal(decimal.NewFromInt(1900)))
	assert.Equal(t, 82.0, input.Policy.LifeExpectancy)
	assert.True(t, input.Policy.EmployerProxyMonthly.Equal(decimal.NewFromInt(2800)), "untouched fields keep defaults")
	assert.Nil(t, input.Scenario.ClaimAge)
}

func TestLoadFromFileWithPolicy(t *testing.T) {
	parser := NewInputParser()

	input, err := parser.LoadFromFileWithPolicy(testdata("with_policy.yaml"), testdata("policy_2026.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2026, input.Policy.Metadata.DataYear)
	assert.True(t, input.Policy.MinWageBase.Equal(decimal.NewFromInt(6500)))
	assert.Equal(t, 0.025, input.Policy.InflationRate)
	// the input file's own policy block wins over the policy file
	assert.True(t, input.Policy.FlexibleMonthly.Equal(decimal.NewFromInt(1900)))

	_, err = parser.LoadFromFileWithPolicy(testdata("valid.yaml"), testdata("missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		file    string
		wantErr string
	}{
		{"missing.yaml", "failed to read file"},
		{"bad_schema.yaml", "schema validation failed"},
		{"unknown_field.yaml", "schema validation failed"},
		{"zero_years.yaml", "schema validation failed"},
		{"claim_outside_window.yaml", "scenario.claim_age"},
		{"bad_policy.yaml", "policy.life_expectancy"},
		{"misspelled_policy.yaml", "flexibel_monthly"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := NewInputParser().LoadFromFile(testdata(tt.file))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadPolicyFile_RejectsUnknownKeys(t *testing.T) {
	_, err := NewInputParser().LoadPolicyFile(testdata("misspelled_policy_file.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_wage_bse")
}

func TestDecodeStrict(t *testing.T) {
	policy := domain.DefaultPolicy()
	require.NoError(t, decodeStrict([]byte("flexible_monthly: 1900\n"), &policy))
	assert.True(t, policy.FlexibleMonthly.Equal(decimal.NewFromInt(1900)))

	err := decodeStrict([]byte("flexibel_monthly: 9999\n"), &policy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flexibel_monthly")
	assert.True(t, policy.FlexibleMonthly.Equal(decimal.NewFromInt(1900)))

	err = decodeStrict([]byte("subsidy_4050: {rat: 0.5}\n"), &policy)
	assert.Error(t, err)

	assert.NoError(t, decodeStrict([]byte(""), &policy))
}

func TestLoadFromFile_MixedCaseVocabulary(t *testing.T) {
	input, err := NewInputParser().LoadFromFile(testdata("mixed_case.yaml"))
	require.NoError(t, err)

	assert.Equal(t, domain.GenderFemale, input.Profile.Gender)
	assert.Equal(t, domain.HukouBeijing, input.Profile.Hukou)
	assert.Equal(t, domain.StrategyStopAtMinimum, input.Scenario.Strategy)
	require.NotNil(t, input.Scenario.ClaimAge)
	assert.InDelta(t, 52.6, *input.Scenario.ClaimAge, 1e-9)
}

func TestParse_RejectsEmptyDocument(t *testing.T) {
	_, err := NewInputParser().Parse([]byte(""), domain.DefaultPolicy())
	assert.Error(t, err)
}

func validInput() *Input {
	return &Input{
		Profile: domain.Profile{
			BirthYear:    1988,
			BirthMonth:   6,
			Gender:       domain.GenderFemale,
			Hukou:        domain.HukouBeijing,
			YearsPaidNow: 10,
			BalanceNow:   decimal.NewFromInt(80000),
		},
		Scenario: domain.Scenario{QuitAge: 45},
		Policy:   domain.DefaultPolicy(),
	}
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()
	require.NoError(t, parser.ValidateConfiguration(validInput()))

	cases := map[string]func(in *Input){
		"years_paid_now":       func(in *Input) { in.Profile.YearsPaidNow = -1 },
		"balance_now":          func(in *Input) { in.Profile.BalanceNow = decimal.NewFromInt(-5) },
		"scenario.quit_age":    func(in *Input) { in.Scenario.QuitAge = 0 },
		"scenario.claim_age":   func(in *Input) { in.Scenario = in.Scenario.WithClaimAge(49) },
		"compare.current_age":  func(in *Input) { c := -3.0; in.Compare.CurrentAge = &c },
		"policy.min_wage_base": func(in *Input) { in.Policy.MinWageBase = decimal.Zero },
		"policy.account_rate":  func(in *Input) { in.Policy.AccountRate = decimal.NewFromInt(2) },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := validInput()
			mutate(in)
			err := parser.ValidateConfiguration(in)
			require.Error(t, err)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "%v", err)
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestSchemaValidator(t *testing.T) {
	sv, err := NewSchemaValidator()
	require.NoError(t, err)

	ok := []byte(`
profile: {birth_year: 1980, birth_month: 2, gender: male, hukou: "no", years_paid_now: 3, balance_now: 9000}
scenario: {quit_age: 50, claim_age: delay}
`)
	assert.NoError(t, sv.ValidateYAML(ok))

	badStrategy := []byte(`
profile: {birth_year: 1980, birth_month: 2, gender: male, hukou: "no", years_paid_now: 3, balance_now: 9000}
scenario: {quit_age: 50, strategy: sometimes}
`)
	assert.Error(t, sv.ValidateYAML(badStrategy))

	for _, profile := range []string{
		`{birth_year: 1980, birth_month: 2, gender: " M ", hukou: "false", years_paid_now: 3, balance_now: 9000}`,
		`{birth_year: 1980, birth_month: 2, gender: Male, hukou: Y, years_paid_now: 3, balance_now: 9000}`,
		`{birth_year: 1980, birth_month: 2, gender: f, hukou: true, years_paid_now: 3, balance_now: 9000}`,
	} {
		assert.NoError(t, sv.ValidateYAML([]byte("profile: "+profile)), profile)
	}

	badGender := []byte(`
profile: {birth_year: 1980, birth_month: 2, gender: other, hukou: "no", years_paid_now: 3, balance_now: 9000}
`)
	assert.Error(t, sv.ValidateYAML(badGender))

	badPolicy := []byte(`
profile: {birth_year: 1980, birth_month: 2, gender: male, hukou: "no", years_paid_now: 3, balance_now: 9000}
policy: {metadata: {year: 2026}}
`)
	assert.Error(t, sv.ValidateYAML(badPolicy))

	missingProfile := []byte(`scenario: {quit_age: 50}`)
	assert.Error(t, sv.ValidateYAML(missingProfile))

	assert.Error(t, sv.ValidateYAML([]byte("profile: [unclosed")))
}

func TestCreateExampleInput_ParsesCleanly(t *testing.T) {
	data, err := CreateExampleInput()
	require.NoError(t, err)
	assert.Contains(t, string(data), `hukou: "yes"`)

	input, err := NewInputParser().Parse(data, domain.DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, 45.0, input.Scenario.QuitAge)
	assert.Equal(t, []float64{3, 5}, input.Compare.Offsets)
}
