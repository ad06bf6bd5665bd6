package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
	"github.com/rgehrsitz/quitcalc/internal/domain"
)

const profileFile = "testdata/profile.yaml"

func useFixedClock(t *testing.T) {
	t.Helper()
	calculation.SetNowFunc(func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	})
	t.Cleanup(func() { calculation.SetNowFunc(nil) })
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "quitcalc", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	rootCmd.InitDefaultHelpFlag()
	assert.NotNil(t, rootCmd.Flag("help"))
}

func TestCommandSubcommands(t *testing.T) {
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range []string{"calculate", "compare", "range", "advice", "validate", "example", "version"} {
		assert.True(t, registered[name], "command %q should be registered", name)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "quitcalc dev")
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"invalid-command"})
	t.Cleanup(func() { rootCmd.SetOut(nil); rootCmd.SetErr(nil); rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}

func TestRunCalculate(t *testing.T) {
	useFixedClock(t)

	var buf bytes.Buffer
	require.NoError(t, runCalculate(&buf, profileFile, "lite", scenarioFlags{}))
	out := buf.String()
	assert.Contains(t, out, "Quit=45 Claim=52.6 Strategy=full")
	assert.Contains(t, out, "MonthlyPension=¥4,253")
	assert.Contains(t, out, "TotalCost=¥164,160")
}

func TestRunCalculate_Overrides(t *testing.T) {
	useFixedClock(t)

	quit := 40.0
	var buf bytes.Buffer
	err := runCalculate(&buf, profileFile, "lite", scenarioFlags{quitAge: &quit, claim: "delay", strategy: "min"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Quit=40 Claim=55.6 Strategy=min")
}

func TestRunCalculate_WithPolicyFile(t *testing.T) {
	useFixedClock(t)

	var buf bytes.Buffer
	err := runCalculate(&buf, profileFile, "lite", scenarioFlags{policyFile: "testdata/policy_2026.yaml"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "TotalCost=¥168,720")
}

func TestRunCalculate_JSON(t *testing.T) {
	useFixedClock(t)

	var buf bytes.Buffer
	require.NoError(t, runCalculate(&buf, profileFile, "json", scenarioFlags{}))
	assert.Contains(t, buf.String(), `"monthly_pension"`)
	assert.Contains(t, buf.String(), `"timeline"`)
}

func TestRunCalculate_Errors(t *testing.T) {
	useFixedClock(t)
	var buf bytes.Buffer

	err := runCalculate(&buf, profileFile, "lite", scenarioFlags{claim: "49"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "claim", verr.Field)

	err = runCalculate(&buf, profileFile, "lite", scenarioFlags{claim: "soon"})
	assert.ErrorIs(t, err, domain.ErrInvalidScenario)

	err = runCalculate(&buf, profileFile, "lite", scenarioFlags{strategy: "sometimes"})
	assert.Error(t, err)

	zero := 0.0
	err = runCalculate(&buf, profileFile, "lite", scenarioFlags{quitAge: &zero})
	assert.Error(t, err)

	err = runCalculate(&buf, profileFile, "pdf", scenarioFlags{})
	assert.ErrorContains(t, err, "unsupported format")

	err = runCalculate(&buf, "testdata/missing.yaml", "lite", scenarioFlags{})
	assert.Error(t, err)
}

func TestRunCompare_CSV(t *testing.T) {
	useFixedClock(t)

	var buf bytes.Buffer
	require.NoError(t, runCompare(context.Background(), &buf, profileFile, "csv", scenarioFlags{}, compareFlags{}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5, "header plus quit ages 37, 45, 48 and 50")
	assert.True(t, strings.HasPrefix(lines[0], "Quit Age,"))
	assert.True(t, strings.HasPrefix(lines[1], "37,"))
	assert.True(t, strings.HasPrefix(lines[4], "50,"))
}

func TestRunCompare_FlagsOverrideInput(t *testing.T) {
	useFixedClock(t)

	current := 40.0
	var buf bytes.Buffer
	err := runCompare(context.Background(), &buf, profileFile, "csv", scenarioFlags{},
		compareFlags{current: &current, offsets: []float64{1}, candidates: []float64{44}})
	require.NoError(t, err)

	var ages []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n")[1:] {
		ages = append(ages, strings.SplitN(line, ",", 2)[0])
	}
	assert.Equal(t, []string{"37", "40", "41", "44"}, ages)
}

func TestRunCompare_TableAndErrors(t *testing.T) {
	useFixedClock(t)

	var buf bytes.Buffer
	require.NoError(t, runCompare(context.Background(), &buf, profileFile, "table", scenarioFlags{}, compareFlags{}))
	assert.Contains(t, buf.String(), "QUIT AGE COMPARISON")

	err := runCompare(context.Background(), &buf, profileFile, "xml", scenarioFlags{}, compareFlags{})
	assert.ErrorContains(t, err, "unknown output format")
}

func TestRunRange(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runRange(&buf, domain.GenderFemale, 1988, "text"))
	out := buf.String()
	assert.Contains(t, out, "Statutory age:      52.6")
	assert.Contains(t, out, "Claiming window:    50 - 55.6")
	assert.Contains(t, out, "delay")

	buf.Reset()
	require.NoError(t, runRange(&buf, domain.GenderMale, 1990, "json"))
	assert.Contains(t, buf.String(), `"legal_age": 63`)
	assert.Contains(t, buf.String(), `"divisors"`)

	assert.Error(t, runRange(&buf, domain.GenderMale, 1800, "text"))
	assert.Error(t, runRange(&buf, domain.GenderMale, 1990, "yaml"))
}

func TestRunAdvice(t *testing.T) {
	useFixedClock(t)

	var buf bytes.Buffer
	require.NoError(t, runAdvice(&buf, profileFile, "text", scenarioFlags{}))
	assert.Contains(t, buf.String(), "[i]  What is your free time worth?")
	assert.Contains(t, buf.String(), "[ok] Your contribution strategy is the better one")

	buf.Reset()
	require.NoError(t, runAdvice(&buf, profileFile, "json", scenarioFlags{}))
	assert.Contains(t, buf.String(), `"kind": "info"`)
}

func TestRunValidate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runValidate(&buf, profileFile, ""))
	assert.Contains(t, buf.String(), "is valid")

	assert.Error(t, runValidate(&buf, "testdata/invalid.yaml", ""))
}

func TestRunExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, runExample(path))

	var buf bytes.Buffer
	require.NoError(t, runValidate(&buf, path, ""))
}

func TestSaveCalculate(t *testing.T) {
	useFixedClock(t)
	input, err := filepath.Abs(profileFile)
	require.NoError(t, err)
	t.Chdir(t.TempDir())

	filename, err := saveCalculate(input, "json", scenarioFlags{})
	require.NoError(t, err)
	assert.Equal(t, "quitcalc_report_20260315_120000.json", filename)
	_, err = os.Stat(filename)
	assert.NoError(t, err)

	_, err = saveCalculate(input, "pdf", scenarioFlags{})
	assert.Error(t, err)
}
