package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type exampleDocument struct {
	Profile struct {
		BirthYear    int     `yaml:"birth_year"`
		BirthMonth   int     `yaml:"birth_month"`
		Gender       string  `yaml:"gender"`
		Hukou        string  `yaml:"hukou"`
		YearsPaidNow float64 `yaml:"years_paid_now"`
		BalanceNow   float64 `yaml:"balance_now"`
	} `yaml:"profile"`
	Scenario struct {
		QuitAge  float64 `yaml:"quit_age"`
		ClaimAge string  `yaml:"claim_age"`
		Strategy string  `yaml:"strategy"`
	} `yaml:"scenario"`
	Compare struct {
		Offsets []float64 `yaml:"offsets,flow"`
	} `yaml:"compare"`
}

const exampleHeader = `# quitcalc input
#   gender: female | male
#   hukou: "yes" for a Beijing household registration, "no" otherwise
#   claim_age: early | legal | delay, or a numeric age inside the flexible window
#   strategy: full (pay until claiming) | min (stop at the minimum years)
`

// CreateExampleInput returns a starter input document that passes validation
func CreateExampleInput() ([]byte, error) {
	var doc exampleDocument
	doc.Profile.BirthYear = 1988
	doc.Profile.BirthMonth = 6
	doc.Profile.Gender = "female"
	doc.Profile.Hukou = "yes"
	doc.Profile.YearsPaidNow = 10
	doc.Profile.BalanceNow = 80000
	doc.Scenario.QuitAge = 45
	doc.Scenario.ClaimAge = "legal"
	doc.Scenario.Strategy = "full"
	doc.Compare.Offsets = []float64{3, 5}

	body, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal example input: %w", err)
	}
	return append([]byte(exampleHeader), body...), nil
}
