package domain

import (
	"fmt"
	"strings"
)

// Strategy selects how self-paid contributions continue after quitting
type Strategy int

const (
	// StrategyPayThrough keeps paying from the quit age until the claim age
	StrategyPayThrough Strategy = iota
	// StrategyStopAtMinimum stops paying once the minimum contribution years are reached
	StrategyStopAtMinimum
)

func (s Strategy) String() string {
	switch s {
	case StrategyPayThrough:
		return "full"
	case StrategyStopAtMinimum:
		return "min"
	default:
		return "unknown"
	}
}

// Description returns a longer label for reports
func (s Strategy) Description() string {
	switch s {
	case StrategyPayThrough:
		return "Pay until claiming"
	case StrategyStopAtMinimum:
		return "Stop at minimum years"
	default:
		return "Unknown"
	}
}

// ParseStrategy converts a configuration string into a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full", "pay_through", "pay-through":
		return StrategyPayThrough, nil
	case "min", "stop_at_minimum", "stop-at-minimum":
		return StrategyStopAtMinimum, nil
	default:
		return StrategyPayThrough, fmt.Errorf("unknown strategy %q (valid: full, min)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Scenario is one hypothetical quit decision
type Scenario struct {
	QuitAge  float64  `yaml:"quit_age" json:"quit_age"`
	ClaimAge *float64 `yaml:"claim_age,omitempty" json:"claim_age,omitempty"`
	Strategy Strategy `yaml:"strategy" json:"strategy"`
}

// WithQuitAge returns a copy of the scenario with a different quit age
func (s Scenario) WithQuitAge(age float64) Scenario {
	s.QuitAge = age
	return s
}

// WithClaimAge returns a copy of the scenario with an explicit claim age
func (s Scenario) WithClaimAge(age float64) Scenario {
	s.ClaimAge = &age
	return s
}

// Equal reports whether two scenarios describe the same decision
func (s Scenario) Equal(o Scenario) bool {
	if s.QuitAge != o.QuitAge || s.Strategy != o.Strategy {
		return false
	}
	if s.ClaimAge == nil || o.ClaimAge == nil {
		return s.ClaimAge == nil && o.ClaimAge == nil
	}
	return *s.ClaimAge == *o.ClaimAge
}

// WithStrategy returns a copy of the scenario with a different strategy
func (s Scenario) WithStrategy(strategy Strategy) Scenario {
	s.Strategy = strategy
	return s
}
