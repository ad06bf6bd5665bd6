package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProfile is returned when a profile violates an engine precondition
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrInvalidScenario is returned for scenarios that cannot be projected
	ErrInvalidScenario = errors.New("invalid scenario")
)

// ValidationError reports a single invalid input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
