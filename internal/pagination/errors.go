// Package pagination turns resume documents into fixed-size pages of placed content units.
package pagination

import "fmt"

// EstimateError reports a height estimate that is not a positive finite number.
// It always indicates a broken estimator formula, never bad document data.
type EstimateError struct {
	UnitID string
	Height float64
}

func (e *EstimateError) Error() string {
	return fmt.Sprintf("estimate error: unit %s has invalid height %v", e.UnitID, e.Height)
}

// BudgetError represents an unusable layout budget
type BudgetError struct {
	Message string
	Cause   error
}

func (e *BudgetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("budget error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("budget error: %s", e.Message)
}

func (e *BudgetError) Unwrap() error {
	return e.Cause
}
