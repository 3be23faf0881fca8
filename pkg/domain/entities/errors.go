package entities

import "fmt"

// ValidationError reports a required column missing from an input table.
// It is raised before any resolution begins and blocks the whole run.
type ValidationError struct {
	Table   string
	Columns []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("table %q is missing required columns %v", e.Table, e.Columns)
}

// NewValidationError creates a ValidationError for a table and the columns
// it lacks.
func NewValidationError(table string, columns ...string) *ValidationError {
	return &ValidationError{Table: table, Columns: columns}
}

// ComputationError wraps an unexpected failure inside a resolver pass. There
// is no per-line recovery: a ComputationError invalidates the entire run.
type ComputationError struct {
	Pass string
	Err  error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Pass, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
