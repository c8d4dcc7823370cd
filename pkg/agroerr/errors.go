// Package agroerr defines the error taxonomy shared by the analysis
// components. All four kinds implement error and are matched with
// errors.As; none of them wraps another.
package agroerr

import "fmt"

// ValidationError reports malformed or out-of-range input. It is raised
// before any computation begins.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// NoDataError reports well-formed input that, after required filtering,
// leaves nothing to analyze.
type NoDataError struct {
	Reason string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data to analyze: %s", e.Reason)
}

// InsufficientDataError reports that a specific sub-analysis cannot run
// on the available data. Callers degrade the affected result field to a
// not-computed marker instead of failing the whole call.
type InsufficientDataError struct {
	Analysis string
	Reason   string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %s", e.Analysis, e.Reason)
}

// ComputationError reports an internal numeric computation that produced
// a non-finite value. It is always surfaced, never swallowed: a corrupted
// number in an agronomic recommendation is a safety-relevant defect.
type ComputationError struct {
	Op    string
	Value float64
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation %s produced non-finite value %v", e.Op, e.Value)
}
