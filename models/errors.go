package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader is returned when a source has no header row.
	ErrNoHeader = errors.New("missing header row")
	// ErrMissingColumn is returned when a required column is not in the schema.
	ErrMissingColumn = errors.New("missing column")
)

// LoadError reports a failure to read the source table. It is fatal for a run.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// AggregationError reports that one query could not be computed. Other queries
// are unaffected.
type AggregationError struct {
	Query QueryName
	Err   error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate %s: %v", e.Query, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }
