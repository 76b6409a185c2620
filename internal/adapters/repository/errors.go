package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for dataset load errors.
var (
	ErrLoad           = errors.New("dataset load failed")
	ErrSourceMissing  = errors.New("source missing")
	ErrMalformed      = errors.New("malformed source")
	ErrMissingColumns = errors.New("missing required columns")
)

// LoadError describes why a dataset could not be loaded. It matches ErrLoad
// and the reason sentinel it wraps.
type LoadError struct {
	Source string // file path or source name
	Line   int    // 1-based line of the failure, 0 when not tied to a line
	Reason string // short human description
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %s: %v", e.Source, e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Kind returns a metric-friendly label for the failure.
func (e *LoadError) Kind() string {
	switch {
	case errors.Is(e.Err, ErrSourceMissing):
		return "missing"
	case errors.Is(e.Err, ErrMissingColumns):
		return "columns"
	default:
		return "malformed"
	}
}

func loadError(source string, line int, reason string, kind error, cause error) *LoadError {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	return &LoadError{Source: source, Line: line, Reason: reason, Err: err}
}
