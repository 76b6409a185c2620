package aggregate

import "errors"

// Sentinel errors for column misuse.
var (
	ErrNotNumeric = errors.New("column is not numeric")
	ErrNotDate    = errors.New("column is not a date")
)
