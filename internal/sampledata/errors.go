package sampledata

import "errors"

// Sentinel errors for sample generation.
var (
	ErrInvalidConfig = errors.New("invalid sample config")
	ErrWrite         = errors.New("write sample failed")
)
