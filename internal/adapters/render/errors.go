package render

import "errors"

// Sentinel kinds for chart rendering errors.
var (
	ErrEmptyChart      = errors.New("chart has no data")
	ErrUnsupportedKind = errors.New("unsupported chart kind")
)
