package service

import "errors"

// Sentinel errors returned by the Service.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrUnknownChart = errors.New("unknown chart")
)
