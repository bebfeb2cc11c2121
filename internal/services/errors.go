package services

import "errors"

// Service errors
var (
	// Data errors
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrUnknownCity      = errors.New("unknown city requested")

	// Analysis errors
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
