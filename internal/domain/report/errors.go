package report

import "errors"

var (
	// ErrInvalidScope is returned for an unknown scope kind or a scope that
	// needs an ID and has none.
	ErrInvalidScope = errors.New("invalid scope")
	// ErrInvalidRange is returned when a date cannot be parsed.
	ErrInvalidRange = errors.New("invalid date range")
)
