package logbook

import "errors"

var (
	// ErrRunTimeRequired indicates the task must be logged with a run time.
	ErrRunTimeRequired = errors.New("run time required for this task")
	// ErrInvalidInput indicates invalid logbook input.
	ErrInvalidInput = errors.New("invalid entry input")
)
