package board

import "errors"

var (
	// ErrStoreUnavailable is returned when the snapshot cannot be read.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrTabNotFound is returned when a tab name matches no phase.
	ErrTabNotFound = errors.New("tab not found")
)
