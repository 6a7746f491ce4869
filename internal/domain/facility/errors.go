package facility

import "errors"

var (
	// ErrPhaseNotFound indicates the phase doesn't exist.
	ErrPhaseNotFound = errors.New("phase not found")
	// ErrCategoryNotFound indicates the category doesn't exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidInput indicates invalid facility input.
	ErrInvalidInput = errors.New("invalid facility input")
)

// ErrAlreadySeeded indicates a seed was attempted on a non-empty facility.
var ErrAlreadySeeded = errors.New("facility already has phases or categories")
