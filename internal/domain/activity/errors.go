package activity

import "errors"

// ErrInvalidInput indicates an activity entry could not be recorded as given.
var ErrInvalidInput = errors.New("invalid activity input")
