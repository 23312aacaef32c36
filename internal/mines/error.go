package mines

import "errors"

var ErrInvalidParams = errors.New("invalid minefield parameters")

// AssertionError is raised with panic when an internal invariant is broken.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
