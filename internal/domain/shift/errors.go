package shift

import "errors"

var (
	// ErrNotConfigured means no shift policy exists; classification fails closed.
	ErrNotConfigured = errors.New("shift policy is not configured")
)
