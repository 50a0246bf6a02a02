package office

import "errors"

var (
	// ErrNotConfigured means no office location row exists. Classification
	// fails closed rather than defaulting to "always valid".
	ErrNotConfigured = errors.New("office location is not configured")
)
