package report

import "errors"

var (
	ErrInvalidDateRange = errors.New("end date must not precede start date")
	ErrInvalidAudience  = errors.New("unknown report audience")
)
