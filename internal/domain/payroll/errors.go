package payroll

import "errors"

// Payroll domain errors
var (
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")
)
