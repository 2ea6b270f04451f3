package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUsernameExists   = errors.New("username already taken")
	ErrInvalidPIN       = errors.New("invalid pin")
	ErrPINTaken         = errors.New("pin already assigned to an active employee")
)
