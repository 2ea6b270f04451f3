package attendance

import "errors"

// Attendance domain errors
var (
	ErrDuplicateCheckIn   = errors.New("already checked in for this date")
	ErrNotCheckedIn       = errors.New("not checked in yet")
	ErrAlreadyCheckedOut  = errors.New("already checked out for this date")
	ErrNoScheduledShift   = errors.New("no scheduled shift for this date")
	ErrCheckoutTooEarly   = errors.New("checkout before shift start is not allowed")
	ErrCheckoutTooLate    = errors.New("checkout window has closed")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
