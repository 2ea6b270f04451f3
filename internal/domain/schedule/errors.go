package schedule

import "errors"

// Schedule domain errors
var (
	ErrScheduleNotFound = errors.New("work schedule not found")
	ErrInvalidShiftTime = errors.New("invalid shift time")
)
