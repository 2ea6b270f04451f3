package attendance

import "time"

type Status string

const (
	StatusPresent       Status = "present"
	StatusLate          Status = "late"
	StatusEarlyCheckout Status = "early_checkout"
	StatusAbsent        Status = "absent"
)

// Attendance is one employee's record for one work date. Late and early
// checkout are tracked as independent flags; Status is the display
// precedence late > early_checkout > present.
type Attendance struct {
	ID              string
	EmployeeID      string
	WorkScheduleID  *string
	Date            time.Time
	CheckInTime     *time.Time
	CheckOutTime    *time.Time
	CheckInToken    *string
	CheckOutToken   *string
	WifiSSID        *string
	WifiBSSID       *string
	IPAddress       *string
	Status          Status
	IsLate          bool
	IsEarlyCheckout bool
	LateMinutes     int
	EarlyMinutes    int
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Attendance) CheckedIn() bool {
	return a.CheckInTime != nil
}

func (a Attendance) Open() bool {
	return a.CheckInTime != nil && a.CheckOutTime == nil
}

// DisplayStatus resolves the status flags into the single reported status.
func DisplayStatus(isLate, isEarlyCheckout bool) Status {
	switch {
	case isLate:
		return StatusLate
	case isEarlyCheckout:
		return StatusEarlyCheckout
	default:
		return StatusPresent
	}
}
