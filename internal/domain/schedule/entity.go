package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WorkSchedule is one employee's shift for one calendar date.
// Times are stored as "HH:MM" wall-clock strings; an EndTime at or before
// StartTime means the shift runs past midnight into the next day.
type WorkSchedule struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time
	StartTime  string
	EndTime    string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(v string) (int, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", v)
	}
	return h*60 + m, nil
}

// IsOvernight reports whether the shift crosses midnight.
func (s WorkSchedule) IsOvernight() bool {
	start, err1 := ParseClock(s.StartTime)
	end, err2 := ParseClock(s.EndTime)
	if err1 != nil || err2 != nil {
		return false
	}
	return end <= start
}

// ShiftBounds returns the absolute start and end of the shift, anchored
// on WorkDate. Overnight shifts get their end pushed to the next day.
func (s WorkSchedule) ShiftBounds() (time.Time, time.Time, error) {
	startMin, err := ParseClock(s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := ParseClock(s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	d := s.WorkDate
	start := time.Date(d.Year(), d.Month(), d.Day(), startMin/60, startMin%60, 0, 0, d.Location())
	end := time.Date(d.Year(), d.Month(), d.Day(), endMin/60, endMin%60, 0, 0, d.Location())
	if endMin <= startMin {
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

// ScheduledHours returns the shift length in hours.
func (s WorkSchedule) ScheduledHours() (float64, error) {
	start, end, err := s.ShiftBounds()
	if err != nil {
		return 0, err
	}
	return end.Sub(start).Hours(), nil
}
