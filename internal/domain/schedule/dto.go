package schedule

import (
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/validator"
)

type UpsertScheduleRequest struct {
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

func (r UpsertScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee id"})
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be YYYY-MM-DD"})
	}
	if _, err := ParseClock(r.StartTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
	}
	if _, err := ParseClock(r.EndTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CopyWeekRequest copies one week of schedules onto another week,
// preserving weekday offsets. Both dates must be Mondays.
type CopyWeekRequest struct {
	SourceWeekStart string `json:"source_week_start"`
	TargetWeekStart string `json:"target_week_start"`
}

func (r CopyWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	src, ok := validator.IsValidDate(r.SourceWeekStart)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "source_week_start", Message: "must be YYYY-MM-DD"})
	} else if src.Weekday() != time.Monday {
		errs = append(errs, validator.ValidationError{Field: "source_week_start", Message: "must be a Monday"})
	}
	dst, ok := validator.IsValidDate(r.TargetWeekStart)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "target_week_start", Message: "must be YYYY-MM-DD"})
	} else if dst.Weekday() != time.Monday {
		errs = append(errs, validator.ValidationError{Field: "target_week_start", Message: "must be a Monday"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Overnight  bool   `json:"overnight"`
}

func ToResponse(s WorkSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		WorkDate:   s.WorkDate.Format("2006-01-02"),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Overnight:  s.IsOvernight(),
	}
}
