package attendance

import (
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/validator"
)

// SubmitRequest is what the kiosk sends after scanning a token.
// The wifi and IP fields are audit-only and stored as received.
type SubmitRequest struct {
	Token     string  `json:"token"`
	PIN       string  `json:"pin"`
	WifiSSID  *string `json:"wifi_ssid,omitempty"`
	WifiBSSID *string `json:"wifi_bssid,omitempty"`
	IPAddress *string `json:"-"`
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{Field: "token", Message: "token is required"})
	}
	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{Field: "pin", Message: "pin must be exactly 4 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
)

type SubmitResponse struct {
	Action       Action    `json:"action"`
	EmployeeName string    `json:"employee_name"`
	Timestamp    time.Time `json:"timestamp"`
	Status       Status    `json:"status"`
	LateMinutes  int       `json:"late_minutes,omitempty"`
	EarlyMinutes int       `json:"early_minutes,omitempty"`
}

// ManualUpsertRequest lets an admin fix or backfill a record. Timestamps
// are RFC3339; either one may be set on its own, clearing both removes
// the record entirely.
type ManualUpsertRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r ManualUpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee id"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.CheckInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "must be an RFC3339 timestamp"})
		}
	}
	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "must be an RFC3339 timestamp"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	EmployeeID *string
	StartDate  time.Time
	EndDate    time.Time
	Page       int
	Limit      int
}

type AttendanceResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	Date            string     `json:"date"`
	CheckInTime     *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime    *time.Time `json:"check_out_time,omitempty"`
	Status          Status     `json:"status"`
	IsLate          bool       `json:"is_late"`
	IsEarlyCheckout bool       `json:"is_early_checkout"`
	LateMinutes     int        `json:"late_minutes"`
	EarlyMinutes    int        `json:"early_minutes"`
	Notes           *string    `json:"notes,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		Date:            a.Date.Format("2006-01-02"),
		CheckInTime:     a.CheckInTime,
		CheckOutTime:    a.CheckOutTime,
		Status:          a.Status,
		IsLate:          a.IsLate,
		IsEarlyCheckout: a.IsEarlyCheckout,
		LateMinutes:     a.LateMinutes,
		EarlyMinutes:    a.EarlyMinutes,
		Notes:           a.Notes,
	}
}
