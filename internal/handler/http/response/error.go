package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/accesstoken"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/auth"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/employee"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/ledger"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/payroll"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/settings"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, employee.ErrPINTaken):
		Conflict(w, "PIN already assigned to an active employee")
	case errors.Is(err, employee.ErrInvalidPIN):
		BadRequest(w, "Invalid PIN", nil)

	// Access token errors
	case errors.Is(err, accesstoken.ErrTokenNotFound):
		NotFound(w, "Token not found")
	case errors.Is(err, accesstoken.ErrTokenExpired):
		Gone(w, "Token expired")
	case errors.Is(err, accesstoken.ErrTokenAlreadyConsumed):
		Conflict(w, "Token already used")
	case errors.Is(err, accesstoken.ErrInvalidPurpose):
		BadRequest(w, "Token cannot be used for this action", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDuplicateCheckIn):
		Conflict(w, "Already checked in for this date")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in yet", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for this date")
	case errors.Is(err, attendance.ErrNoScheduledShift):
		BadRequest(w, "No scheduled shift for this date", nil)
	case errors.Is(err, attendance.ErrCheckoutTooEarly):
		BadRequest(w, "Checkout before shift start is not allowed", nil)
	case errors.Is(err, attendance.ErrCheckoutTooLate):
		BadRequest(w, "Checkout window has closed", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrInvalidShiftTime):
		BadRequest(w, "Invalid shift time", nil)

	// Settings domain errors
	case errors.Is(err, settings.ErrInvalidPenaltyTiers):
		ValidationError(w, map[string]string{"penalty_tiers": err.Error()})
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Attendance settings not found")

	// Ledger domain errors
	case errors.Is(err, ledger.ErrEntryNotFound):
		NotFound(w, "Ledger entry not found")
	case errors.Is(err, ledger.ErrDebtNotFound):
		NotFound(w, "Debt not found")
	case errors.Is(err, ledger.ErrInvalidKind):
		BadRequest(w, "Invalid ledger entry kind", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Invalid month, expected YYYY-MM", nil)

	// Upstream timeouts
	case errors.Is(err, context.DeadlineExceeded):
		ServiceUnavailable(w, "The request timed out, please retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
