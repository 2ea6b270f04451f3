package settings

import (
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateSettingsRequest struct {
	AllowedLateMinutes        int             `json:"allowed_late_minutes"`
	Tiers                     PenaltyTiers    `json:"penalty_tiers"`
	EarlyCheckoutGraceMinutes int             `json:"early_checkout_grace_minutes"`
	EarlyCheckoutPenalty      decimal.Decimal `json:"early_checkout_penalty"`
	AbsentPenalty             decimal.Decimal `json:"absent_penalty"`
	AutoAbsentEnabled         bool            `json:"auto_absent_enabled"`
	Notes                     *string         `json:"notes,omitempty"`
}

func (r UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AllowedLateMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "allowed_late_minutes", Message: "must not be negative"})
	}
	if r.EarlyCheckoutGraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "early_checkout_grace_minutes", Message: "must not be negative"})
	}
	if r.EarlyCheckoutPenalty.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "early_checkout_penalty", Message: "must not be negative"})
	}
	if r.AbsentPenalty.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "absent_penalty", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}

	// Tier ladder violations map to their own sentinel, not a field error.
	return r.Tiers.Validate()
}

type SettingsResponse struct {
	AllowedLateMinutes        int             `json:"allowed_late_minutes"`
	Tiers                     PenaltyTiers    `json:"penalty_tiers"`
	EarlyCheckoutGraceMinutes int             `json:"early_checkout_grace_minutes"`
	EarlyCheckoutPenalty      decimal.Decimal `json:"early_checkout_penalty"`
	AbsentPenalty             decimal.Decimal `json:"absent_penalty"`
	AutoAbsentEnabled         bool            `json:"auto_absent_enabled"`
	Notes                     *string         `json:"notes,omitempty"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

func ToResponse(s AttendanceSettings) SettingsResponse {
	return SettingsResponse{
		AllowedLateMinutes:        s.AllowedLateMinutes,
		Tiers:                     s.Tiers,
		EarlyCheckoutGraceMinutes: s.EarlyCheckoutGraceMinutes,
		EarlyCheckoutPenalty:      s.EarlyCheckoutPenalty,
		AbsentPenalty:             s.AbsentPenalty,
		AutoAbsentEnabled:         s.AutoAbsentEnabled,
		Notes:                     s.Notes,
		UpdatedAt:                 s.UpdatedAt,
	}
}
