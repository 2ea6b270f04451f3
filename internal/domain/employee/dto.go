package employee

import (
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Username     string  `json:"username"`
	FullName     string  `json:"full_name"`
	Password     *string `json:"password,omitempty"`
	PIN          *string `json:"pin,omitempty"`
	IsAdmin      bool    `json:"is_admin"`
	SalaryType   string  `json:"salary_type"`
	FixedSalary  string  `json:"fixed_salary"`
	HourlyRate   string  `json:"hourly_rate"`
	DisplayOrder int     `json:"display_order"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full name is required"})
	}
	if r.SalaryType != string(SalaryTypeFixed) && r.SalaryType != string(SalaryTypeHourly) {
		errs = append(errs, validator.ValidationError{Field: "salary_type", Message: "must be 'fixed' or 'hourly'"})
	}
	if r.PIN != nil && !validator.IsValidPIN(*r.PIN) {
		errs = append(errs, validator.ValidationError{Field: "pin", Message: "pin must be exactly 4 digits"})
	}
	if r.IsAdmin && (r.Password == nil || validator.IsEmpty(*r.Password)) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required for admin accounts"})
	}
	if !r.IsAdmin && r.PIN == nil {
		errs = append(errs, validator.ValidationError{Field: "pin", Message: "pin is required for non-admin employees"})
	}
	if _, err := decimal.NewFromString(orZero(r.FixedSalary)); err != nil {
		errs = append(errs, validator.ValidationError{Field: "fixed_salary", Message: "must be a valid number"})
	}
	if _, err := decimal.NewFromString(orZero(r.HourlyRate)); err != nil {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be a valid number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"`
	FullName     *string `json:"full_name,omitempty"`
	Password     *string `json:"password,omitempty"`
	PIN          *string `json:"pin,omitempty"`
	SalaryType   *string `json:"salary_type,omitempty"`
	FixedSalary  *string `json:"fixed_salary,omitempty"`
	HourlyRate   *string `json:"hourly_rate,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "invalid employee id"})
	}
	if r.PIN != nil && !validator.IsValidPIN(*r.PIN) {
		errs = append(errs, validator.ValidationError{Field: "pin", Message: "pin must be exactly 4 digits"})
	}
	if r.SalaryType != nil && *r.SalaryType != string(SalaryTypeFixed) && *r.SalaryType != string(SalaryTypeHourly) {
		errs = append(errs, validator.ValidationError{Field: "salary_type", Message: "must be 'fixed' or 'hourly'"})
	}
	if r.FixedSalary != nil {
		if _, err := decimal.NewFromString(*r.FixedSalary); err != nil {
			errs = append(errs, validator.ValidationError{Field: "fixed_salary", Message: "must be a valid number"})
		}
	}
	if r.HourlyRate != nil {
		if _, err := decimal.NewFromString(*r.HourlyRate); err != nil {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be a valid number"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	FullName     string          `json:"full_name"`
	PIN          *string         `json:"pin,omitempty"`
	IsAdmin      bool            `json:"is_admin"`
	SalaryType   SalaryType      `json:"salary_type"`
	FixedSalary  decimal.Decimal `json:"fixed_salary"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	IsActive     bool            `json:"is_active"`
	DisplayOrder int             `json:"display_order"`
	CreatedAt    time.Time       `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Username:     e.Username,
		FullName:     e.FullName,
		PIN:          e.PIN,
		IsAdmin:      e.IsAdmin,
		SalaryType:   e.SalaryType,
		FixedSalary:  e.FixedSalary,
		HourlyRate:   e.HourlyRate,
		IsActive:     e.IsActive,
		DisplayOrder: e.DisplayOrder,
		CreatedAt:    e.CreatedAt,
	}
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
