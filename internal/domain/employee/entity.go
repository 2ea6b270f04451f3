package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalaryType string

const (
	SalaryTypeFixed  SalaryType = "fixed"
	SalaryTypeHourly SalaryType = "hourly"
)

type Employee struct {
	ID             string
	Username       string
	FullName       string
	HashedPassword *string
	// PIN is the 4-digit kiosk code, unique among active employees.
	// Admin-only accounts may have no PIN.
	PIN          *string
	IsAdmin      bool
	SalaryType   SalaryType
	FixedSalary  decimal.Decimal
	HourlyRate   decimal.Decimal
	IsActive     bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
