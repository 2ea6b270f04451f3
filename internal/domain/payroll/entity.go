package payroll

import (
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// DaySummary is one scheduled day in an employee's month.
type DaySummary struct {
	Date           string            `json:"date"`
	ScheduledHours float64           `json:"scheduled_hours"`
	PayableHours   float64           `json:"payable_hours"`
	DeductedHours  float64           `json:"deducted_hours"`
	Status         attendance.Status `json:"status"`
	LateMinutes    int               `json:"late_minutes"`
}

// MonthlySummary is the derived payroll view for one employee and month.
// It is recomputed on every read and never stored. NetPay may be negative.
type MonthlySummary struct {
	EmployeeID          string              `json:"employee_id"`
	EmployeeName        string              `json:"employee_name"`
	Month               string              `json:"month"`
	SalaryType          employee.SalaryType `json:"salary_type"`
	TotalScheduledHours float64             `json:"total_scheduled_hours"`
	TotalPayableHours   float64             `json:"total_payable_hours"`
	GrossSalary         decimal.Decimal     `json:"gross_salary"`
	TotalBonuses        decimal.Decimal     `json:"total_bonuses"`
	TotalAdvances       decimal.Decimal     `json:"total_advances"`
	TotalPenalties      decimal.Decimal     `json:"total_penalties"`
	OutstandingDebt     decimal.Decimal     `json:"outstanding_debt"`
	NetPay              decimal.Decimal     `json:"net_pay"`
	Days                []DaySummary        `json:"days,omitempty"`
}

// FailedItem records one penalty candidate the generator could not write.
type FailedItem struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
}

// GenerateResult reports one auto-generation run. Duplicates are skipped
// silently and count in neither field.
type GenerateResult struct {
	CreatedCount int          `json:"created_count"`
	Failed       []FailedItem `json:"failed"`
}

// MonthBounds returns the first and last day of a "YYYY-MM" month.
func MonthBounds(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}
