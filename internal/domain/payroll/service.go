package payroll

import (
	"context"
	"time"
)

// PayrollService is the read-side aggregator. It never writes.
type PayrollService interface {
	// EmployeeSummary computes one employee's payroll for a "YYYY-MM" month,
	// including the per-day breakdown.
	EmployeeSummary(ctx context.Context, employeeID string, month string) (MonthlySummary, error)

	// StaffSummary computes every active employee's payroll for a month,
	// without per-day breakdowns.
	StaffSummary(ctx context.Context, month string) ([]MonthlySummary, error)
}

// PenaltyGenerator scans a date range and inserts the auto penalties that
// are not already on the ledger. Each run is idempotent; item failures are
// collected, never retried.
type PenaltyGenerator interface {
	Generate(ctx context.Context, start, end time.Time) (GenerateResult, error)
}
