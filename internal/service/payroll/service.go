package payroll

import (
	"context"
	"fmt"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/employee"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/ledger"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/payroll"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	scheduleRepo   schedule.WorkScheduleRepository
	attendanceRepo attendance.AttendanceRepository
	entryRepo      ledger.EntryRepository
	debtRepo       ledger.DebtRepository
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.WorkScheduleRepository,
	attendanceRepo attendance.AttendanceRepository,
	entryRepo ledger.EntryRepository,
	debtRepo ledger.DebtRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		scheduleRepo:   scheduleRepo,
		attendanceRepo: attendanceRepo,
		entryRepo:      entryRepo,
		debtRepo:       debtRepo,
	}
}

// EmployeeSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) EmployeeSummary(ctx context.Context, employeeID string, month string) (payroll.MonthlySummary, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.MonthlySummary{}, err
	}

	return s.summarize(ctx, emp, month, true)
}

// StaffSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) StaffSummary(ctx context.Context, month string) ([]payroll.MonthlySummary, error) {
	employees, err := s.employeeRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	summaries := make([]payroll.MonthlySummary, 0, len(employees))
	for _, emp := range employees {
		summary, err := s.summarize(ctx, emp, month, false)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// summarize recomputes the whole month from schedules, attendance and
// ledgers. Nothing here is stored; net pay is reported as-is even when
// negative.
func (s *PayrollServiceImpl) summarize(ctx context.Context, emp employee.Employee, month string, withDays bool) (payroll.MonthlySummary, error) {
	start, end, err := payroll.MonthBounds(month)
	if err != nil {
		return payroll.MonthlySummary{}, payroll.ErrInvalidMonth
	}

	schedules, err := database.Read(ctx, func(ctx context.Context) ([]schedule.WorkSchedule, error) {
		return s.scheduleRepo.ListByEmployeeRange(ctx, emp.ID, start, end)
	})
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("failed to list schedules: %w", err)
	}

	records, err := database.Read(ctx, func(ctx context.Context) ([]attendance.Attendance, error) {
		return s.attendanceRepo.ListByEmployeeRange(ctx, emp.ID, start, end)
	})
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	byDate := make(map[string]attendance.Attendance, len(records))
	for _, rec := range records {
		byDate[rec.Date.Format("2006-01-02")] = rec
	}

	summary := payroll.MonthlySummary{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Month:        month,
		SalaryType:   emp.SalaryType,
	}

	for _, sched := range schedules {
		scheduledHours, err := sched.ScheduledHours()
		if err != nil {
			return payroll.MonthlySummary{}, fmt.Errorf("invalid shift time: %w", err)
		}

		day := payroll.DaySummary{
			Date:           sched.WorkDate.Format("2006-01-02"),
			ScheduledHours: scheduledHours,
			Status:         attendance.StatusAbsent,
		}

		// Only a completed check-in earns hours.
		if rec, ok := byDate[day.Date]; ok && rec.CheckedIn() {
			day.Status = rec.Status
			day.LateMinutes = rec.LateMinutes
			day.DeductedHours = payroll.HourDeduction(rec.LateMinutes, scheduledHours)
			day.PayableHours = payroll.PayableHours(scheduledHours, rec.LateMinutes)
		}

		summary.TotalScheduledHours += scheduledHours
		summary.TotalPayableHours += day.PayableHours

		if withDays {
			summary.Days = append(summary.Days, day)
		}
	}

	if emp.SalaryType == employee.SalaryTypeFixed {
		summary.GrossSalary = emp.FixedSalary
	} else {
		summary.GrossSalary = emp.HourlyRate.Mul(decimal.NewFromFloat(summary.TotalPayableHours))
	}

	sumKind := func(kind ledger.Kind) (decimal.Decimal, error) {
		return database.Read(ctx, func(ctx context.Context) (decimal.Decimal, error) {
			return s.entryRepo.SumByKind(ctx, emp.ID, kind, start, end)
		})
	}

	summary.TotalBonuses, err = sumKind(ledger.KindBonus)
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("failed to sum bonuses: %w", err)
	}
	summary.TotalAdvances, err = sumKind(ledger.KindAdvance)
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("failed to sum advances: %w", err)
	}
	summary.TotalPenalties, err = sumKind(ledger.KindPenalty)
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("failed to sum penalties: %w", err)
	}
	summary.OutstandingDebt, err = database.Read(ctx, func(ctx context.Context) (decimal.Decimal, error) {
		return s.debtRepo.SumUnpaid(ctx, emp.ID)
	})
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("failed to sum debts: %w", err)
	}

	summary.NetPay = summary.GrossSalary.
		Add(summary.TotalBonuses).
		Sub(summary.TotalAdvances).
		Sub(summary.OutstandingDebt).
		Sub(summary.TotalPenalties)

	return summary, nil
}
