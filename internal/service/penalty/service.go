package penalty

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/ledger"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/payroll"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/settings"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type PenaltyGeneratorImpl struct {
	scheduleRepo   schedule.WorkScheduleRepository
	attendanceRepo attendance.AttendanceRepository
	entryRepo      ledger.EntryRepository
	settingsSvc    settings.SettingsService

	now func() time.Time
}

func NewPenaltyGenerator(
	scheduleRepo schedule.WorkScheduleRepository,
	attendanceRepo attendance.AttendanceRepository,
	entryRepo ledger.EntryRepository,
	settingsSvc settings.SettingsService,
) payroll.PenaltyGenerator {
	return &PenaltyGeneratorImpl{
		scheduleRepo:   scheduleRepo,
		attendanceRepo: attendanceRepo,
		entryRepo:      entryRepo,
		settingsSvc:    settingsSvc,
		now:            time.Now,
	}
}

// candidate is one penalty the generator wants on the ledger.
type candidate struct {
	employeeID string
	date       time.Time
	reason     ledger.AutoReason
	amount     decimal.Decimal
	note       string
}

// Generate implements payroll.PenaltyGenerator. Every scheduled day in
// [start, end] is examined against its attendance record; a day carries
// at most one penalty, and re-running over the same range creates
// nothing new. Failures on individual inserts are collected and
// reported, never retried.
func (s *PenaltyGeneratorImpl) Generate(ctx context.Context, start, end time.Time) (payroll.GenerateResult, error) {
	cfg, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to load settings: %w", err)
	}

	schedules, err := database.Read(ctx, func(ctx context.Context) ([]schedule.WorkSchedule, error) {
		return s.scheduleRepo.ListRange(ctx, start, end)
	})
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to list schedules: %w", err)
	}

	records, err := database.Read(ctx, func(ctx context.Context) ([]attendance.Attendance, error) {
		return s.attendanceRepo.ListRange(ctx, start, end)
	})
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	byDay := make(map[string]attendance.Attendance, len(records))
	for _, rec := range records {
		byDay[dayKey(rec.EmployeeID, rec.Date)] = rec
	}

	today := dateOf(s.now())
	result := payroll.GenerateResult{Failed: []payroll.FailedItem{}}

	for _, sched := range schedules {
		var rec *attendance.Attendance
		if r, ok := byDay[dayKey(sched.EmployeeID, sched.WorkDate)]; ok {
			rec = &r
		}

		for _, cand := range s.candidates(cfg, sched, rec, today) {
			reason := cand.reason
			entry := ledger.Entry{
				Kind:          ledger.KindPenalty,
				EmployeeID:    cand.employeeID,
				Date:          cand.date,
				Amount:        cand.amount,
				Notes:         &cand.note,
				AutoGenerated: true,
				AutoReason:    &reason,
			}

			created, err := s.entryRepo.CreateAutoIfAbsent(ctx, entry)
			if err != nil {
				slog.Error("failed to create auto penalty",
					"employee_id", cand.employeeID,
					"date", entry.Date.Format("2006-01-02"),
					"reason", reason,
					"error", err)
				result.Failed = append(result.Failed, payroll.FailedItem{
					EmployeeID: cand.employeeID,
					Date:       entry.Date.Format("2006-01-02"),
					Reason:     err.Error(),
				})
				continue
			}
			if created {
				result.CreatedCount++
			}
		}
	}

	return result, nil
}

// candidates derives the penalty one scheduled day should carry. A day
// is fined for a single reason; a late arrival outranks an early
// departure, mirroring the display status precedence.
func (s *PenaltyGeneratorImpl) candidates(cfg settings.AttendanceSettings, sched schedule.WorkSchedule, rec *attendance.Attendance, today time.Time) []candidate {
	var out []candidate

	if rec == nil || !rec.CheckedIn() {
		// Absence is only final once the day is over.
		if sched.WorkDate.Before(today) && cfg.AbsentPenalty.IsPositive() {
			out = append(out, candidate{
				employeeID: sched.EmployeeID,
				date:       sched.WorkDate,
				reason:     ledger.ReasonAbsent,
				amount:     cfg.AbsentPenalty,
				note:       "Auto: absent",
			})
		}
		return out
	}

	switch {
	case rec.IsLate:
		amount := cfg.Tiers.AmountFor(rec.LateMinutes, cfg.AllowedLateMinutes)
		if amount.IsPositive() {
			out = append(out, candidate{
				employeeID: sched.EmployeeID,
				date:       sched.WorkDate,
				reason:     ledger.ReasonLate,
				amount:     amount,
				note:       fmt.Sprintf("Auto: late %d minutes", rec.LateMinutes),
			})
		}
	case rec.IsEarlyCheckout:
		if cfg.EarlyCheckoutPenalty.IsPositive() {
			out = append(out, candidate{
				employeeID: sched.EmployeeID,
				date:       sched.WorkDate,
				reason:     ledger.ReasonEarlyCheckout,
				amount:     cfg.EarlyCheckoutPenalty,
				note:       fmt.Sprintf("Auto: left %d minutes early", rec.EarlyMinutes),
			})
		}
	}

	return out
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
