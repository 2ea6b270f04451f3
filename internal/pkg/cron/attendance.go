package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/accesstoken"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/settings"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	attendanceSvc  attendance.AttendanceService
	scheduleRepo   schedule.WorkScheduleRepository
	settingsSvc    settings.SettingsService
	tokenSvc       accesstoken.TokenService
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	attendanceSvc attendance.AttendanceService,
	scheduleRepo schedule.WorkScheduleRepository,
	settingsSvc settings.SettingsService,
	tokenSvc accesstoken.TokenService,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		attendanceSvc:  attendanceSvc,
		scheduleRepo:   scheduleRepo,
		settingsSvc:    settingsSvc,
		tokenSvc:       tokenSvc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("mark_absent_employees", 0, j.MarkAbsentEmployees)
	scheduler.AddJob("cleanup_expired_tokens", 1*time.Hour, j.CleanupExpiredTokens)
}

// MarkAbsentEmployees records an absence for every scheduled shift from
// yesterday that has no attendance record. Registered as a daily job at
// midnight, once the day being judged is over.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	cfg, err := j.settingsSvc.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !cfg.AutoAbsentEnabled {
		return nil
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location())

	schedules, err := j.scheduleRepo.ListRange(ctx, day, day)
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}

	records, err := j.attendanceRepo.ListRange(ctx, day, day)
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}
	attended := make(map[string]struct{}, len(records))
	for _, rec := range records {
		attended[rec.EmployeeID] = struct{}{}
	}

	marked := 0
	for _, sched := range schedules {
		if _, ok := attended[sched.EmployeeID]; ok {
			continue
		}

		if err := j.attendanceSvc.MarkAbsent(ctx, sched.EmployeeID, sched.WorkDate, sched.ID); err != nil {
			slog.Error("failed to mark absent",
				"employee_id", sched.EmployeeID,
				"date", sched.WorkDate.Format("2006-01-02"),
				"error", err)
			continue
		}
		marked++
	}

	if marked > 0 {
		slog.Info("marked unattended shifts absent", "date", day.Format("2006-01-02"), "count", marked)
	}
	return nil
}

// CleanupExpiredTokens purges long-expired access tokens.
func (j *AttendanceJobs) CleanupExpiredTokens(ctx context.Context) error {
	deleted, err := j.tokenSvc.CleanupExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("cleaned up expired tokens", "count", deleted)
	}
	return nil
}
