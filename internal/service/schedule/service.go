package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
)

type WorkScheduleServiceImpl struct {
	scheduleRepo schedule.WorkScheduleRepository
}

func NewWorkScheduleService(scheduleRepo schedule.WorkScheduleRepository) schedule.WorkScheduleService {
	return &WorkScheduleServiceImpl{scheduleRepo: scheduleRepo}
}

// Upsert implements schedule.WorkScheduleService.
func (s *WorkScheduleServiceImpl) Upsert(ctx context.Context, req schedule.UpsertScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)

	sched, err := s.scheduleRepo.Upsert(ctx, schedule.WorkSchedule{
		EmployeeID: req.EmployeeID,
		WorkDate:   workDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsActive:   true,
	})
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	return schedule.ToResponse(sched), nil
}

// ListWeek implements schedule.WorkScheduleService.
func (s *WorkScheduleServiceImpl) ListWeek(ctx context.Context, weekStart string) ([]schedule.ScheduleResponse, error) {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return nil, fmt.Errorf("invalid week start: %w", err)
	}
	end := start.AddDate(0, 0, 6)

	schedules, err := s.scheduleRepo.ListRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		responses = append(responses, schedule.ToResponse(sched))
	}

	return responses, nil
}

// CopyWeek implements schedule.WorkScheduleService.
func (s *WorkScheduleServiceImpl) CopyWeek(ctx context.Context, req schedule.CopyWeekRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	src, _ := time.Parse("2006-01-02", req.SourceWeekStart)
	dst, _ := time.Parse("2006-01-02", req.TargetWeekStart)

	schedules, err := s.scheduleRepo.ListRange(ctx, src, src.AddDate(0, 0, 6))
	if err != nil {
		return 0, fmt.Errorf("failed to list source week: %w", err)
	}

	copied := 0
	for _, sched := range schedules {
		offset := int(sched.WorkDate.Sub(src).Hours() / 24)
		_, err := s.scheduleRepo.Upsert(ctx, schedule.WorkSchedule{
			EmployeeID: sched.EmployeeID,
			WorkDate:   dst.AddDate(0, 0, offset),
			StartTime:  sched.StartTime,
			EndTime:    sched.EndTime,
			IsActive:   true,
		})
		if err != nil {
			return copied, fmt.Errorf("failed to copy schedule: %w", err)
		}
		copied++
	}

	return copied, nil
}

// Delete implements schedule.WorkScheduleService.
func (s *WorkScheduleServiceImpl) Delete(ctx context.Context, id string) error {
	return s.scheduleRepo.Delete(ctx, id)
}
