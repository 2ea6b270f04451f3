package schedule

import "context"

// WorkScheduleService defines business logic for shift planning
type WorkScheduleService interface {
	Upsert(ctx context.Context, req UpsertScheduleRequest) (ScheduleResponse, error)

	// ListWeek returns all schedules for the week starting at weekStart (a Monday).
	ListWeek(ctx context.Context, weekStart string) ([]ScheduleResponse, error)

	// CopyWeek duplicates a week of schedules onto another week.
	// Returns the number of schedules written.
	CopyWeek(ctx context.Context, req CopyWeekRequest) (int, error)

	Delete(ctx context.Context, id string) error
}
