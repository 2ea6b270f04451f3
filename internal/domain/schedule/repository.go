package schedule

import (
	"context"
	"time"
)

type WorkScheduleRepository interface {
	// Upsert creates or replaces the schedule for (employee, work_date).
	Upsert(ctx context.Context, sched WorkSchedule) (WorkSchedule, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*WorkSchedule, error)

	// ListRange returns all active schedules with work_date in [start, end].
	ListRange(ctx context.Context, start, end time.Time) ([]WorkSchedule, error)

	// ListByEmployeeRange returns one employee's active schedules in [start, end].
	ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]WorkSchedule, error)

	Delete(ctx context.Context, id string) error
}
