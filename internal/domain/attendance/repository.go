package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	Update(ctx context.Context, att Attendance) error

	Delete(ctx context.Context, id string) error

	// GetByEmployeeAndDate returns nil when no record exists for the date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// List returns records matching the filter plus the unpaged total.
	List(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)

	// ListRange returns all records with date in [start, end].
	ListRange(ctx context.Context, start, end time.Time) ([]Attendance, error)

	// ListByEmployeeRange returns one employee's records with date in
	// [start, end].
	ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}
