package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/database"
)

type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepository{db: db}
}

const scheduleColumns = `
	id, employee_id, work_date, start_time, end_time, is_active,
	created_at, updated_at`

func scanSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var s schedule.WorkSchedule
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.WorkDate, &s.StartTime, &s.EndTime, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Upsert implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) Upsert(ctx context.Context, sched schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	if sched.ID == "" {
		sched.ID = uuid.NewString()
	}

	query := `
		INSERT INTO work_schedules (id, employee_id, work_date, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sched.ID,
		sched.EmployeeID,
		sched.WorkDate,
		sched.StartTime,
		sched.EndTime,
		sched.IsActive,
	).Scan(&sched.ID, &sched.CreatedAt, &sched.UpdatedAt)

	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to upsert work schedule: %w", err)
	}

	return sched, nil
}

// GetByEmployeeAndDate implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + scheduleColumns + `
		FROM work_schedules
		WHERE employee_id = $1 AND work_date = $2 AND is_active = true
	`

	s, err := scanSchedule(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work schedule: %w", err)
	}

	return &s, nil
}

// ListRange implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) ListRange(ctx context.Context, start, end time.Time) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + scheduleColumns + `
		FROM work_schedules
		WHERE work_date BETWEEN $1 AND $2 AND is_active = true
		ORDER BY work_date, employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	return collectSchedules(rows)
}

// ListByEmployeeRange implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + scheduleColumns + `
		FROM work_schedules
		WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3 AND is_active = true
		ORDER BY work_date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee schedules: %w", err)
	}
	defer rows.Close()

	return collectSchedules(rows)
}

// Delete implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

func collectSchedules(rows pgx.Rows) ([]schedule.WorkSchedule, error) {
	var schedules []schedule.WorkSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}
