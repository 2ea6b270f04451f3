package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, work_schedule_id, date, check_in_time, check_out_time,
	check_in_token, check_out_token, wifi_ssid, wifi_bssid, ip_address,
	status, is_late, is_early_checkout, late_minutes, early_minutes, notes,
	created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.WorkScheduleID, &a.Date, &a.CheckInTime, &a.CheckOutTime,
		&a.CheckInToken, &a.CheckOutToken, &a.WifiSSID, &a.WifiBSSID, &a.IPAddress,
		&a.Status, &a.IsLate, &a.IsEarlyCheckout, &a.LateMinutes, &a.EarlyMinutes, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if att.ID == "" {
		att.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, work_schedule_id, date, check_in_time, check_out_time,
			check_in_token, check_out_token, wifi_ssid, wifi_bssid, ip_address,
			status, is_late, is_early_checkout, late_minutes, early_minutes, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		att.WorkScheduleID,
		att.Date,
		att.CheckInTime,
		att.CheckOutTime,
		att.CheckInToken,
		att.CheckOutToken,
		att.WifiSSID,
		att.WifiBSSID,
		att.IPAddress,
		att.Status,
		att.IsLate,
		att.IsEarlyCheckout,
		att.LateMinutes,
		att.EarlyMinutes,
		att.Notes,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			check_in_time = $2,
			check_out_time = $3,
			check_in_token = $4,
			check_out_token = $5,
			status = $6,
			is_late = $7,
			is_early_checkout = $8,
			late_minutes = $9,
			early_minutes = $10,
			notes = $11,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.CheckInTime,
		att.CheckOutTime,
		att.CheckInToken,
		att.CheckOutToken,
		att.Status,
		att.IsLate,
		att.IsEarlyCheckout,
		att.LateMinutes,
		att.EarlyMinutes,
		att.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &a, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE date BETWEEN $1 AND $2`
	args := []interface{}{filter.StartDate, filter.EndDate}
	argIdx := 3

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := `SELECT` + attendanceColumns + ` FROM attendances` + where +
		fmt.Sprintf(` ORDER BY date DESC, employee_id LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, total, rows.Err()
}

// ListRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances in range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

// ListByEmployeeRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances for employee: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}
