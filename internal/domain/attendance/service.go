package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for the attendance ledger
type AttendanceService interface {
	// Submit resolves a kiosk token + PIN into a check-in or check-out.
	// The record state decides the action: no record means check-in, an
	// open record means check-out, a closed record is rejected.
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)

	// Upsert is the admin backfill path. It bypasses the schedule
	// requirement and recomputes status from whatever timestamps are set;
	// clearing both timestamps deletes the record.
	Upsert(ctx context.Context, req ManualUpsertRequest) (*AttendanceResponse, error)

	// List returns the timesheet for the given filter.
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, int64, error)

	// MarkAbsent records an absence for an unattended scheduled shift.
	MarkAbsent(ctx context.Context, employeeID string, date time.Time, scheduleID string) error
}
