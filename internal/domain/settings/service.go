package settings

import "context"

// SettingsService defines business logic for attendance configuration
type SettingsService interface {
	// Get returns the active settings, seeding defaults on first read.
	Get(ctx context.Context) (AttendanceSettings, error)

	Update(ctx context.Context, req UpdateSettingsRequest) (AttendanceSettings, error)
}
