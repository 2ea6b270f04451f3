package settings

import "context"

type SettingsRepository interface {
	// Get returns the active settings row, or ErrSettingsNotFound when the
	// table has never been seeded.
	Get(ctx context.Context) (AttendanceSettings, error)

	Create(ctx context.Context, s AttendanceSettings) (AttendanceSettings, error)

	Update(ctx context.Context, s AttendanceSettings) error
}
