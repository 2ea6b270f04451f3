package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.AttendanceSettings, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	// First read ever: seed the defaults.
	created, err := s.settingsRepo.Create(ctx, settings.DefaultSettings())
	if err != nil {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to seed default settings: %w", err)
	}
	slog.Info("Seeded default attendance settings")

	return created, nil
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.AttendanceSettings, error) {
	if err := req.Validate(); err != nil {
		return settings.AttendanceSettings{}, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return settings.AttendanceSettings{}, err
	}

	current.AllowedLateMinutes = req.AllowedLateMinutes
	current.Tiers = req.Tiers
	current.EarlyCheckoutGraceMinutes = req.EarlyCheckoutGraceMinutes
	current.EarlyCheckoutPenalty = req.EarlyCheckoutPenalty
	current.AbsentPenalty = req.AbsentPenalty
	current.AutoAbsentEnabled = req.AutoAbsentEnabled
	current.Notes = req.Notes

	if err := s.settingsRepo.Update(ctx, current); err != nil {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to update settings: %w", err)
	}

	return current, nil
}
