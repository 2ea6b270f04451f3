package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/settings"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context) (settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, allowed_late_minutes, penalty_tiers, early_checkout_grace_minutes,
			   early_checkout_penalty, absent_penalty, auto_absent_enabled, notes, updated_at
		FROM attendance_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s settings.AttendanceSettings
	var tiersJSON []byte
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.AllowedLateMinutes, &tiersJSON, &s.EarlyCheckoutGraceMinutes,
		&s.EarlyCheckoutPenalty, &s.AbsentPenalty, &s.AutoAbsentEnabled, &s.Notes, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.AttendanceSettings{}, settings.ErrSettingsNotFound
		}
		return settings.AttendanceSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	if err := json.Unmarshal(tiersJSON, &s.Tiers); err != nil {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to decode penalty tiers: %w", err)
	}

	return s, nil
}

// Create implements settings.SettingsRepository.
func (r *settingsRepository) Create(ctx context.Context, s settings.AttendanceSettings) (settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	tiersJSON, err := json.Marshal(s.Tiers)
	if err != nil {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to encode penalty tiers: %w", err)
	}

	query := `
		INSERT INTO attendance_settings (
			id, allowed_late_minutes, penalty_tiers, early_checkout_grace_minutes,
			early_checkout_penalty, absent_penalty, auto_absent_enabled, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING updated_at
	`

	err = q.QueryRow(ctx, query,
		s.ID,
		s.AllowedLateMinutes,
		tiersJSON,
		s.EarlyCheckoutGraceMinutes,
		s.EarlyCheckoutPenalty,
		s.AbsentPenalty,
		s.AutoAbsentEnabled,
		s.Notes,
	).Scan(&s.UpdatedAt)

	if err != nil {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to create settings: %w", err)
	}

	return s, nil
}

// Update implements settings.SettingsRepository.
func (r *settingsRepository) Update(ctx context.Context, s settings.AttendanceSettings) error {
	q := GetQuerier(ctx, r.db)

	tiersJSON, err := json.Marshal(s.Tiers)
	if err != nil {
		return fmt.Errorf("failed to encode penalty tiers: %w", err)
	}

	query := `
		UPDATE attendance_settings SET
			allowed_late_minutes = $2,
			penalty_tiers = $3,
			early_checkout_grace_minutes = $4,
			early_checkout_penalty = $5,
			absent_penalty = $6,
			auto_absent_enabled = $7,
			notes = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		s.ID,
		s.AllowedLateMinutes,
		tiersJSON,
		s.EarlyCheckoutGraceMinutes,
		s.EarlyCheckoutPenalty,
		s.AbsentPenalty,
		s.AutoAbsentEnabled,
		s.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return settings.ErrSettingsNotFound
	}

	return nil
}
