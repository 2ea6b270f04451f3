package settings

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func bound(v int) *int { return &v }

func TestPenaltyTiersValidate(t *testing.T) {
	tests := []struct {
		name    string
		tiers   PenaltyTiers
		wantErr bool
	}{
		{
			name:    "empty ladder",
			tiers:   PenaltyTiers{},
			wantErr: true,
		},
		{
			name: "valid ladder",
			tiers: PenaltyTiers{
				{MaxMinutes: bound(15), PenaltyAmount: decimal.Zero},
				{MaxMinutes: bound(30), PenaltyAmount: decimal.NewFromInt(50000)},
				{MaxMinutes: nil, PenaltyAmount: decimal.NewFromInt(100000)},
			},
		},
		{
			name: "missing catch-all",
			tiers: PenaltyTiers{
				{MaxMinutes: bound(15), PenaltyAmount: decimal.Zero},
				{MaxMinutes: bound(30), PenaltyAmount: decimal.NewFromInt(50000)},
			},
			wantErr: true,
		},
		{
			name: "unbounded tier not last",
			tiers: PenaltyTiers{
				{MaxMinutes: nil, PenaltyAmount: decimal.NewFromInt(100000)},
				{MaxMinutes: bound(30), PenaltyAmount: decimal.NewFromInt(50000)},
			},
			wantErr: true,
		},
		{
			name: "two unbounded tiers",
			tiers: PenaltyTiers{
				{MaxMinutes: nil, PenaltyAmount: decimal.NewFromInt(50000)},
				{MaxMinutes: nil, PenaltyAmount: decimal.NewFromInt(100000)},
			},
			wantErr: true,
		},
		{
			name: "bounds not increasing",
			tiers: PenaltyTiers{
				{MaxMinutes: bound(30), PenaltyAmount: decimal.Zero},
				{MaxMinutes: bound(30), PenaltyAmount: decimal.NewFromInt(50000)},
				{MaxMinutes: nil, PenaltyAmount: decimal.NewFromInt(100000)},
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			tiers: PenaltyTiers{
				{MaxMinutes: bound(30), PenaltyAmount: decimal.NewFromInt(-1)},
				{MaxMinutes: nil, PenaltyAmount: decimal.NewFromInt(100000)},
			},
			wantErr: true,
		},
		{
			name: "single catch-all tier",
			tiers: PenaltyTiers{
				{MaxMinutes: nil, PenaltyAmount: decimal.NewFromInt(100000)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tiers.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPenaltyTiers)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPenaltyTiersAmountFor(t *testing.T) {
	tiers := PenaltyTiers{
		{MaxMinutes: bound(30), PenaltyAmount: decimal.NewFromInt(50000)},
		{MaxMinutes: nil, PenaltyAmount: decimal.NewFromInt(100000)},
	}

	tests := []struct {
		lateMinutes int
		want        int64
	}{
		{0, 0},
		{10, 0},  // within the 15-minute allowance
		{15, 0},  // boundary is inclusive
		{16, 50000},
		{30, 50000},
		{31, 100000},
		{45, 100000},
		{240, 100000},
	}

	for _, tt := range tests {
		got := tiers.AmountFor(tt.lateMinutes, 15)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)),
			"late %d minutes: want %d, got %s", tt.lateMinutes, tt.want, got)
	}
}

func TestDefaultSettingsAreValid(t *testing.T) {
	cfg := DefaultSettings()
	assert.NoError(t, cfg.Tiers.Validate())
	assert.True(t, cfg.AutoAbsentEnabled)
}
