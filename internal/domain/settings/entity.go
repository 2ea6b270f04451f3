package settings

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PenaltyTier maps a late-minute range onto a cash penalty. MaxMinutes is
// the inclusive upper bound of the range; nil marks the catch-all tier.
type PenaltyTier struct {
	MaxMinutes    *int            `json:"max_minutes"`
	PenaltyAmount decimal.Decimal `json:"penalty_amount"`
}

// PenaltyTiers is an ordered tier ladder. A valid ladder has at least one
// tier, strictly increasing bounds, non-negative amounts, and exactly one
// unbounded tier sitting last.
type PenaltyTiers []PenaltyTier

func (t PenaltyTiers) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidPenaltyTiers)
	}

	prev := -1
	for i, tier := range t {
		if tier.PenaltyAmount.IsNegative() {
			return fmt.Errorf("%w: tier %d has a negative amount", ErrInvalidPenaltyTiers, i)
		}
		if tier.MaxMinutes == nil {
			if i != len(t)-1 {
				return fmt.Errorf("%w: unbounded tier must be last", ErrInvalidPenaltyTiers)
			}
			continue
		}
		if *tier.MaxMinutes <= prev {
			return fmt.Errorf("%w: tier bounds must be strictly increasing", ErrInvalidPenaltyTiers)
		}
		prev = *tier.MaxMinutes
	}

	if t[len(t)-1].MaxMinutes != nil {
		return fmt.Errorf("%w: last tier must be unbounded", ErrInvalidPenaltyTiers)
	}
	return nil
}

// AmountFor returns the cash penalty for a given lateness. Arrivals within
// the allowed grace cost nothing; otherwise the first tier whose bound
// covers the lateness applies, falling through to the catch-all tier.
func (t PenaltyTiers) AmountFor(lateMinutes, allowedLateMinutes int) decimal.Decimal {
	if lateMinutes <= allowedLateMinutes {
		return decimal.Zero
	}
	for _, tier := range t {
		if tier.MaxMinutes == nil || lateMinutes <= *tier.MaxMinutes {
			return tier.PenaltyAmount
		}
	}
	return decimal.Zero
}

// AttendanceSettings is the single active configuration row.
type AttendanceSettings struct {
	ID                        string
	AllowedLateMinutes        int
	Tiers                     PenaltyTiers
	EarlyCheckoutGraceMinutes int
	EarlyCheckoutPenalty      decimal.Decimal
	AbsentPenalty             decimal.Decimal
	AutoAbsentEnabled         bool
	Notes                     *string
	UpdatedAt                 time.Time
}

// DefaultSettings returns the configuration seeded on first read.
func DefaultSettings() AttendanceSettings {
	bound := func(v int) *int { return &v }
	return AttendanceSettings{
		AllowedLateMinutes: 15,
		Tiers: PenaltyTiers{
			{MaxMinutes: bound(15), PenaltyAmount: decimal.Zero},
			{MaxMinutes: bound(30), PenaltyAmount: decimal.NewFromInt(50000)},
			{MaxMinutes: bound(60), PenaltyAmount: decimal.NewFromInt(100000)},
			{MaxMinutes: nil, PenaltyAmount: decimal.NewFromInt(200000)},
		},
		EarlyCheckoutGraceMinutes: 10,
		EarlyCheckoutPenalty:      decimal.NewFromInt(50000),
		AbsentPenalty:             decimal.NewFromInt(100000),
		AutoAbsentEnabled:         true,
	}
}
