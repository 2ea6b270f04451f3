package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDailyDelay(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Duration
	}{
		{"before midnight", time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC), 0, 30 * time.Minute},
		{"exactly on the hour waits a full day", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 0, 24 * time.Hour},
		{"same day later hour", time.Date(2025, 3, 10, 1, 15, 0, 0, time.UTC), 5, 3*time.Hour + 45*time.Minute},
		{"hour already passed rolls over", time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), 5, 23 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextDailyDelay(tt.now, tt.hour))
		})
	}
}

func TestRunNowExecutesEveryJob(t *testing.T) {
	s := NewScheduler()

	var ran []string
	s.AddJob("hourly", time.Hour, func(context.Context) error {
		ran = append(ran, "hourly")
		return nil
	})
	s.AddDailyJob("midnight", 0, func(context.Context) error {
		ran = append(ran, "midnight")
		return nil
	})

	s.RunNow(context.Background())

	assert.Equal(t, []string{"hourly", "midnight"}, ran)
}
