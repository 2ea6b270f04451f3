package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// job is one registered background task. Interval jobs fire right after
// Start and again on every tick; daily jobs wait for their hour.
type job struct {
	name     string
	fn       func(ctx context.Context) error
	interval time.Duration
	atHour   int
	daily    bool
}

// Scheduler drives background jobs off one shared context, so a single
// Stop call winds everything down.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// AddJob registers a task that runs once at startup and then on every
// interval.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, fn: fn, interval: interval})
	slog.Info("registered background job", "job", name, "interval", interval)
}

// AddDailyJob registers a task that runs once per day at the given hour,
// local time. Nothing runs at startup; the first run waits for the next
// occurrence of the hour.
func (s *Scheduler) AddDailyJob(name string, hour int, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, fn: fn, atHour: hour, daily: true})
	slog.Info("registered background job", "job", name, "daily_at_hour", hour)
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("background scheduler started", "jobs", len(s.jobs))
}

// Stop cancels the shared context and waits for running jobs to return.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("background scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	var delay time.Duration
	if j.daily {
		delay = nextDailyDelay(time.Now(), j.atHour)
	} else {
		s.run(j)
		delay = j.interval
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			s.run(j)
			if j.daily {
				timer.Reset(nextDailyDelay(time.Now(), j.atHour))
			} else {
				timer.Reset(j.interval)
			}
		}
	}
}

func (s *Scheduler) run(j job) {
	started := time.Now()
	if err := j.fn(s.ctx); err != nil {
		slog.Error("background job failed", "job", j.name, "error", err, "took", time.Since(started))
		return
	}
	slog.Debug("background job finished", "job", j.name, "took", time.Since(started))
}

// RunNow executes every registered job once on the caller's context,
// regardless of schedule. Meant for tests and one-off maintenance runs.
func (s *Scheduler) RunNow(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if err := j.fn(ctx); err != nil {
			slog.Error("background job failed", "job", j.name, "error", err)
		}
	}
}

// nextDailyDelay is the wait until hour:00 next comes around.
func nextDailyDelay(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
