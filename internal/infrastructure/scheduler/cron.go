// Package scheduler drives the daily content run on a cron expression.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"eazyhealth/internal/ports"
)

// CronScheduler runs the registered job on a cron schedule in the
// configured timezone.
type CronScheduler struct {
	expression string
	location   *time.Location
	cron       *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler; a nil location means local time.
func NewCronScheduler(expression string, location *time.Location) *CronScheduler {
	if location == nil {
		location = time.Local
	}
	return &CronScheduler{expression: expression, location: location}
}

// Start registers the job and begins the cron loop. The job receives the
// scheduled fire time in the scheduler's timezone.
func (s *CronScheduler) Start(_ context.Context, job func(time.Time)) error {
	s.cron = cron.New(cron.WithLocation(s.location))
	if _, err := s.cron.AddFunc(s.expression, func() {
		job(time.Now().In(s.location))
	}); err != nil {
		return fmt.Errorf("register cron job %q: %w", s.expression, err)
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running job, honoring ctx.
func (s *CronScheduler) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
