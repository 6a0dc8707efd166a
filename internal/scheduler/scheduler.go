package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper is what the scheduler drives on each tick.
type Sweeper interface {
	SweepRollover(ctx context.Context)
}

// Scheduler periodically re-checks the day boundary so a session idle across
// midnight still resets its daily counters view.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
}

// New creates a scheduler sweeping at the given interval.
func New(sweeper Sweeper, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		interval:  interval,
	}
}

// Start begins the sweep in a non-blocking manner.
func (s *Scheduler) Start() {
	s.scheduler.Every(s.interval).Do(func() {
		s.sweeper.SweepRollover(context.Background())
	})
	s.scheduler.StartAsync()
}

// Stop terminates the sweep.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
