package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sweeper drops quiz attempts that were presented but never submitted
type Sweeper interface {
	SweepAttempts() int
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
}

// New creates a new scheduler instance
func New(sweeper Sweeper, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		sweeper:   sweeper,
		interval:  interval,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	// Sweep abandoned quiz attempts
	if _, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.sweepAttempts); err != nil {
		return err
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunNow runs every task once, outside the schedule
func (s *Scheduler) RunNow() {
	s.sweepAttempts()
}

func (s *Scheduler) sweepAttempts() {
	if removed := s.sweeper.SweepAttempts(); removed > 0 {
		log.Printf("Swept %d abandoned quiz attempts", removed)
	}
}
