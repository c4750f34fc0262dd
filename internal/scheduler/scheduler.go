package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Retrier is the part of the controller the scheduler drives.
type Retrier interface {
	RetryMissingAnnotations() int
}

// Scheduler periodically retries weather lookups for rows without an
// annotation.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Retrier
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, target Retrier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		target:    target,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval disables it.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: annotation retry disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(func() {
		if n := s.target.RetryMissingAnnotations(); n > 0 {
			log.Printf("scheduler: retrying weather for %d workouts", n)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
