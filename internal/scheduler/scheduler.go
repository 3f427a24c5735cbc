// Package scheduler runs recurring jobs (periodic watchlist scans) on a
// cron schedule.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler wraps a cron runner with structured logging around each job.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// New creates a stopped Scheduler.
func New(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Every registers a job at a fixed interval.
func (s *Scheduler) Every(interval time.Duration, name string, job func()) cron.EntryID {
	return s.cron.Schedule(cron.Every(interval), s.wrap(name, job))
}

// AddCron registers a job with a cron spec ("30 9 * * MON-FRI").
func (s *Scheduler) AddCron(spec, name string, job func()) (cron.EntryID, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return 0, err
	}
	return s.cron.Schedule(schedule, s.wrap(name, job)), nil
}

func (s *Scheduler) wrap(name string, job func()) cron.Job {
	return cron.FuncJob(func() {
		start := time.Now()
		s.logger.Debug().Str("job", name).Msg("Scheduled job started")
		job()
		s.logger.Info().Str("job", name).Dur("duration", time.Since(start)).Msg("Scheduled job finished")
	})
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
