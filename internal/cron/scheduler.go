package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler drives registered jobs from 5-field cron expressions. Each
// job carries its own overlap guard: a tick that lands while the
// previous run is still going is skipped, never stacked.
type Scheduler struct {
	mu     sync.Mutex
	cron   *cron.Cron
	jobs   []Job
	guards map[string]*sync.Mutex
	logger *slog.Logger
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler. Jobs must be registered before Start().
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		guards: make(map[string]*sync.Mutex),
		logger: logger,
	}
}

// RegisterJob adds a job to the scheduler. Must be called before Start().
// Job names are unique; a duplicate is an error.
func (s *Scheduler) RegisterJob(j Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := j.Name()
	if _, exists := s.guards[name]; exists {
		return fmt.Errorf("cron: duplicate job name %q", name)
	}

	s.guards[name] = &sync.Mutex{}
	s.jobs = append(s.jobs, j)
	return nil
}

// Start compiles every job's schedule and begins ticking. An invalid
// expression fails the whole start.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	s.cron = cron.New(cron.WithParser(parser))

	for _, job := range s.jobs {
		if _, err := s.cron.AddFunc(job.Schedule(), s.tick(ctx, job)); err != nil {
			cancel()
			return fmt.Errorf("cron: invalid schedule for job %q: %w", job.Name(), err)
		}
	}

	s.cron.Start()
	s.logger.Info("cron: scheduler started", "jobs", len(s.jobs))
	return nil
}

// tick wraps one job run with its overlap guard. TryLock keeps the
// check-and-acquire atomic, so a slow run cannot race a fresh tick.
func (s *Scheduler) tick(ctx context.Context, job Job) func() {
	guard := s.guards[job.Name()]
	return func() {
		if !guard.TryLock() {
			s.logger.Warn("cron: previous run still going, tick skipped",
				"job", job.Name(),
			)
			return
		}
		defer guard.Unlock()

		if err := job.Run(ctx); err != nil {
			s.logger.Error("cron: job failed",
				"job", job.Name(),
				"error", err,
			)
		}
	}
}

// Stop shuts down the scheduler, waiting for in-flight jobs.
func (s *Scheduler) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.logger.Info("cron: scheduler stopped")
	}
	return nil
}
