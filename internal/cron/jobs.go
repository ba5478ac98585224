package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/lenoxlabs/lenox/internal/memory"
)

// SessionSweepJob removes conversation sessions that have been idle
// longer than MaxIdle.
type SessionSweepJob struct {
	Store        memory.Pruner
	MaxIdle      time.Duration
	Logger       *slog.Logger
	ScheduleExpr string // empty = default "*/30 * * * *"
}

// Compile-time interface check.
var _ Job = (*SessionSweepJob)(nil)

// Name implements Job.
func (j *SessionSweepJob) Name() string { return "session_sweep" }

// Schedule implements Job.
func (j *SessionSweepJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "*/30 * * * *"
}

// Run prunes sessions idle longer than MaxIdle.
func (j *SessionSweepJob) Run(_ context.Context) error {
	pruned := j.Store.Prune(j.MaxIdle)
	if pruned > 0 {
		j.Logger.Info("cron: pruned idle sessions", "count", pruned)
	}
	return nil
}
