package reconcile

import (
	"context"
	"errors"
	"fmt"
	"wonders-cms/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a Reconciler on a cron schedule. A run still in progress
// when the next one is due makes the next one skip.
type Scheduler struct {
	cron *cron.Cron
	rec  *Reconciler
	log  logger.Logger
}

// NewScheduler registers rec on the standard five-field cron spec.
func NewScheduler(rec *Reconciler, spec string, log logger.Logger) (*Scheduler, error) {
	cl := cronLogger{log: log}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	s := &Scheduler{cron: c, rec: rec, log: log}
	if _, err := c.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	report, err := s.rec.Run(context.Background())
	switch {
	case errors.Is(err, ErrNoReferences), errors.Is(err, ErrAlreadyRunning):
		s.log.Warn("Scheduled cleanup skipped: " + err.Error())
	case err != nil:
		s.log.Error(err, "Scheduled cleanup failed")
	default:
		s.log.Info(fmt.Sprintf("Scheduled cleanup removed %d files", len(report.Deleted)))
	}
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Cleanup scheduler started")
}

// Stop halts the schedule and waits for a running cleanup to finish or ctx
// to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	s.log.Info("Cleanup scheduler stopped")
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(fmt.Sprint(append([]interface{}{msg, " "}, keysAndValues...)...))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(err, fmt.Sprint(append([]interface{}{msg, " "}, keysAndValues...)...))
}
