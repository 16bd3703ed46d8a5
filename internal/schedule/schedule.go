// Package schedule wraps robfig/cron to re-run the whole pipeline on a
// fixed schedule. There is no retry inside a run; resilience across runs
// comes from the next tick.
package schedule

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Runner struct {
	cron   *cron.Cron
	spec   string
	task   func()
	logger *zap.Logger
}

// New creates a Runner that executes task per the cron spec, e.g.
// "@every 6h" or "0 8 * * *".
func New(spec string, task func(), logger *zap.Logger) *Runner {
	return &Runner{
		cron:   cron.New(),
		spec:   spec,
		task:   task,
		logger: logger,
	}
}

// Start registers the task and starts the scheduler. The task also runs once
// immediately so the first results do not wait for the first tick.
func (r *Runner) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.task); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", r.spec, err)
	}

	r.cron.Start()
	r.logger.Info("scheduler started", zap.String("spec", r.spec))

	go r.task()

	return nil
}

// Stop shuts the scheduler down. Running tasks finish on their own.
func (r *Runner) Stop() {
	r.cron.Stop()
	r.logger.Info("scheduler stopped")
}
