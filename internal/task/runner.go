// Package task provides a small runner for periodic background jobs such as
// the login throttle sweep.
package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a unit of periodic background work.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Interval is how often the job runs. Must be positive.
	Interval() time.Duration

	// Run executes one iteration of the job.
	Run(ctx context.Context) error
}

// Runner executes registered jobs on their intervals until stopped.
type Runner struct {
	jobs       []Job
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewRunner creates a Runner. It panics if logger is nil.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		panic("logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger.With(slog.String("component", "task_runner")),
	}
}

// Register adds a job to the runner. Register must be called before Start.
func (r *Runner) Register(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start launches a goroutine per registered job.
func (r *Runner) Start() {
	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.run(job)
	}

	r.logger.Info("task runner started", slog.Int("jobs", len(r.jobs)))
}

// Stop cancels all jobs and waits for them to finish.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	r.logger.Info("task runner stopped")
}

// run drives a single job on its interval until the runner is stopped.
func (r *Runner) run(job Job) {
	defer r.wg.Done()

	logger := r.logger.With(slog.String("job", job.Name()))

	ticker := time.NewTicker(job.Interval())
	defer ticker.Stop()

	logger.Debug("job scheduled", slog.Duration("interval", job.Interval()))

	for {
		select {
		case <-r.ctx.Done():
			logger.Debug("job stopped")
			return

		case <-ticker.C:
			if err := job.Run(r.ctx); err != nil {
				logger.Error("job execution failed", "error", err)
			}
		}
	}
}
