package task

import (
	"context"
	"time"
)

// throttleSweeper is the subset of the login throttle the sweep job needs.
type throttleSweeper interface {
	SweepExpired(ctx context.Context) int
}

// ThrottleSweepJob periodically removes expired blocks and stale attempt
// records from the login throttle.
type ThrottleSweepJob struct {
	throttle throttleSweeper
	interval time.Duration
}

var _ Job = (*ThrottleSweepJob)(nil)

// NewThrottleSweepJob creates the sweep job. It panics if throttle is nil
// or interval is not positive.
func NewThrottleSweepJob(throttle throttleSweeper, interval time.Duration) *ThrottleSweepJob {
	if throttle == nil {
		panic("throttle cannot be nil")
	}
	if interval <= 0 {
		panic("interval must be positive")
	}
	return &ThrottleSweepJob{
		throttle: throttle,
		interval: interval,
	}
}

func (j *ThrottleSweepJob) Name() string { return "login_throttle_sweep" }

func (j *ThrottleSweepJob) Interval() time.Duration { return j.interval }

func (j *ThrottleSweepJob) Run(ctx context.Context) error {
	j.throttle.SweepExpired(ctx)
	return nil
}
