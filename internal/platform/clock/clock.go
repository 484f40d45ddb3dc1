// Package clock provides the time source used by the scheduling and
// throttling components. Injecting a Clock keeps date arithmetic
// deterministic under test.
package clock

import "time"

// Clock supplies the current instant and the current calendar date.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time

	// Today returns the current calendar date as midnight UTC.
	Today() time.Time
}

// systemClock is the production Clock backed by time.Now.
type systemClock struct{}

// New returns a Clock backed by the system time.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Today() time.Time {
	return Truncate(time.Now().UTC())
}

// Truncate reduces a timestamp to its calendar date (midnight UTC).
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Fixed is a Clock frozen at a configurable instant. It is intended for
// tests that need to control the passage of time.
type Fixed struct {
	now time.Time
}

// NewFixed creates a Fixed clock frozen at the given instant.
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now.UTC()}
}

func (f *Fixed) Now() time.Time {
	return f.now
}

func (f *Fixed) Today() time.Time {
	return Truncate(f.now)
}

// Advance moves the frozen clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// Set moves the frozen clock to the given instant.
func (f *Fixed) Set(now time.Time) {
	f.now = now.UTC()
}
