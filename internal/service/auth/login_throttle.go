package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/platform/clock"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
)

const (
	// MaxLoginAttempts is the number of consecutive failed logins allowed
	// before a client address is blocked.
	MaxLoginAttempts = 5

	// LoginBlockDuration is how long a blocked client stays blocked.
	LoginBlockDuration = 15 * time.Minute

	// attemptStaleAfter bounds how long an attempt record without a block
	// is retained before the sweeper discards it.
	attemptStaleAfter = 24 * time.Hour
)

// attemptRecord tracks the failed login state for a single client address.
// The mutex keeps increment-and-maybe-block atomic per key without a
// throttle-wide lock.
type attemptRecord struct {
	mu           sync.Mutex
	failures     int
	blockedUntil time.Time
	lastFailure  time.Time
}

// LoginThrottle blocks repeated failed login attempts per client address.
// All state is in memory; a restart clears every block.
type LoginThrottle struct {
	records sync.Map // client address -> *attemptRecord
	clock   clock.Clock
	logger  *slog.Logger
}

// NewLoginThrottle creates a login throttle. It panics if clk or log is nil
// because a throttle without a clock or logger cannot operate.
func NewLoginThrottle(clk clock.Clock, log *slog.Logger) *LoginThrottle {
	if clk == nil {
		panic("clock cannot be nil")
	}
	if log == nil {
		panic("logger cannot be nil")
	}
	return &LoginThrottle{
		clock:  clk,
		logger: log.With(slog.String("component", "login_throttle")),
	}
}

// IsBlocked reports whether the client address is currently blocked.
// An expired block is removed on the way through, so the next failed
// attempt starts a fresh count.
func (t *LoginThrottle) IsBlocked(clientAddr string) bool {
	v, ok := t.records.Load(clientAddr)
	if !ok {
		return false
	}
	rec := v.(*attemptRecord)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.blockedUntil.IsZero() {
		return false
	}
	if t.clock.Now().Before(rec.blockedUntil) {
		return true
	}

	// Block expired; drop the record entirely.
	t.records.Delete(clientAddr)
	return false
}

// RegisterFailedAttempt records a failed login for the client address and
// blocks it once the failure count reaches MaxLoginAttempts.
func (t *LoginThrottle) RegisterFailedAttempt(ctx context.Context, clientAddr string) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	v, _ := t.records.LoadOrStore(clientAddr, &attemptRecord{})
	rec := v.(*attemptRecord)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	now := t.clock.Now()

	// A previously expired block means the old count no longer applies.
	if !rec.blockedUntil.IsZero() && !now.Before(rec.blockedUntil) {
		rec.failures = 0
		rec.blockedUntil = time.Time{}
	}

	rec.failures++
	rec.lastFailure = now

	// Re-stamped on every attempt past the limit, so failing into an
	// active block extends it.
	if rec.failures >= MaxLoginAttempts {
		rec.blockedUntil = now.Add(LoginBlockDuration)
		log.Warn("client address blocked after repeated failed logins",
			slog.String("client_addr", clientAddr),
			slog.Int("failures", rec.failures),
			slog.Time("blocked_until", rec.blockedUntil))
	}
}

// RegisterSuccessfulAttempt clears all throttle state for the client address.
func (t *LoginThrottle) RegisterSuccessfulAttempt(clientAddr string) {
	t.records.Delete(clientAddr)
}

// RemainingAttempts returns how many more failed attempts the client address
// can make before being blocked. A blocked address has zero remaining.
func (t *LoginThrottle) RemainingAttempts(clientAddr string) int {
	v, ok := t.records.Load(clientAddr)
	if !ok {
		return MaxLoginAttempts
	}
	rec := v.(*attemptRecord)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if !rec.blockedUntil.IsZero() {
		if t.clock.Now().Before(rec.blockedUntil) {
			return 0
		}
		return MaxLoginAttempts
	}

	remaining := MaxLoginAttempts - rec.failures
	if remaining < 0 {
		return 0
	}
	return remaining
}

// BlockRemainingMinutes returns the whole minutes left on the client
// address's block, truncated. It returns 0 when the address is not blocked.
func (t *LoginThrottle) BlockRemainingMinutes(clientAddr string) int {
	v, ok := t.records.Load(clientAddr)
	if !ok {
		return 0
	}
	rec := v.(*attemptRecord)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.blockedUntil.IsZero() {
		return 0
	}
	remaining := rec.blockedUntil.Sub(t.clock.Now())
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Minute)
}

// SweepExpired removes expired blocks and stale attempt records. It returns
// the number of records removed. Intended to run periodically from a
// background task.
func (t *LoginThrottle) SweepExpired(ctx context.Context) int {
	log := logger.FromContextOrDefault(ctx, t.logger)
	now := t.clock.Now()
	removed := 0

	t.records.Range(func(key, value any) bool {
		rec := value.(*attemptRecord)

		rec.mu.Lock()
		expiredBlock := !rec.blockedUntil.IsZero() && !now.Before(rec.blockedUntil)
		stale := rec.blockedUntil.IsZero() && now.Sub(rec.lastFailure) > attemptStaleAfter
		rec.mu.Unlock()

		if expiredBlock || stale {
			t.records.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		log.Debug("swept login throttle records", slog.Int("removed", removed))
	}
	return removed
}
