package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/platform/clock"
	"github.com/flashdeck/flashdeck-api/internal/service/auth"
)

func newTestThrottle(t *testing.T) (*auth.LoginThrottle, *clock.Fixed) {
	t.Helper()
	clk := clock.NewFixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewLoginThrottle(clk, logger), clk
}

func TestLoginThrottleBlocksAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	throttle, _ := newTestThrottle(t)
	ctx := context.Background()
	addr := "203.0.113.7"

	for i := 0; i < auth.MaxLoginAttempts-1; i++ {
		throttle.RegisterFailedAttempt(ctx, addr)
		assert.False(t, throttle.IsBlocked(addr), "attempt %d should not block", i+1)
	}
	assert.Equal(t, 1, throttle.RemainingAttempts(addr))

	throttle.RegisterFailedAttempt(ctx, addr)
	assert.True(t, throttle.IsBlocked(addr))
	assert.Equal(t, 0, throttle.RemainingAttempts(addr))
	assert.Equal(t, 15, throttle.BlockRemainingMinutes(addr))
}

func TestLoginThrottleBlockExpires(t *testing.T) {
	t.Parallel()

	throttle, clk := newTestThrottle(t)
	ctx := context.Background()
	addr := "203.0.113.8"

	for i := 0; i < auth.MaxLoginAttempts; i++ {
		throttle.RegisterFailedAttempt(ctx, addr)
	}
	assert.True(t, throttle.IsBlocked(addr))

	clk.Advance(auth.LoginBlockDuration - time.Second)
	assert.True(t, throttle.IsBlocked(addr))

	clk.Advance(time.Second)
	assert.False(t, throttle.IsBlocked(addr))

	// The expired block also cleared the failure count.
	assert.Equal(t, auth.MaxLoginAttempts, throttle.RemainingAttempts(addr))
}

func TestLoginThrottleSuccessResets(t *testing.T) {
	t.Parallel()

	throttle, _ := newTestThrottle(t)
	ctx := context.Background()
	addr := "203.0.113.9"

	for i := 0; i < auth.MaxLoginAttempts-1; i++ {
		throttle.RegisterFailedAttempt(ctx, addr)
	}
	throttle.RegisterSuccessfulAttempt(addr)

	assert.Equal(t, auth.MaxLoginAttempts, throttle.RemainingAttempts(addr))
	assert.False(t, throttle.IsBlocked(addr))
}

func TestLoginThrottleTracksAddressesIndependently(t *testing.T) {
	t.Parallel()

	throttle, _ := newTestThrottle(t)
	ctx := context.Background()

	for i := 0; i < auth.MaxLoginAttempts; i++ {
		throttle.RegisterFailedAttempt(ctx, "198.51.100.1")
	}

	assert.True(t, throttle.IsBlocked("198.51.100.1"))
	assert.False(t, throttle.IsBlocked("198.51.100.2"))
	assert.Equal(t, 0, throttle.BlockRemainingMinutes("198.51.100.2"))
}

func TestLoginThrottleConcurrentFailures(t *testing.T) {
	t.Parallel()

	throttle, _ := newTestThrottle(t)
	ctx := context.Background()
	addr := "198.51.100.3"

	const attempts = 50
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			throttle.RegisterFailedAttempt(ctx, addr)
		}()
	}
	wg.Wait()

	// Every concurrent failure counted; the address is well past the limit.
	assert.True(t, throttle.IsBlocked(addr))
	assert.Equal(t, 0, throttle.RemainingAttempts(addr))
}

func TestLoginThrottleConcurrentFailuresCountExactly(t *testing.T) {
	t.Parallel()

	throttle, _ := newTestThrottle(t)
	ctx := context.Background()
	addr := "198.51.100.4"

	// Fewer concurrent failures than the limit: the count must land on
	// exactly that number, with no update lost to a race.
	const attempts = auth.MaxLoginAttempts - 1
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			throttle.RegisterFailedAttempt(ctx, addr)
		}()
	}
	wg.Wait()

	assert.False(t, throttle.IsBlocked(addr))
	assert.Equal(t, auth.MaxLoginAttempts-attempts, throttle.RemainingAttempts(addr))
}

func TestLoginThrottleFailureDuringBlockExtendsIt(t *testing.T) {
	t.Parallel()

	throttle, clk := newTestThrottle(t)
	ctx := context.Background()
	addr := "198.51.100.5"

	for i := 0; i < auth.MaxLoginAttempts; i++ {
		throttle.RegisterFailedAttempt(ctx, addr)
	}
	require.True(t, throttle.IsBlocked(addr))

	clk.Advance(10 * time.Minute)
	assert.Equal(t, 5, throttle.BlockRemainingMinutes(addr))

	// Failing into an active block restarts the full block window.
	throttle.RegisterFailedAttempt(ctx, addr)
	assert.True(t, throttle.IsBlocked(addr))
	assert.Equal(t, 15, throttle.BlockRemainingMinutes(addr))
}

func TestLoginThrottleSweepExpired(t *testing.T) {
	t.Parallel()

	throttle, clk := newTestThrottle(t)
	ctx := context.Background()

	// One blocked address and one with a stale partial count.
	for i := 0; i < auth.MaxLoginAttempts; i++ {
		throttle.RegisterFailedAttempt(ctx, "192.0.2.1")
	}
	throttle.RegisterFailedAttempt(ctx, "192.0.2.2")

	assert.Equal(t, 0, throttle.SweepExpired(ctx))

	// The block expires but the partial count is not yet stale.
	clk.Advance(auth.LoginBlockDuration)
	assert.Equal(t, 1, throttle.SweepExpired(ctx))

	clk.Advance(24*time.Hour + time.Minute)
	assert.Equal(t, 1, throttle.SweepExpired(ctx))
	assert.Equal(t, 0, throttle.SweepExpired(ctx))
}
