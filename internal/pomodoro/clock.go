package pomodoro

import (
	"context"
	"sync"
	"time"
)

// Clock is the time source for countdowns. Elapsed time must be measured
// with Since, which uses the monotonic reading carried by time.Now.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// SystemClock returns the process clock.
func SystemClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Since(t time.Time) time.Duration { return time.Since(t) }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FakeClock advances only when slept on. Tests use it to run whole
// cycles instantly.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	slept  []time.Duration
	cancel func(now time.Time) bool
}

// NewFakeClock starts a fake clock at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// InterruptWhen makes Sleep fail with context.Canceled once fn reports
// true for the current fake time.
func (c *FakeClock) InterruptWhen(fn func(now time.Time) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel = fn
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil && c.cancel(c.now) {
		return context.Canceled
	}
	if d > 0 {
		c.now = c.now.Add(d)
	}
	c.slept = append(c.slept, d)
	return nil
}

// Advance moves the clock forward without recording a sleep.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleeps returns every duration passed to Sleep.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.slept...)
}
