// Package clock abstracts time operations so that the engine can be
// driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Clock is the time source injected into the engine. Production code
// uses New; tests use NewFake and control time explicitly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Since returns the duration elapsed since t.
	Since(t time.Time) time.Duration
	// AfterFunc waits for duration d, then calls f in its own
	// goroutine. The returned Timer cancels the pending call with Stop.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a scheduled one-shot call.
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call
	// stopped the timer before it ran.
	Stop() bool
}

type realClock struct{}

// New returns a Clock backed by the standard time package.
func New() Clock {
	return &realClock{}
}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func (c *realClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (c *realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Fake is a manually-advanced Clock for tests.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	pending []*fakeTimer
}

type fakeTimer struct {
	clock   *Fake
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

// NewFake returns a Fake clock frozen at the given time.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *Fake) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.pending = append(c.pending, t)

	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}

	t.stopped = true

	return true
}

// Advance moves the clock forward and fires any timers whose deadline
// is reached, in deadline order. Timer callbacks run synchronously on
// the calling goroutine.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)

	var due []*fakeTimer

	for _, t := range c.pending {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true

			due = append(due, t)
		}
	}

	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}
