// Package scheduler implements the countdown that drives periodic feed
// refreshes. The countdown advances only through explicit Tick calls, so
// tests simulate time by ticking instead of sleeping; production feeds it
// from a one-second ticker via Run.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Countdown fires a callback every interval's worth of ticks. Pausing
// suspends the countdown without losing the remaining time, and the
// countdown pauses itself while a fired callback is still in flight, so at
// most one refresh runs at a time.
type Countdown struct {
	mu        sync.Mutex
	interval  int
	remaining int
	paused    bool
	inFlight  bool
	fire      func()
}

// NewCountdown creates a countdown that calls fire after intervalSeconds
// ticks. Intervals below 1 are clamped to 1.
func NewCountdown(intervalSeconds int, fire func()) *Countdown {
	if intervalSeconds < 1 {
		intervalSeconds = 1
	}
	return &Countdown{
		interval:  intervalSeconds,
		remaining: intervalSeconds,
		fire:      fire,
	}
}

// Tick advances the countdown by one second. When it reaches zero the
// callback fires and the countdown resets; ticks arriving while the
// callback is still running are ignored.
func (c *Countdown) Tick() {
	c.mu.Lock()

	if c.paused || c.inFlight {
		c.mu.Unlock()
		return
	}

	c.remaining--
	if c.remaining > 0 {
		c.mu.Unlock()
		return
	}

	c.remaining = c.interval
	c.inFlight = true
	fire := c.fire
	c.mu.Unlock()

	fire()

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// Pause suspends the countdown, preserving the remaining time.
func (c *Countdown) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
	log.Debug().Msg("Refresh countdown paused")
}

// Resume releases a pause; the countdown continues from where it stopped.
func (c *Countdown) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
	log.Debug().Msg("Refresh countdown resumed")
}

// Paused reports whether the countdown is operator-paused.
func (c *Countdown) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Remaining returns the seconds left until the next fire.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// SetInterval reconfigures the interval. The remaining countdown is clamped
// down if it now exceeds the new interval.
func (c *Countdown) SetInterval(intervalSeconds int) {
	if intervalSeconds < 1 {
		intervalSeconds = 1
	}
	c.mu.Lock()
	c.interval = intervalSeconds
	if c.remaining > intervalSeconds {
		c.remaining = intervalSeconds
	}
	c.mu.Unlock()
}

// Run feeds the countdown from a one-second wall-clock ticker until the
// context is cancelled.
func (c *Countdown) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
