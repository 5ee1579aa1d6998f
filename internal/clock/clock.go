// Package clock runs the session countdown on its own goroutine.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Option configures a Clock.
type Option func(*Clock)

// WithTick overrides the length of one countdown step.
func WithTick(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.tick = d
		}
	}
}

// Clock is a countdown handle. Remaining is written only by the clock
// goroutine. Expired is set once and never cleared.
type Clock struct {
	duration  int
	tick      time.Duration
	remaining atomic.Int64
	expired   atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

// Start begins counting down duration steps and returns immediately.
func Start(duration int, opts ...Option) *Clock {
	c := &Clock{
		duration: duration,
		tick:     time.Second,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.remaining.Store(int64(duration))
	go c.run(time.Now())
	return c
}

// Remaining returns the whole steps left.
func (c *Clock) Remaining() int {
	return int(c.remaining.Load())
}

// Expired reports whether the countdown has ended or was stopped.
func (c *Clock) Expired() bool {
	return c.expired.Load()
}

// RequestStop marks the clock expired and asks the goroutine to exit.
// It is safe to call more than once and from any goroutine.
func (c *Clock) RequestStop() {
	c.expired.Store(true)
	c.stopOnce.Do(func() { close(c.stop) })
}

// Wait blocks until the clock goroutine has exited.
func (c *Clock) Wait() {
	<-c.done
}

func (c *Clock) run(start time.Time) {
	defer close(c.done)
	defer c.expired.Store(true)

	if c.duration <= 0 {
		c.remaining.Store(0)
		return
	}
	timer := time.NewTimer(c.tick)
	defer timer.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-timer.C:
		}
		if c.expired.Load() {
			return
		}
		elapsed := int(time.Since(start) / c.tick)
		remaining := c.duration - elapsed
		if remaining <= 0 {
			c.remaining.Store(0)
			return
		}
		if int64(remaining) < c.remaining.Load() {
			c.remaining.Store(int64(remaining))
		}
		timer.Reset(c.tick)
	}
}
