package clock

import (
	"testing"
	"time"
)

const testTick = 10 * time.Millisecond

// waitWithin reports whether Wait returned before the timeout.
func waitWithin(c *Clock, timeout time.Duration) bool {
	joined := make(chan struct{})
	go func() {
		c.Wait()
		close(joined)
	}()
	select {
	case <-joined:
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestClockReachesZero(t *testing.T) {
	start := time.Now()
	c := Start(3, WithTick(testTick))
	if !waitWithin(c, 3*testTick+time.Second) {
		t.Fatalf("clock did not expire in time")
	}
	if !c.Expired() {
		t.Fatalf("expected expired flag")
	}
	if c.Remaining() != 0 {
		t.Fatalf("expected remaining 0, got %d", c.Remaining())
	}
	if elapsed := time.Since(start); elapsed < 3*testTick {
		t.Fatalf("clock expired too early after %v", elapsed)
	}
}

func TestClockMonotonic(t *testing.T) {
	c := Start(5, WithTick(testTick))
	prev := c.Remaining()
	if prev != 5 {
		t.Fatalf("expected initial remaining 5, got %d", prev)
	}
	for !c.Expired() {
		cur := c.Remaining()
		if cur > prev {
			t.Fatalf("remaining increased from %d to %d", prev, cur)
		}
		prev = cur
		time.Sleep(time.Millisecond)
	}
	c.Wait()
}

func TestRequestStop(t *testing.T) {
	c := Start(100, WithTick(testTick))
	c.RequestStop()
	c.RequestStop()
	if !waitWithin(c, time.Second) {
		t.Fatalf("clock did not stop")
	}
	if !c.Expired() {
		t.Fatalf("expected expired after stop")
	}
	if c.Remaining() <= 0 {
		t.Fatalf("expected remaining to be left untouched on stop, got %d", c.Remaining())
	}
}

func TestZeroDuration(t *testing.T) {
	c := Start(0)
	c.Wait()
	if !c.Expired() || c.Remaining() != 0 {
		t.Fatalf("expected immediate expiry, expired=%v remaining=%d", c.Expired(), c.Remaining())
	}
}
