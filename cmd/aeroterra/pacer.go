package main

import "time"

// framePacer holds the demo loop at a fixed tick rate. Sleeps most of each
// interval and spins the last stretch; plain timer wakeups drift by a few
// milliseconds under load, which shows up as chunk-budget jitter in the
// streaming numbers being measured.
type framePacer struct {
	interval time.Duration
	next     time.Time
}

func newFramePacer(ticksPerSecond int) *framePacer {
	return &framePacer{interval: time.Second / time.Duration(ticksPerSecond)}
}

// Wait blocks until the next tick boundary.
func (f *framePacer) Wait() {
	if f.next.IsZero() {
		f.next = time.Now().Add(f.interval)
	} else {
		f.next = f.next.Add(f.interval)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// busy-wait the final few microseconds
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// After a hitch, resync instead of racing to catch up.
	if late := -time.Until(f.next); late > f.interval {
		f.next = time.Now().Add(f.interval)
	}
}
