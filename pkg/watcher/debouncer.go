// Package watcher provides debouncing and file watching for parameter files.
package watcher

import (
	"sync"
	"time"

	"github.com/Dicklesworthstone/clampgen/pkg/clock"
)

// DefaultDebounceDuration is the default debounce window.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer coalesces rapid events into a single callback invocation.
// When Trigger is called multiple times within the debounce duration,
// only the last callback is executed after the duration elapses.
//
// At most one timer is pending at any time: Trigger cancels the previous
// timer before scheduling a new one.
type Debouncer struct {
	duration time.Duration
	clock    clock.Clock
	timer    clock.Timer
	mu       sync.Mutex
	seq      uint64
}

// NewDebouncer creates a new Debouncer with the specified duration.
// If duration is 0, DefaultDebounceDuration is used.
func NewDebouncer(duration time.Duration) *Debouncer {
	return NewDebouncerWithClock(duration, clock.Real())
}

// NewDebouncerWithClock is NewDebouncer with an explicit time source.
func NewDebouncerWithClock(duration time.Duration, clk clock.Clock) *Debouncer {
	if duration == 0 {
		duration = DefaultDebounceDuration
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &Debouncer{
		duration: duration,
		clock:    clk,
	}
}

// Trigger schedules the callback to be called after the debounce duration.
// If Trigger is called again before the duration elapses, the previous
// scheduled callback is cancelled and a new one is scheduled.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.duration, func() {
		shouldRun := func() bool {
			d.mu.Lock()
			defer d.mu.Unlock()

			// Only run the most recently scheduled callback. Stop() can lose
			// the race against a timer that has already fired.
			if seq != d.seq {
				return false
			}
			d.timer = nil
			return true
		}()
		if !shouldRun {
			return
		}

		callback()
	})
}

// Cancel cancels any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Invalidate any callback that might already be executing due to timer races.
	d.seq++

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a callback is scheduled and not yet run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Duration returns the debounce duration.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
