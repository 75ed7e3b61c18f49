// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet interval after the last keystroke before
// the query text becomes effective.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays a call until input activity pauses. Every Debounce call
// restarts the timer; only the last scheduled function runs. There is no
// leading-edge call and no maximum wait.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	seq      uint64
	stopped  bool
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Debounce schedules fn to run after the quiet interval, replacing any
// pending call. It is a no-op after Stop.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.duration, func() {
		// A timer that already fired can't be stopped, so re-check that
		// this call is still the latest one.
		d.mu.Lock()
		current := seq == d.seq && !d.stopped
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Pending reports whether a call is scheduled and has not run yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop drops any pending call and rejects future ones.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
