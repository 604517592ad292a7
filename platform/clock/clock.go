// Package clock turns a free-running hardware counter into monotonic
// instants for the UI timers and the button engines.
package clock

import (
	"sync"
	"time"
)

// Source is a microsecond counter that starts at boot and never goes backwards.
type Source interface {
	Micros() uint64
}

// Instant is an opaque point in time since boot.
type Instant struct {
	d time.Duration
}

// Sub returns the time elapsed from earlier to i. It is only meaningful when
// earlier was sampled first; if not, the result is clamped to zero.
func (i Instant) Sub(earlier Instant) time.Duration {
	if i.d < earlier.d {
		return 0
	}
	return i.d - earlier.d
}

// Duration returns the time since boot, for logging.
func (i Instant) Duration() time.Duration { return i.d }

// Clock samples a Source.
type Clock struct {
	src Source
}

// New returns a clock reading src.
func New(src Source) *Clock {
	return &Clock{src: src}
}

// Now returns the current instant.
func (c *Clock) Now() Instant {
	return Instant{d: c.SinceStart()}
}

// SinceStart returns the time since the hardware counter started.
func (c *Clock) SinceStart() time.Duration {
	return time.Duration(c.src.Micros()) * time.Microsecond
}

// Manual is a Source that only moves when told to.
type Manual struct {
	mu sync.Mutex
	us uint64
}

// Micros returns the current counter value.
func (m *Manual) Micros() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.us
}

// Advance moves the counter forward by d. Negative values are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.us += uint64(d / time.Microsecond)
}

// Set moves the counter to d since boot. It never moves backwards.
func (m *Manual) Set(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	us := uint64(d / time.Microsecond)
	if d > 0 && us > m.us {
		m.us = us
	}
}
