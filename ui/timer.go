package ui

import "time"

// Timer calls a function from UpdateTimers once its deadline has passed.
type Timer struct {
	interval time.Duration
	next     time.Duration
	repeat   bool
	stopped  bool
	fn       func(now time.Duration)
}

// Stop cancels the timer. It is safe to call from the timer's own callback.
func (t *Timer) Stop() { t.stopped = true }

// Every runs fn every d, starting d from now.
func (w *Window) Every(d time.Duration, fn func(now time.Duration)) *Timer {
	return w.addTimer(d, true, fn)
}

// After runs fn once, d from now.
func (w *Window) After(d time.Duration, fn func(now time.Duration)) *Timer {
	return w.addTimer(d, false, fn)
}

func (w *Window) addTimer(d time.Duration, repeat bool, fn func(time.Duration)) *Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	t := &Timer{interval: d, next: w.now + d, repeat: repeat, fn: fn}
	w.timers = append(w.timers, t)
	return t
}

// UpdateTimers advances the window clock to now and fires due timers. A
// repeating timer that fell behind fires once and is rescheduled from now.
func (w *Window) UpdateTimers(now time.Duration) {
	if now < w.now {
		return
	}
	w.now = now

	due := len(w.timers)
	for i := 0; i < due; i++ {
		t := w.timers[i]
		if t.stopped || now < t.next {
			continue
		}
		t.fn(now)
		if !t.repeat {
			t.stopped = true
			continue
		}
		t.next += t.interval
		if t.next <= now {
			t.next = now + t.interval
		}
	}

	live := w.timers[:0]
	for _, t := range w.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(w.timers); i++ {
		w.timers[i] = nil
	}
	w.timers = live
}

// Now returns the window clock as of the last UpdateTimers.
func (w *Window) Now() time.Duration { return w.now }

// ActiveTimers returns the number of pending timers.
func (w *Window) ActiveTimers() int { return len(w.timers) }
