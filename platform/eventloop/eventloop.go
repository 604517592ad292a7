// Package eventloop runs the single-threaded UI loop: timers, buttons, key
// dispatch and line-by-line redraw, once per pass, forever.
package eventloop

import (
	"errors"
	"fmt"
	"time"

	"tdisplay/hal"
	"tdisplay/platform/linebuf"
)

// ErrNoButtons is returned by New when no button is bound.
var ErrNoButtons = errors.New("eventloop: no buttons bound")

// Clock reports the time since boot.
type Clock interface {
	SinceStart() time.Duration
}

// Button is a gesture engine polled once per pass.
type Button interface {
	Tick()
	IsClicked() bool
	Holds() uint32
	Reset()
}

// Window is the UI the loop drives.
type Window interface {
	UpdateTimers(now time.Duration)
	DispatchKey(k hal.KeyCode)
	DrawIfNeeded(p linebuf.Provider) error
}

// Binding maps the gestures of one button to keys.
type Binding struct {
	Name   string
	Button Button
	Click  hal.KeyCode
	Hold   hal.KeyCode
}

// Config wires a Loop. Window may be nil and set later with SetWindow.
type Config struct {
	Clock   Clock
	Window  Window
	Lines   linebuf.Provider
	Buttons []Binding
	Logger  hal.Logger
}

// Loop is the cooperative scheduler.
type Loop struct {
	clock   Clock
	window  Window
	lines   linebuf.Provider
	buttons []Binding
	log     hal.Logger

	iterations uint64
}

// New validates cfg and returns a loop ready to Step.
func New(cfg Config) (*Loop, error) {
	if cfg.Clock == nil {
		return nil, errors.New("eventloop: clock is required")
	}
	if cfg.Lines == nil {
		return nil, errors.New("eventloop: line provider is required")
	}
	if len(cfg.Buttons) == 0 {
		return nil, ErrNoButtons
	}
	for i, b := range cfg.Buttons {
		if b.Button == nil {
			return nil, fmt.Errorf("eventloop: binding %d (%s) has no button", i, b.Name)
		}
	}
	return &Loop{
		clock:   cfg.Clock,
		window:  cfg.Window,
		lines:   cfg.Lines,
		buttons: append([]Binding(nil), cfg.Buttons...),
		log:     cfg.Logger,
	}, nil
}

// SetWindow replaces the window driven by the loop.
func (l *Loop) SetWindow(w Window) { l.window = w }

// Iterations returns the number of completed passes.
func (l *Loop) Iterations() uint64 { return l.iterations }

// Step runs one pass. A non-nil error comes from the display and is fatal.
//
// Order within a pass: timers, button sampling, key dispatch, redraw, button
// reset. Buttons are ticked and reset even when no window is set so their
// debounce state keeps up with the pins.
func (l *Loop) Step() error {
	if l.window != nil {
		l.window.UpdateTimers(l.clock.SinceStart())
	}

	for _, b := range l.buttons {
		b.Button.Tick()
	}

	if l.window != nil {
		for _, b := range l.buttons {
			switch {
			case b.Button.IsClicked():
				l.window.DispatchKey(b.Click)
			case b.Button.Holds() == 1:
				l.logf("%s: Held", b.Name)
				l.window.DispatchKey(b.Hold)
			}
		}
		if err := l.window.DrawIfNeeded(l.lines); err != nil {
			return err
		}
	}

	for _, b := range l.buttons {
		b.Button.Reset()
	}
	l.iterations++
	return nil
}

// Run calls Step until it fails and returns that error.
func (l *Loop) Run() error {
	for {
		if err := l.Step(); err != nil {
			return err
		}
	}
}

func (l *Loop) logf(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.WriteLineString(fmt.Sprintf(format, args...))
}
