// Package app assembles the backend: clock, buttons, line renderer, window
// and event loop, on top of whatever HAL the entry point provides.
package app

import (
	"errors"
	"fmt"

	"tdisplay/hal"
	"tdisplay/internal/buildinfo"
	"tdisplay/platform/button"
	"tdisplay/platform/clock"
	"tdisplay/platform/eventloop"
	"tdisplay/platform/linebuf"
)

// Config holds the tunables of the two board buttons.
type Config struct {
	Up   button.Config
	Down button.Config
}

// DefaultConfig uses the stock gesture timing for both buttons.
func DefaultConfig() Config {
	return Config{Up: button.DefaultConfig(), Down: button.DefaultConfig()}
}

// withDefaults fills in a button left entirely unset. A partly set button is
// kept as is and checked by button.Config.Validate.
func (c Config) withDefaults() Config {
	if c.Up == (button.Config{}) {
		c.Up = button.DefaultConfig()
	}
	if c.Down == (button.Config{}) {
		c.Down = button.DefaultConfig()
	}
	return c
}

// backend is one assembled instance of the loop and its scene.
type backend struct {
	log    hal.Logger
	loop   *eventloop.Loop
	lines  *linebuf.Renderer
	scene  *scene
	failed bool
}

// New builds the backend on h and returns the function that runs one loop
// pass. The returned step logs and returns the first fatal error; after that
// the caller must stop.
func New(h hal.HAL, cfg Config) (func() error, error) {
	b, err := build(h, cfg)
	if err != nil {
		return nil, err
	}
	return b.step, nil
}

func build(h hal.HAL, cfg Config) (*backend, error) {
	if h == nil {
		return nil, errors.New("app: nil hal")
	}
	cfg = cfg.withDefaults()
	log := h.Logger()

	bootStep(log, "clock")
	clk := clock.New(h.Clock())

	bootStep(log, "buttons")
	pins := h.Buttons()
	up, err := button.New(pins.Up, clk, cfg.Up)
	if err != nil {
		return nil, fmt.Errorf("app: up button: %w", err)
	}
	down, err := button.New(pins.Down, clk, cfg.Down)
	if err != nil {
		return nil, fmt.Errorf("app: down button: %w", err)
	}

	bootStep(log, "display")
	lines, err := linebuf.ForDisplay(h.Display())
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	width, height := lines.Size()

	bootStep(log, "window")
	sc := newScene(width, height)

	loop, err := eventloop.New(eventloop.Config{
		Clock:  clk,
		Window: sc.win,
		Lines:  lines,
		Buttons: []eventloop.Binding{
			{Name: "up", Button: up, Click: hal.KeyUp, Hold: hal.KeyRight},
			{Name: "down", Button: down, Click: hal.KeyDown, Hold: hal.KeyLeft},
		},
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	logf(log, "tdisplay %s: %dx%d panel, debounce %v, hold %v",
		buildinfo.Short(), width, height, cfg.Up.Debounce, cfg.Up.Hold)
	bootStep(log, buildinfo.Long())

	return &backend{log: log, loop: loop, lines: lines, scene: sc}, nil
}

func (b *backend) step() (err error) {
	if b.failed {
		return errStopped
	}
	defer func() {
		if r := recover(); r != nil {
			err = recovered(b.log, r)
		}
		if err != nil {
			b.failed = true
		}
	}()
	if err := b.loop.Step(); err != nil {
		return fatal(b.log, err)
	}
	return nil
}

var errStopped = errors.New("app: stopped after a fatal error")

// Run builds the backend and runs the loop until a fatal error, which it
// returns after logging it.
func Run(h hal.HAL, cfg Config) error {
	step, err := New(h, cfg)
	if err != nil {
		if h != nil {
			return fatal(h.Logger(), err)
		}
		return err
	}
	for {
		if err := step(); err != nil {
			return err
		}
	}
}

func fatal(log hal.Logger, err error) error {
	logf(log, "fatal: %v", err)
	return err
}

func logf(log hal.Logger, format string, args ...any) {
	if log == nil {
		return
	}
	log.WriteLineString(fmt.Sprintf(format, args...))
}
