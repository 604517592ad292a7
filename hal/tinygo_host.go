//go:build tinygo && !baremetal

package hal

import (
	"fmt"
	"runtime"
	"time"
)

type tinyGoHostHAL struct {
	logger  *tinyGoHostLogger
	clock   *hostClock
	buttons Buttons
	bus     *emulatedST7789
	panel   *Panel
}

// New returns a TinyGo-on-host HAL: the emulated panel with the demo button
// script, for `tinygo run` on targets without a pin mapping.
func New() (HAL, error) {
	l := &tinyGoHostLogger{}
	bus := newEmulatedST7789(TDisplayPanel)
	cfg := TDisplayPanel
	cfg.Sleep = func(time.Duration) {}
	panel, err := NewPanel(bus, bus.dcPin(), nil, nil, cfg)
	if err != nil {
		return nil, err
	}
	if err := panel.Configure(); err != nil {
		return nil, fmt.Errorf("hal: display init: %w", err)
	}
	l.WriteLineString(fmt.Sprintf("hal: emulated panel (tinygo/%s)", runtime.GOOS))
	return &tinyGoHostHAL{
		logger: l,
		clock:  newHostClock(),
		buttons: Buttons{
			Up:   newSignalPin(demoUpSignal, true),
			Down: newSignalPin(demoDownSignal, true),
		},
		bus:   bus,
		panel: panel,
	}, nil
}

// Console returns the stdout logger.
func Console() Logger { return &tinyGoHostLogger{} }

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHostHAL) Buttons() Buttons { return h.buttons }
func (h *tinyGoHostHAL) Display() Display { return h.panel }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
