//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type hostHAL struct {
	logger  *hostLogger
	clock   *hostClock
	buttons Buttons
	kbd     *hostKeyboard
	bus     *emulatedST7789
	panel   *Panel
}

// New returns a host HAL: an emulated T-Display whose buttons follow the
// arrow keys of the host window.
func New() (HAL, error) {
	return newHost(nil)
}

func newHost(signals *[2]SignalConfig) (*hostHAL, error) {
	logger := &hostLogger{w: os.Stdout}

	bus := newEmulatedST7789(TDisplayPanel)
	cfg := TDisplayPanel
	cfg.Sleep = func(time.Duration) {} // the emulator needs no settle time
	panel, err := NewPanel(bus, bus.dcPin(), nil, nil, cfg)
	if err != nil {
		return nil, err
	}
	if err := panel.Configure(); err != nil {
		return nil, fmt.Errorf("hal: display init: %w", err)
	}

	h := &hostHAL{
		logger: logger,
		clock:  newHostClock(),
		bus:    bus,
		panel:  panel,
	}
	if signals != nil {
		// Buttons are wired active low, like the board.
		h.buttons = Buttons{
			Up:   newSignalPin(signals[0], true),
			Down: newSignalPin(signals[1], true),
		}
	} else {
		h.kbd = newHostKeyboard()
		h.buttons = Buttons{Up: h.kbd.up, Down: h.kbd.down}
	}
	return h, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) Buttons() Buttons { return h.buttons }
func (h *hostHAL) Display() Display { return h.panel }

func (h *hostHAL) logStats() {
	s := h.bus.stats()
	h.logger.WriteLineString(fmt.Sprintf("panel: commands=%d pixels=%d awake=%v on=%v inverted=%v",
		s.Commands, s.Pixels, s.Awake, s.On, s.Inverted))
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
