//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
)

// ESP32 T-Display wiring.
const (
	pinBacklight  = machine.GPIO4
	pinSCK        = machine.GPIO18
	pinSDO        = machine.GPIO19
	pinCS         = machine.GPIO5
	pinDC         = machine.GPIO16
	pinRST        = machine.GPIO23
	pinButtonUp   = machine.GPIO35 // input only, external pull-up
	pinButtonDown = machine.GPIO0

	spiFrequency = 60_000_000
)

type tinyGoHAL struct {
	logger  *serialLogger
	clock   tinyGoClock
	buttons Buttons
	panel   *Panel
}

// New returns the ESP32 T-Display HAL. Any error is a bring-up failure and
// leaves the board without a usable display.
func New() (HAL, error) {
	logger := &serialLogger{}

	backlight := pinBacklight
	backlight.Configure(machine.PinConfig{Mode: machine.PinOutput})
	backlight.High()

	spi := machine.SPI2
	if err := spi.Configure(machine.SPIConfig{
		Frequency: spiFrequency,
		SCK:       pinSCK,
		SDO:       pinSDO,
		SDI:       machine.NoPin,
		Mode:      0,
	}); err != nil {
		return nil, fmt.Errorf("hal: spi: %w", err)
	}

	for _, p := range []machine.Pin{pinCS, pinDC, pinRST} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	panel, err := NewPanel(spi, pinDC, pinCS, pinRST, TDisplayPanel)
	if err != nil {
		return nil, err
	}
	if err := panel.Configure(); err != nil {
		return nil, fmt.Errorf("hal: display init: %w", err)
	}

	up := pinButtonUp
	up.Configure(machine.PinConfig{Mode: machine.PinInput})
	down := pinButtonDown
	down.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	return &tinyGoHAL{
		logger:  logger,
		buttons: Buttons{Up: up, Down: down},
		panel:   panel,
	}, nil
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) Buttons() Buttons { return h.buttons }
func (h *tinyGoHAL) Display() Display { return h.panel }
