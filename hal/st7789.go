package hal

import (
	"errors"
	"fmt"
	"time"

	"tinygo.org/x/drivers"
)

// ST7789 commands used by Panel.
const (
	st7789SWRESET = 0x01
	st7789SLPOUT  = 0x11
	st7789NORON   = 0x13
	st7789INVOFF  = 0x20
	st7789INVON   = 0x21
	st7789DISPON  = 0x29
	st7789CASET   = 0x2A
	st7789RASET   = 0x2B
	st7789RAMWR   = 0x2C
	st7789MADCTL  = 0x36
	st7789COLMOD  = 0x3A
)

// PanelConfig describes how the visible area maps into controller RAM.
type PanelConfig struct {
	Width        int
	Height       int
	ColumnOffset int
	RowOffset    int
	Invert       bool
	MADCTL       byte

	// Sleep waits between init steps. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// TDisplayPanel is the ST7789 on the ESP32 T-Display board: 135x240 in
// portrait, offset (52, 40) into the 240x320 controller RAM, inverted panel.
var TDisplayPanel = PanelConfig{
	Width:        135,
	Height:       240,
	ColumnOffset: 52,
	RowOffset:    40,
	Invert:       true,
}

var errPanelGeometry = errors.New("st7789: invalid geometry")

// Panel drives an ST7789 controller over SPI in 16bpp mode.
type Panel struct {
	spi drivers.SPI
	dc  OutputPin
	cs  OutputPin
	rst OutputPin
	cfg PanelConfig

	cmdBuf [1]byte
	argBuf [4]byte
	txBuf  []byte
}

// NewPanel returns a panel on bus. cs and rst may be nil when the board ties
// them off or the bus device already handles chip select.
func NewPanel(bus drivers.SPI, dc, cs, rst OutputPin, cfg PanelConfig) (*Panel, error) {
	if bus == nil || dc == nil {
		return nil, errors.New("st7789: bus and dc pin are required")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.ColumnOffset < 0 || cfg.RowOffset < 0 {
		return nil, errPanelGeometry
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	return &Panel{
		spi:   bus,
		dc:    dc,
		cs:    cs,
		rst:   rst,
		cfg:   cfg,
		txBuf: make([]byte, cfg.Width*2),
	}, nil
}

// Size returns the visible area in pixels.
func (d *Panel) Size() (width, height int) { return d.cfg.Width, d.cfg.Height }

// Configure resets the controller and runs the init sequence.
func (d *Panel) Configure() error {
	d.reset()

	steps := []struct {
		cmd  byte
		data []byte
		wait time.Duration
	}{
		{cmd: st7789SWRESET, wait: 150 * time.Millisecond},
		{cmd: st7789SLPOUT, wait: 120 * time.Millisecond},
		{cmd: st7789COLMOD, data: []byte{0x55}, wait: 10 * time.Millisecond}, // 16bpp
		{cmd: st7789MADCTL, data: []byte{d.cfg.MADCTL}},
		{cmd: d.inversionCmd()},
		{cmd: st7789NORON, wait: 10 * time.Millisecond},
		{cmd: st7789DISPON, wait: 10 * time.Millisecond},
	}
	for _, s := range steps {
		if err := d.cmd(s.cmd, s.data...); err != nil {
			return fmt.Errorf("st7789: init 0x%02X: %w", s.cmd, err)
		}
		if s.wait > 0 {
			d.cfg.Sleep(s.wait)
		}
	}
	return nil
}

func (d *Panel) inversionCmd() byte {
	if d.cfg.Invert {
		return st7789INVON
	}
	return st7789INVOFF
}

func (d *Panel) reset() {
	if d.rst == nil {
		return
	}
	d.rst.High()
	d.cfg.Sleep(10 * time.Millisecond)
	d.rst.Low()
	d.cfg.Sleep(10 * time.Millisecond)
	d.rst.High()
	d.cfg.Sleep(120 * time.Millisecond)
}

// SetPixels writes an inclusive rectangle of pixels.
func (d *Panel) SetPixels(x0, y0, x1, y1 int, px []RGB565) error {
	if x0 < 0 || y0 < 0 || x1 < x0 || y1 < y0 || x1 >= d.cfg.Width || y1 >= d.cfg.Height {
		return fmt.Errorf("st7789: region (%d,%d)-(%d,%d) outside %dx%d", x0, y0, x1, y1, d.cfg.Width, d.cfg.Height)
	}
	n := (x1 - x0 + 1) * (y1 - y0 + 1)
	if len(px) < n {
		return fmt.Errorf("st7789: %d pixels for a %d pixel region", len(px), n)
	}

	if err := d.setWindow(x0, y0, x1, y1); err != nil {
		return err
	}
	if err := d.cmd(st7789RAMWR); err != nil {
		return fmt.Errorf("st7789: ramwr: %w", err)
	}

	d.csLow()
	defer d.csHigh()
	d.dc.High()

	chunk := d.txBuf
	for off := 0; off < n; {
		k := len(chunk) / 2
		if k > n-off {
			k = n - off
		}
		for i, p := range px[off : off+k] {
			// Controller RAM takes RGB565 big-endian.
			chunk[2*i] = byte(p >> 8)
			chunk[2*i+1] = byte(p)
		}
		if err := d.spi.Tx(chunk[:2*k], nil); err != nil {
			return fmt.Errorf("st7789: pixel data: %w", err)
		}
		off += k
	}
	return nil
}

func (d *Panel) setWindow(x0, y0, x1, y1 int) error {
	cx0 := uint16(x0 + d.cfg.ColumnOffset)
	cx1 := uint16(x1 + d.cfg.ColumnOffset)
	ry0 := uint16(y0 + d.cfg.RowOffset)
	ry1 := uint16(y1 + d.cfg.RowOffset)

	if err := d.cmd4(st7789CASET, cx0, cx1); err != nil {
		return fmt.Errorf("st7789: caset: %w", err)
	}
	if err := d.cmd4(st7789RASET, ry0, ry1); err != nil {
		return fmt.Errorf("st7789: raset: %w", err)
	}
	return nil
}

func (d *Panel) cmd4(cmd byte, a, b uint16) error {
	d.argBuf = [4]byte{byte(a >> 8), byte(a), byte(b >> 8), byte(b)}
	return d.cmd(cmd, d.argBuf[:]...)
}

func (d *Panel) cmd(cmd byte, data ...byte) error {
	d.csLow()
	defer d.csHigh()

	d.dc.Low()
	d.cmdBuf[0] = cmd
	if err := d.spi.Tx(d.cmdBuf[:], nil); err != nil {
		return err
	}
	d.dc.High()
	if len(data) > 0 {
		if err := d.spi.Tx(data, nil); err != nil {
			return err
		}
	}
	return nil
}

func (d *Panel) csLow() {
	if d.cs != nil {
		d.cs.Low()
	}
}

func (d *Panel) csHigh() {
	if d.cs != nil {
		d.cs.High()
	}
}
