//go:build !baremetal

package hal

import (
	"errors"
	"sync"
)

// emulatedST7789 decodes the SPI command stream a Panel produces and keeps
// the visible area as an RGB565 framebuffer for the host window.
type emulatedST7789 struct {
	mu sync.Mutex

	width, height  int
	colOff, rowOff int
	pix            []RGB565

	dcHigh bool
	cmd    byte
	args   [4]byte
	nargs  int

	xs, xe, ys, ye int
	x, y           int
	pending        int
	hi             byte

	inverted bool
	awake    bool
	on       bool

	commands uint64
	pixels   uint64
	fault    error
}

func newEmulatedST7789(cfg PanelConfig) *emulatedST7789 {
	return &emulatedST7789{
		width:  cfg.Width,
		height: cfg.Height,
		colOff: cfg.ColumnOffset,
		rowOff: cfg.RowOffset,
		pix:    make([]RGB565, cfg.Width*cfg.Height),
	}
}

type emulatedDC struct{ e *emulatedST7789 }

func (p emulatedDC) High() { p.e.setDC(true) }
func (p emulatedDC) Low()  { p.e.setDC(false) }

func (e *emulatedST7789) dcPin() OutputPin { return emulatedDC{e: e} }

func (e *emulatedST7789) setDC(high bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dcHigh = high
}

// fail makes every following transfer return err.
func (e *emulatedST7789) fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fault = err
}

func (e *emulatedST7789) Transfer(b byte) (byte, error) {
	if err := e.Tx([]byte{b}, nil); err != nil {
		return 0, err
	}
	return 0, nil
}

func (e *emulatedST7789) Tx(w, r []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.fault != nil {
		return e.fault
	}
	if len(r) > 0 {
		return errors.New("st7789 emulator: reads unsupported")
	}
	for _, b := range w {
		if !e.dcHigh {
			e.command(b)
			continue
		}
		e.data(b)
	}
	return nil
}

func (e *emulatedST7789) command(b byte) {
	e.commands++
	e.cmd = b
	e.nargs = 0
	e.pending = 0
	switch b {
	case st7789SWRESET:
		e.awake, e.on, e.inverted = false, false, false
	case st7789SLPOUT:
		e.awake = true
	case st7789DISPON:
		e.on = true
	case st7789INVON:
		e.inverted = true
	case st7789INVOFF:
		e.inverted = false
	case st7789RAMWR:
		e.x, e.y = e.xs, e.ys
	}
}

func (e *emulatedST7789) data(b byte) {
	switch e.cmd {
	case st7789CASET, st7789RASET:
		if e.nargs >= len(e.args) {
			return
		}
		e.args[e.nargs] = b
		e.nargs++
		if e.nargs < len(e.args) {
			return
		}
		lo := int(e.args[0])<<8 | int(e.args[1])
		hi := int(e.args[2])<<8 | int(e.args[3])
		if e.cmd == st7789CASET {
			e.xs, e.xe = lo, hi
		} else {
			e.ys, e.ye = lo, hi
		}
	case st7789RAMWR:
		if e.pending == 0 {
			e.hi = b
			e.pending = 1
			return
		}
		e.pending = 0
		e.plot(RGB565(uint16(e.hi)<<8 | uint16(b)))
	}
}

func (e *emulatedST7789) plot(p RGB565) {
	if e.y > e.ye {
		return
	}
	vx := e.x - e.colOff
	vy := e.y - e.rowOff
	if vx >= 0 && vx < e.width && vy >= 0 && vy < e.height {
		e.pix[vy*e.width+vx] = p
	}
	e.pixels++
	e.x++
	if e.x > e.xe {
		e.x = e.xs
		e.y++
	}
}

// pixelAt returns the visible pixel at (x, y).
func (e *emulatedST7789) pixelAt(x, y int) RGB565 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if x < 0 || y < 0 || x >= e.width || y >= e.height {
		return 0
	}
	return e.pix[y*e.width+x]
}

// snapshotRGBA expands the visible area into dst (4 bytes per pixel).
func (e *emulatedST7789) snapshotRGBA(dst []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, p := range e.pix {
		j := i * 4
		if j+3 >= len(dst) {
			return
		}
		r, g, b := rgb888From565(uint16(p))
		if !e.on {
			r, g, b = 0, 0, 0
		}
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}

// PanelStats counts decoded controller traffic.
type PanelStats struct {
	Commands uint64
	Pixels   uint64
	Awake    bool
	On       bool
	Inverted bool
}

func (e *emulatedST7789) stats() PanelStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return PanelStats{
		Commands: e.commands,
		Pixels:   e.pixels,
		Awake:    e.awake,
		On:       e.on,
		Inverted: e.inverted,
	}
}
