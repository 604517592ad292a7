// Package linebuf streams a frame to a display one scanline at a time
// through a single reusable buffer.
package linebuf

import (
	"errors"
	"fmt"

	"tdisplay/hal"
)

// ErrOutOfBounds rejects a line or column span outside the display.
var ErrOutOfBounds = errors.New("linebuf: line or span outside the display")

// Provider is what a line-by-line software renderer draws into. fill receives
// the pixels of columns [start, end) of the given line and must not keep the
// slice.
type Provider interface {
	ProcessLine(line, start, end int, fill func(px []hal.RGB565)) error
}

// Stats counts the traffic sent to the display.
type Stats struct {
	Lines  uint64
	Pixels uint64
}

// Renderer is a Provider backed by a hal.PixelWriter.
type Renderer struct {
	dst    hal.PixelWriter
	width  int
	height int
	buf    []hal.RGB565
	stats  Stats
}

// New returns a renderer for a width x height display. The scanline buffer is
// allocated here, once.
func New(dst hal.PixelWriter, width, height int) (*Renderer, error) {
	if dst == nil {
		return nil, errors.New("linebuf: nil display")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("linebuf: invalid size %dx%d", width, height)
	}
	return &Renderer{
		dst:    dst,
		width:  width,
		height: height,
		buf:    make([]hal.RGB565, width),
	}, nil
}

// ForDisplay returns a renderer sized to d.
func ForDisplay(d hal.Display) (*Renderer, error) {
	if d == nil {
		return nil, errors.New("linebuf: nil display")
	}
	w, h := d.Size()
	return New(d, w, h)
}

// ProcessLine lets fill draw columns [start, end) of line into the scanline
// buffer and then writes them to the display as a one-row region. A failed
// write is returned as is; the frame on the display is incomplete after it.
func (r *Renderer) ProcessLine(line, start, end int, fill func(px []hal.RGB565)) error {
	if line < 0 || line >= r.height || start < 0 || start > end || end > r.width {
		return fmt.Errorf("%w: line %d columns [%d,%d) on %dx%d", ErrOutOfBounds, line, start, end, r.width, r.height)
	}
	px := r.buf[start:end]
	fill(px)
	if len(px) == 0 {
		return nil
	}
	if err := r.dst.SetPixels(start, line, end-1, line, px); err != nil {
		return fmt.Errorf("linebuf: write line %d: %w", line, err)
	}
	r.stats.Lines++
	r.stats.Pixels += uint64(len(px))
	return nil
}

// Size returns the display size the renderer was built for.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Stats returns the lines and pixels written so far.
func (r *Renderer) Stats() Stats { return r.stats }
