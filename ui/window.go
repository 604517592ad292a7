// Package ui is a small retained-mode window renderer for panels without a
// framebuffer. Widgets paint one scanline at a time; the window tracks which
// lines changed and only those are sent to the display.
package ui

import (
	"time"

	"tdisplay/hal"
	"tdisplay/platform/linebuf"
)

// Rect is an axis-aligned rectangle in window pixels.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) hasLine(y int) bool { return y >= r.Y && y < r.Y+r.H }

// Widget paints itself into a scanline. px holds columns [0, len(px)) of
// line y.
type Widget interface {
	Bounds() Rect
	DrawLine(y int, px []hal.RGB565)
}

// Option configures a Window.
type Option func(*Window)

// WithBackground sets the color painted under all widgets.
func WithBackground(c hal.RGB565) Option {
	return func(w *Window) { w.bg = c }
}

// Window is a fixed-size top-level window.
type Window struct {
	width  int
	height int
	bg     hal.RGB565

	widgets []Widget
	onKey   func(hal.KeyCode)

	now    time.Duration
	timers []*Timer

	// Damaged lines are [dirtyLo, dirtyHi); empty when dirtyLo >= dirtyHi.
	dirtyLo int
	dirtyHi int
}

// NewWindow creates a window. The whole window starts damaged so the first
// draw paints every line.
func NewWindow(width, height int, opts ...Option) *Window {
	w := &Window{width: width, height: height}
	for _, opt := range opts {
		opt(w)
	}
	w.InvalidateAll()
	return w
}

// Size returns the window size in pixels.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// Add appends a widget on top of the existing ones and damages its area.
func (w *Window) Add(wd Widget) {
	w.widgets = append(w.widgets, wd)
	w.Invalidate(wd.Bounds())
}

// OnKey sets the key handler.
func (w *Window) OnKey(fn func(hal.KeyCode)) { w.onKey = fn }

// DispatchKey delivers a key press to the handler.
func (w *Window) DispatchKey(k hal.KeyCode) {
	if w.onKey != nil {
		w.onKey(k)
	}
}

// Invalidate marks the lines covered by r for redraw.
func (w *Window) Invalidate(r Rect) {
	lo, hi := r.Y, r.Y+r.H
	if lo < 0 {
		lo = 0
	}
	if hi > w.height {
		hi = w.height
	}
	if lo >= hi {
		return
	}
	if w.dirtyLo >= w.dirtyHi {
		w.dirtyLo, w.dirtyHi = lo, hi
		return
	}
	if lo < w.dirtyLo {
		w.dirtyLo = lo
	}
	if hi > w.dirtyHi {
		w.dirtyHi = hi
	}
}

// InvalidateAll damages the whole window.
func (w *Window) InvalidateAll() {
	w.Invalidate(Rect{W: w.width, H: w.height})
}

// Dirty reports whether any line needs a redraw.
func (w *Window) Dirty() bool { return w.dirtyLo < w.dirtyHi }

// DrawIfNeeded renders the damaged lines through p, or does nothing when
// nothing changed. Damage is kept if rendering fails.
func (w *Window) DrawIfNeeded(p linebuf.Provider) error {
	if !w.Dirty() {
		return nil
	}
	if err := w.RenderByLine(p); err != nil {
		return err
	}
	w.dirtyLo, w.dirtyHi = 0, 0
	return nil
}

// RenderByLine paints every damaged line, top to bottom, one ProcessLine call
// per line. It stops at the first error.
func (w *Window) RenderByLine(p linebuf.Provider) error {
	for y := w.dirtyLo; y < w.dirtyHi; y++ {
		line := y
		if err := p.ProcessLine(line, 0, w.width, func(px []hal.RGB565) {
			w.paintLine(line, px)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Window) paintLine(y int, px []hal.RGB565) {
	for i := range px {
		px[i] = w.bg
	}
	for _, wd := range w.widgets {
		if wd.Bounds().hasLine(y) {
			wd.DrawLine(y, px)
		}
	}
}
