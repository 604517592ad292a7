package ui

import (
	"image/color"

	"tinygo.org/x/tinyfont"

	"tdisplay/hal"
)

// Fill is a solid rectangle.
type Fill struct {
	w     *Window
	r     Rect
	color hal.RGB565
}

// NewFill adds a solid rectangle to the window.
func (w *Window) NewFill(r Rect, c hal.RGB565) *Fill {
	f := &Fill{w: w, r: r, color: c}
	w.Add(f)
	return f
}

func (f *Fill) Bounds() Rect { return f.r }

// SetColor changes the fill color.
func (f *Fill) SetColor(c hal.RGB565) {
	if c == f.color {
		return
	}
	f.color = c
	f.w.Invalidate(f.r)
}

func (f *Fill) DrawLine(y int, px []hal.RGB565) {
	x0, x1 := clipSpan(f.r.X, f.r.X+f.r.W, len(px))
	for x := x0; x < x1; x++ {
		px[x] = f.color
	}
}

// Align is the horizontal placement of label text inside its bounds.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Label is a line of text drawn with a tinyfont font.
type Label struct {
	w     *Window
	r     Rect
	font  tinyfont.Fonter
	text  string
	color hal.RGB565
	align Align

	// Text origin in window pixels; baseline is y.
	ox, oy int16
}

// NewLabel adds a label. The label is as tall as the font's line advance.
func (w *Window) NewLabel(x, y, width int, font tinyfont.Fonter, c hal.RGB565, align Align) *Label {
	l := &Label{
		w:     w,
		r:     Rect{X: x, Y: y, W: width, H: int(font.GetYAdvance())},
		font:  font,
		color: c,
		align: align,
	}
	w.Add(l)
	return l
}

func (l *Label) Bounds() Rect { return l.r }

// Text returns the current text.
func (l *Label) Text() string { return l.text }

// SetText replaces the text and damages the label when it changed.
func (l *Label) SetText(s string) {
	if s == l.text {
		return
	}
	l.text = s
	l.layout()
	l.w.Invalidate(l.r)
}

// SetColor changes the text color.
func (l *Label) SetColor(c hal.RGB565) {
	if c == l.color {
		return
	}
	l.color = c
	l.w.Invalidate(l.r)
}

func (l *Label) layout() {
	_, outbox := tinyfont.LineWidth(l.font, l.text)
	x := l.r.X
	switch l.align {
	case AlignCenter:
		x += (l.r.W - int(outbox)) / 2
	case AlignRight:
		x += l.r.W - int(outbox)
	}
	l.ox = int16(x)
	l.oy = int16(l.r.Y + baseline(l.font))
}

func (l *Label) DrawLine(y int, px []hal.RGB565) {
	if l.text == "" {
		return
	}
	t := lineTarget{
		px:   px,
		y:    int16(y),
		minX: l.r.X,
		maxX: l.r.X + l.r.W,
	}
	tinyfont.WriteLine(&t, l.font, l.ox, l.oy, l.text, l.color.RGBA())
}

// baseline is the distance from the top of a text line to its baseline. The
// tallest glyph offset of a few reference runes is used, which fits the
// bundled fonts.
func baseline(f tinyfont.Fonter) int {
	top := 0
	for _, r := range "AgM0" {
		if off := -int(f.GetGlyph(r).Info().YOffset); off > top {
			top = off
		}
	}
	if top == 0 {
		top = int(f.GetYAdvance()) - 1
	}
	return top
}

// lineTarget is a drivers.Displayer that keeps only pixels on scanline y and
// inside [minX, maxX).
type lineTarget struct {
	px         []hal.RGB565
	y          int16
	minX, maxX int
}

func (t *lineTarget) Size() (x, y int16) { return int16(len(t.px)), t.y + 1 }

func (t *lineTarget) SetPixel(x, y int16, c color.RGBA) {
	if y != t.y {
		return
	}
	ix := int(x)
	if ix < t.minX || ix >= t.maxX || ix < 0 || ix >= len(t.px) {
		return
	}
	t.px[ix] = hal.FromRGBA(c)
}

func (t *lineTarget) Display() error { return nil }

// Bar is a horizontal gauge showing value in [0, max].
type Bar struct {
	w      *Window
	r      Rect
	fg, bg hal.RGB565
	border hal.RGB565
	value  int
	max    int
}

// NewBar adds a bar with a one pixel border.
func (w *Window) NewBar(r Rect, max int, fg, bg, border hal.RGB565) *Bar {
	if max <= 0 {
		max = 1
	}
	b := &Bar{w: w, r: r, fg: fg, bg: bg, border: border, max: max}
	w.Add(b)
	return b
}

func (b *Bar) Bounds() Rect { return b.r }

// Value returns the current value.
func (b *Bar) Value() int { return b.value }

// SetValue clamps v to [0, max] and damages the bar when it changed.
func (b *Bar) SetValue(v int) {
	if v < 0 {
		v = 0
	}
	if v > b.max {
		v = b.max
	}
	if v == b.value {
		return
	}
	b.value = v
	b.w.Invalidate(b.r)
}

// fillWidth is the width of the filled part inside the border.
func (b *Bar) fillWidth() int {
	inner := b.r.W - 2
	if inner <= 0 {
		return 0
	}
	return inner * b.value / b.max
}

func (b *Bar) DrawLine(y int, px []hal.RGB565) {
	x0, x1 := clipSpan(b.r.X, b.r.X+b.r.W, len(px))
	if x0 >= x1 {
		return
	}
	if y == b.r.Y || y == b.r.Y+b.r.H-1 {
		for x := x0; x < x1; x++ {
			px[x] = b.border
		}
		return
	}
	split := b.r.X + 1 + b.fillWidth()
	for x := x0; x < x1; x++ {
		switch {
		case x == b.r.X || x == b.r.X+b.r.W-1:
			px[x] = b.border
		case x < split:
			px[x] = b.fg
		default:
			px[x] = b.bg
		}
	}
}

func clipSpan(x0, x1, width int) (int, int) {
	if x0 < 0 {
		x0 = 0
	}
	if x1 > width {
		x1 = width
	}
	return x0, x1
}
