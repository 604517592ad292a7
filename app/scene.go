package app

import (
	"fmt"
	"strconv"
	"time"

	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"

	"tdisplay/hal"
	"tdisplay/internal/buildinfo"
	"tdisplay/ui"
)

const (
	gaugeMax  = 100
	smallStep = 1
	largeStep = 10
)

var (
	colorBackground = hal.RGB(0, 0, 0)
	colorHeader     = hal.RGB(0x10, 0x30, 0x70)
	colorText       = hal.RGB(0xFF, 0xFF, 0xFF)
	colorDim        = hal.RGB(0x80, 0x80, 0x80)
	colorGauge      = hal.RGB(0x20, 0xC0, 0x40)
	colorGaugeBack  = hal.RGB(0x10, 0x10, 0x10)
	colorBeatOn     = hal.RGB(0xFF, 0x40, 0x20)
)

// scene is the gauge screen: up/down nudge the value, holds move it by ten.
type scene struct {
	win *ui.Window

	value  int
	label  *ui.Label
	bar    *ui.Bar
	last   *ui.Label
	uptime *ui.Label
	beat   *ui.Fill
	beatOn bool
}

func newScene(width, height int) *scene {
	w := ui.NewWindow(width, height, ui.WithBackground(colorBackground))
	s := &scene{win: w}

	small := &proggy.TinySZ8pt7b
	big := &freemono.Regular9pt7b

	w.NewFill(ui.Rect{X: 0, Y: 0, W: width, H: 20}, colorHeader)
	title := w.NewLabel(0, 4, width, small, colorText, ui.AlignCenter)
	title.SetText("T-Display")
	s.beat = w.NewFill(ui.Rect{X: width - 10, Y: 7, W: 6, H: 6}, colorHeader)

	s.label = w.NewLabel(0, 50, width, big, colorText, ui.AlignCenter)
	s.bar = w.NewBar(ui.Rect{X: 8, Y: 80, W: width - 16, H: 14}, gaugeMax, colorGauge, colorGaugeBack, colorText)

	s.last = w.NewLabel(0, 110, width, small, colorDim, ui.AlignCenter)
	s.last.SetText("press a button")

	s.uptime = w.NewLabel(4, height-36, width-8, small, colorDim, ui.AlignLeft)
	build := w.NewLabel(4, height-18, width-8, small, colorDim, ui.AlignLeft)
	build.SetText(buildinfo.Short())

	s.setValue(gaugeMax / 2)
	s.showUptime(0)

	w.OnKey(s.onKey)
	w.Every(500*time.Millisecond, func(time.Duration) { s.toggleBeat() })
	w.Every(time.Second, s.showUptime)
	return s
}

func (s *scene) onKey(k hal.KeyCode) {
	switch k {
	case hal.KeyUp:
		s.setValue(s.value + smallStep)
	case hal.KeyDown:
		s.setValue(s.value - smallStep)
	case hal.KeyRight:
		s.setValue(s.value + largeStep)
	case hal.KeyLeft:
		s.setValue(s.value - largeStep)
	default:
		return
	}
	s.last.SetText("last: " + k.String())
}

func (s *scene) setValue(v int) {
	if v < 0 {
		v = 0
	}
	if v > gaugeMax {
		v = gaugeMax
	}
	s.value = v
	s.label.SetText(strconv.Itoa(v))
	s.bar.SetValue(v)
}

func (s *scene) toggleBeat() {
	s.beatOn = !s.beatOn
	if s.beatOn {
		s.beat.SetColor(colorBeatOn)
	} else {
		s.beat.SetColor(colorHeader)
	}
}

func (s *scene) showUptime(now time.Duration) {
	sec := int(now / time.Second)
	s.uptime.SetText(fmt.Sprintf("up %d:%02d", sec/60, sec%60))
}
