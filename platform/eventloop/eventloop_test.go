package eventloop

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tdisplay/hal"
	"tdisplay/platform/button"
	"tdisplay/platform/clock"
	"tdisplay/platform/linebuf"
	"tdisplay/ui"
)

// trace records every call the loop makes, in order.
type trace struct{ calls []string }

func (tr *trace) add(format string, args ...any) {
	tr.calls = append(tr.calls, fmt.Sprintf(format, args...))
}

type scriptedButton struct {
	name    string
	tr      *trace
	clicked bool
	holds   uint32
}

func (b *scriptedButton) Tick()           { b.tr.add("tick %s", b.name) }
func (b *scriptedButton) IsClicked() bool { return b.clicked }
func (b *scriptedButton) Holds() uint32   { return b.holds }
func (b *scriptedButton) Reset() {
	b.tr.add("reset %s", b.name)
	b.clicked, b.holds = false, 0
}

type fakeWindow struct {
	tr   *trace
	keys []hal.KeyCode
	err  error
}

func (w *fakeWindow) UpdateTimers(now time.Duration) { w.tr.add("timers %v", now) }
func (w *fakeWindow) DispatchKey(k hal.KeyCode) {
	w.keys = append(w.keys, k)
	w.tr.add("key %v", k)
}
func (w *fakeWindow) DrawIfNeeded(linebuf.Provider) error {
	w.tr.add("draw")
	return w.err
}

type nopLines struct{}

func (nopLines) ProcessLine(int, int, int, func([]hal.RGB565)) error { return nil }

type memLogger struct{ lines []string }

func (l *memLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *memLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func TestStepOrder(t *testing.T) {
	tr := &trace{}
	src := &clock.Manual{}
	src.Set(42 * time.Millisecond)
	up := &scriptedButton{name: "up", tr: tr, clicked: true}
	down := &scriptedButton{name: "down", tr: tr, holds: 1}
	win := &fakeWindow{tr: tr}
	log := &memLogger{}

	l, err := New(Config{
		Clock:  clock.New(src),
		Window: win,
		Lines:  nopLines{},
		Buttons: []Binding{
			{Name: "up", Button: up, Click: hal.KeyUp, Hold: hal.KeyRight},
			{Name: "down", Button: down, Click: hal.KeyDown, Hold: hal.KeyLeft},
		},
		Logger: log,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	want := []string{
		"timers 42ms",
		"tick up",
		"tick down",
		"key Up",
		"key Left",
		"draw",
		"reset up",
		"reset down",
	}
	if strings.Join(tr.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("calls:\n%s\nwant:\n%s", strings.Join(tr.calls, "\n"), strings.Join(want, "\n"))
	}
	if len(log.lines) != 1 || log.lines[0] != "down: Held" {
		t.Fatalf("log = %q", log.lines)
	}
	if l.Iterations() != 1 {
		t.Fatalf("iterations = %d", l.Iterations())
	}
}

func TestClickWinsOverHoldAndOnlyFirstHoldDispatches(t *testing.T) {
	tr := &trace{}
	b := &scriptedButton{name: "up", tr: tr}
	win := &fakeWindow{tr: tr}
	l, err := New(Config{
		Clock:   clock.New(&clock.Manual{}),
		Window:  win,
		Lines:   nopLines{},
		Buttons: []Binding{{Name: "up", Button: b, Click: hal.KeyUp, Hold: hal.KeyRight}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b.clicked, b.holds = true, 1
	l.Step()
	// A second hold accrued without a reset in between is not a new event.
	b.holds = 2
	l.Step()
	b.holds = 1
	l.Step()

	if len(win.keys) != 2 || win.keys[0] != hal.KeyUp || win.keys[1] != hal.KeyRight {
		t.Fatalf("keys = %v, want [Up Right]", win.keys)
	}
}

func TestNoWindowStillPollsButtons(t *testing.T) {
	tr := &trace{}
	b := &scriptedButton{name: "up", tr: tr, clicked: true}
	l, err := New(Config{
		Clock:   clock.New(&clock.Manual{}),
		Lines:   nopLines{},
		Buttons: []Binding{{Name: "up", Button: b}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if strings.Join(tr.calls, "|") != "tick up|reset up" {
		t.Fatalf("calls = %v", tr.calls)
	}

	win := &fakeWindow{tr: tr}
	l.SetWindow(win)
	b.clicked = true
	l.Step()
	if len(win.keys) != 1 {
		t.Fatalf("keys after SetWindow = %v", win.keys)
	}
}

func TestDrawErrorStopsRun(t *testing.T) {
	busErr := errors.New("spi: device not ready")
	tr := &trace{}
	b := &scriptedButton{name: "up", tr: tr}
	win := &fakeWindow{tr: tr, err: busErr}
	l, err := New(Config{
		Clock:   clock.New(&clock.Manual{}),
		Window:  win,
		Lines:   nopLines{},
		Buttons: []Binding{{Name: "up", Button: b}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := l.Run(); !errors.Is(err, busErr) {
		t.Fatalf("Run = %v, want %v", err, busErr)
	}
	if l.Iterations() != 0 {
		t.Fatalf("iterations = %d, want 0", l.Iterations())
	}
	if tr.calls[len(tr.calls)-1] != "draw" {
		t.Fatalf("buttons were reset after a failed draw: %v", tr.calls)
	}
}

func TestNewValidates(t *testing.T) {
	c := clock.New(&clock.Manual{})
	if _, err := New(Config{Clock: c, Lines: nopLines{}}); !errors.Is(err, ErrNoButtons) {
		t.Fatalf("err = %v, want ErrNoButtons", err)
	}
	if _, err := New(Config{Lines: nopLines{}, Buttons: []Binding{{Button: &scriptedButton{}}}}); err == nil {
		t.Fatal("expected error without a clock")
	}
	if _, err := New(Config{Clock: c, Buttons: []Binding{{Button: &scriptedButton{}}}}); err == nil {
		t.Fatal("expected error without a line provider")
	}
	if _, err := New(Config{Clock: c, Lines: nopLines{}, Buttons: []Binding{{Name: "x"}}}); err == nil {
		t.Fatal("expected error for a binding without a button")
	}
}

// The scenarios below run the real engines against a scripted pin.

type pin struct{ level bool }

func (p *pin) Get() bool { return p.level }

type countingWriter struct{ writes int }

func (w *countingWriter) SetPixels(x0, y0, x1, y1 int, px []hal.RGB565) error {
	w.writes++
	return nil
}

type board struct {
	t      *testing.T
	src    *clock.Manual
	now    time.Duration
	up     *pin
	down   *pin
	win    *ui.Window
	loop   *Loop
	keys   []hal.KeyCode
	writer *countingWriter
	log    *memLogger
}

func newBoard(t *testing.T) *board {
	t.Helper()
	src := &clock.Manual{}
	clk := clock.New(src)
	bd := &board{t: t, src: src, up: &pin{level: true}, down: &pin{level: true}, log: &memLogger{}}

	cfg := button.Config{Mode: button.PullUp, Debounce: 50 * time.Millisecond, Hold: 400 * time.Millisecond}
	upBtn, err := button.New(bd.up, clk, cfg)
	if err != nil {
		t.Fatalf("button.New: %v", err)
	}
	downBtn, err := button.New(bd.down, clk, cfg)
	if err != nil {
		t.Fatalf("button.New: %v", err)
	}

	bd.writer = &countingWriter{}
	lines, err := linebuf.New(bd.writer, 16, 8)
	if err != nil {
		t.Fatalf("linebuf.New: %v", err)
	}
	bd.win = ui.NewWindow(16, 8)
	bd.win.OnKey(func(k hal.KeyCode) { bd.keys = append(bd.keys, k) })

	bd.loop, err = New(Config{
		Clock:  clk,
		Window: bd.win,
		Lines:  lines,
		Buttons: []Binding{
			{Name: "up", Button: upBtn, Click: hal.KeyUp, Hold: hal.KeyRight},
			{Name: "down", Button: downBtn, Click: hal.KeyDown, Hold: hal.KeyLeft},
		},
		Logger: bd.log,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return bd
}

// run steps the loop every millisecond for d.
func (bd *board) run(d time.Duration) {
	for end := bd.now + d; bd.now < end; bd.now += time.Millisecond {
		bd.src.Set(bd.now)
		if err := bd.loop.Step(); err != nil {
			bd.t.Fatalf("Step at %v: %v", bd.now, err)
		}
	}
}

func TestShortPressDispatchesUpOnce(t *testing.T) {
	bd := newBoard(t)
	bd.run(10 * time.Millisecond)

	bd.up.level = false
	bd.run(100 * time.Millisecond)
	bd.up.level = true
	bd.run(300 * time.Millisecond)

	if len(bd.keys) != 1 || bd.keys[0] != hal.KeyUp {
		t.Fatalf("keys = %v, want [Up]", bd.keys)
	}
}

func TestLongPressDispatchesRightOnce(t *testing.T) {
	bd := newBoard(t)
	bd.run(10 * time.Millisecond)

	bd.up.level = false
	bd.run(1000 * time.Millisecond)
	bd.up.level = true
	bd.run(300 * time.Millisecond)

	if len(bd.keys) != 1 || bd.keys[0] != hal.KeyRight {
		t.Fatalf("keys = %v, want [Right]", bd.keys)
	}
	if len(bd.log.lines) != 1 || bd.log.lines[0] != "up: Held" {
		t.Fatalf("log = %q", bd.log.lines)
	}
}

func TestDownButtonGestures(t *testing.T) {
	bd := newBoard(t)
	bd.run(10 * time.Millisecond)

	bd.down.level = false
	bd.run(100 * time.Millisecond)
	bd.down.level = true
	bd.run(200 * time.Millisecond)
	bd.down.level = false
	bd.run(600 * time.Millisecond)
	bd.down.level = true
	bd.run(200 * time.Millisecond)

	if len(bd.keys) != 2 || bd.keys[0] != hal.KeyDown || bd.keys[1] != hal.KeyLeft {
		t.Fatalf("keys = %v, want [Down Left]", bd.keys)
	}
}

func TestRedrawOnlyWhenDamaged(t *testing.T) {
	bd := newBoard(t)
	bd.run(5 * time.Millisecond)
	if bd.writer.writes != 8 {
		t.Fatalf("first frame wrote %d lines, want 8", bd.writer.writes)
	}

	bd.run(100 * time.Millisecond)
	if bd.writer.writes != 8 {
		t.Fatalf("idle loop wrote %d extra lines", bd.writer.writes-8)
	}

	bd.win.Invalidate(ui.Rect{Y: 2, H: 3})
	bd.run(time.Millisecond)
	if bd.writer.writes != 11 {
		t.Fatalf("writes = %d, want 11 after damaging 3 lines", bd.writer.writes)
	}
}
