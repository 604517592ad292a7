package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tdisplay/hal"
	"tdisplay/platform/button"
	"tdisplay/platform/clock"
)

type memLogger struct{ lines []string }

func (l *memLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *memLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *memLogger) has(prefix string) bool {
	for _, s := range l.lines {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

type pin struct{ level bool }

func (p *pin) Get() bool { return p.level }

type memDisplay struct {
	w, h   int
	pix    []hal.RGB565
	writes int
	err    error
	panic  string
}

func (d *memDisplay) Size() (int, int) { return d.w, d.h }

func (d *memDisplay) SetPixels(x0, y0, x1, y1 int, px []hal.RGB565) error {
	if d.panic != "" {
		panic(d.panic)
	}
	if d.err != nil {
		return d.err
	}
	d.writes++
	copy(d.pix[y0*d.w+x0:], px)
	return nil
}

type testHAL struct {
	log  *memLogger
	src  *clock.Manual
	up   *pin
	down *pin
	disp *memDisplay
}

func newTestHAL() *testHAL {
	return &testHAL{
		log:  &memLogger{},
		src:  &clock.Manual{},
		up:   &pin{level: true},
		down: &pin{level: true},
		disp: &memDisplay{w: 135, h: 240, pix: make([]hal.RGB565, 135*240)},
	}
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Clock() hal.Clock     { return h.src }
func (h *testHAL) Buttons() hal.Buttons { return hal.Buttons{Up: h.up, Down: h.down} }
func (h *testHAL) Display() hal.Display { return h.disp }

type harness struct {
	t   *testing.T
	h   *testHAL
	b   *backend
	now time.Duration
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := newTestHAL()
	b, err := build(h, DefaultConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return &harness{t: t, h: h, b: b}
}

func (hs *harness) run(d time.Duration) {
	for end := hs.now + d; hs.now < end; hs.now += time.Millisecond {
		hs.h.src.Set(hs.now)
		if err := hs.b.step(); err != nil {
			hs.t.Fatalf("step at %v: %v", hs.now, err)
		}
	}
}

func TestBootDrawsFullFrame(t *testing.T) {
	hs := newHarness(t)
	hs.run(time.Millisecond)

	if hs.h.disp.writes != 240 {
		t.Fatalf("first pass wrote %d lines, want 240", hs.h.disp.writes)
	}
	if got := hs.h.disp.pix[0]; got != colorHeader {
		t.Fatalf("header pixel = %#04x, want %#04x", got, colorHeader)
	}
	if !hs.h.log.has("tdisplay dev: 135x240 panel") {
		t.Fatalf("boot line missing: %q", hs.h.log.lines)
	}
	if hs.b.scene.value != gaugeMax/2 {
		t.Fatalf("initial value = %d", hs.b.scene.value)
	}
}

func TestButtonsDriveGauge(t *testing.T) {
	hs := newHarness(t)
	hs.run(10 * time.Millisecond)

	press := func(p *pin, d time.Duration) {
		p.level = false
		hs.run(d)
		p.level = true
		hs.run(50 * time.Millisecond)
	}

	press(hs.h.up, 100*time.Millisecond)
	if v := hs.b.scene.value; v != 51 {
		t.Fatalf("after up click value = %d, want 51", v)
	}
	press(hs.h.up, time.Second)
	if v := hs.b.scene.value; v != 61 {
		t.Fatalf("after up hold value = %d, want 61", v)
	}
	press(hs.h.down, 100*time.Millisecond)
	if v := hs.b.scene.value; v != 60 {
		t.Fatalf("after down click value = %d, want 60", v)
	}
	press(hs.h.down, time.Second)
	if v := hs.b.scene.value; v != 50 {
		t.Fatalf("after down hold value = %d, want 50", v)
	}
	if got := hs.b.scene.last.Text(); got != "last: Left" {
		t.Fatalf("last key label = %q", got)
	}
	if hs.b.scene.bar.Value() != 50 {
		t.Fatalf("bar = %d, want 50", hs.b.scene.bar.Value())
	}

	held := 0
	for _, l := range hs.h.log.lines {
		if strings.HasSuffix(l, ": Held") {
			held++
		}
	}
	if held != 2 {
		t.Fatalf("Held logged %d times, want 2", held)
	}
}

func TestGaugeClamps(t *testing.T) {
	s := newScene(135, 240)
	for i := 0; i < 20; i++ {
		s.onKey(hal.KeyRight)
	}
	if s.value != gaugeMax || s.label.Text() != "100" {
		t.Fatalf("value = %d (%q), want 100", s.value, s.label.Text())
	}
	for i := 0; i < 20; i++ {
		s.onKey(hal.KeyLeft)
	}
	if s.value != 0 {
		t.Fatalf("value = %d, want 0", s.value)
	}
	s.onKey(hal.KeyEscape)
	if s.last.Text() != "last: Left" {
		t.Fatalf("unbound key changed the label: %q", s.last.Text())
	}
}

func TestUptimeTicks(t *testing.T) {
	hs := newHarness(t)
	hs.run(time.Millisecond)
	hs.now = 61 * time.Second
	hs.run(time.Millisecond)
	if got := hs.b.scene.uptime.Text(); got != "up 1:01" {
		t.Fatalf("uptime = %q, want %q", got, "up 1:01")
	}
}

func TestDisplayErrorIsFatal(t *testing.T) {
	h := newTestHAL()
	busErr := errors.New("spi: tx failed")
	h.disp.err = busErr

	step, err := New(h, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := step(); !errors.Is(err, busErr) {
		t.Fatalf("step = %v, want %v", err, busErr)
	}
	if !h.log.has("fatal: linebuf: write line 0") {
		t.Fatalf("fatal line missing: %q", h.log.lines)
	}
	if err := step(); !errors.Is(err, errStopped) {
		t.Fatalf("step after failure = %v, want errStopped", err)
	}

	if err := Run(h, DefaultConfig()); !errors.Is(err, busErr) {
		t.Fatalf("Run = %v, want %v", err, busErr)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	h := newTestHAL()
	h.disp.panic = "boom"
	step, err := New(h, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = step()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("step = %v, want recovered panic", err)
	}
	if !h.log.has("fatal: app: panic: boom") {
		t.Fatalf("panic not logged: %q", h.log.lines)
	}
}

func TestInvalidButtonConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Down.Mode = 9
	if _, err := New(newTestHAL(), cfg); !errors.Is(err, button.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	// A zero hold next to a custom debounce is rejected, not replaced.
	cfg = DefaultConfig()
	cfg.Up.Debounce = 5 * time.Millisecond
	cfg.Up.Hold = 0
	if _, err := New(newTestHAL(), cfg); !errors.Is(err, button.ErrInvalidConfig) {
		t.Fatalf("zero hold: err = %v, want ErrInvalidConfig", err)
	}
	if got := (Config{}).withDefaults(); got != DefaultConfig() {
		t.Fatalf("zero config defaults to %+v", got)
	}

	if _, err := New(nil, cfg); err == nil {
		t.Fatal("expected error for nil hal")
	}
}
