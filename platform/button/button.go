// Package button turns polled pin levels into debounced clicks and holds.
//
// A Button is advanced once per loop pass with Tick, queried with IsClicked
// and Holds, and cleared with Reset before the next pass. It never blocks and
// never allocates after New.
package button

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tdisplay/platform/clock"
)

// Mode selects which pin level means "pressed".
type Mode uint8

const (
	// PullUp buttons short the pin to ground: low is pressed.
	PullUp Mode = iota
	// PullDown buttons pull the pin high: high is pressed.
	PullDown
)

// Config tunes the debounce and gesture timing.
type Config struct {
	Mode Mode

	// Debounce is how long a raw level must stay unchanged before it is
	// accepted.
	Debounce time.Duration

	// Hold is the press duration after which a press becomes a hold.
	Hold time.Duration

	// Repeat, when non-zero, emits a further hold event every Repeat while
	// the button stays held.
	Repeat time.Duration

	// Release, when non-zero, delays click reporting until the button has
	// stayed released this long, so that quick presses add up in Clicks.
	Release time.Duration
}

// DefaultConfig matches a tactile switch with a pull-up.
func DefaultConfig() Config {
	return Config{
		Mode:     PullUp,
		Debounce: 1 * time.Millisecond,
		Hold:     500 * time.Millisecond,
	}
}

// ErrInvalidConfig is returned by Validate and New for unusable timing.
var ErrInvalidConfig = errors.New("button: invalid config")

// Validate reports a configuration the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Mode != PullUp && c.Mode != PullDown:
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, c.Mode)
	case c.Debounce < 0 || c.Repeat < 0 || c.Release < 0:
		return fmt.Errorf("%w: negative interval", ErrInvalidConfig)
	case c.Hold <= 0:
		return fmt.Errorf("%w: hold must be positive", ErrInvalidConfig)
	case c.Hold <= c.Debounce:
		return fmt.Errorf("%w: hold %v not above debounce %v", ErrInvalidConfig, c.Hold, c.Debounce)
	}
	return nil
}

// State is the gesture state of a button.
type State uint8

const (
	Idle State = iota
	Pressed
	Held
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pressed:
		return "Pressed"
	case Held:
		return "Held"
	default:
		return "Unknown"
	}
}

// Pin is a raw digital input.
type Pin interface {
	Get() bool
}

// Clock supplies the instants a Button measures against.
type Clock interface {
	Now() clock.Instant
}

const never = time.Duration(math.MaxInt64)

// Button is the debounce and gesture state of one physical button.
type Button struct {
	pin Pin
	clk Clock
	cfg Config

	state State
	last  clock.Instant

	raw      bool
	rawSince clock.Instant
	stable   bool

	pressedAt  clock.Instant
	releasedAt clock.Instant
	nextHold   time.Duration

	burst  int
	clicks int
	holds  uint32
}

// New returns a button reading pin. A button already pressed at start-up is
// ignored until it has been released once.
func New(pin Pin, clk Clock, cfg Config) (*Button, error) {
	if pin == nil || clk == nil {
		return nil, errors.New("button: pin and clock are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	now := clk.Now()
	level := cfg.active(pin.Get())
	return &Button{
		pin:      pin,
		clk:      clk,
		cfg:      cfg,
		last:     now,
		raw:      level,
		rawSince: now,
		stable:   level,
	}, nil
}

func (c Config) active(level bool) bool {
	if c.Mode == PullUp {
		return !level
	}
	return level
}

// Tick samples the pin once and advances the debounce and gesture timers.
func (b *Button) Tick() {
	now := b.clk.Now()
	b.last = now

	level := b.cfg.active(b.pin.Get())
	if level != b.raw {
		b.raw = level
		b.rawSince = now
	}
	if b.raw != b.stable && now.Sub(b.rawSince) >= b.cfg.Debounce {
		b.stable = b.raw
		if b.stable {
			b.press(b.rawSince)
		} else {
			b.release(b.rawSince)
		}
	}
	b.advance(now)
}

// press starts timing at the raw edge, not at the debounce decision.
func (b *Button) press(at clock.Instant) {
	if b.state != Idle {
		return
	}
	b.state = Pressed
	b.pressedAt = at
	b.nextHold = b.cfg.Hold
}

func (b *Button) release(at clock.Instant) {
	switch b.state {
	case Pressed:
		b.burst++
		b.releasedAt = at
		if b.cfg.Release == 0 {
			b.flush()
		}
	case Held:
		// A hold ends the gesture without a click.
	}
	b.state = Idle
}

func (b *Button) advance(now clock.Instant) {
	switch b.state {
	case Pressed, Held:
		if !b.raw {
			return
		}
		d := now.Sub(b.pressedAt)
		if d < b.nextHold {
			return
		}
		if b.state == Pressed {
			if b.burst > 0 {
				// Report the earlier clicks now and the hold on the next
				// Tick, so a caller checking clicks first still sees both.
				b.flush()
				return
			}
			b.state = Held
		}
		if b.holds < math.MaxUint32 {
			b.holds++
		}
		if b.cfg.Repeat == 0 {
			b.nextHold = never
			return
		}
		// Missed repeats collapse into this one: at most one event per Tick.
		if b.nextHold <= d {
			n := (d-b.nextHold)/b.cfg.Repeat + 1
			if n > (never-b.nextHold)/b.cfg.Repeat {
				b.nextHold = never
			} else {
				b.nextHold += n * b.cfg.Repeat
			}
		}
	case Idle:
		if b.burst > 0 && !b.raw && now.Sub(b.releasedAt) >= b.cfg.Release {
			b.flush()
		}
	}
}

func (b *Button) flush() {
	if b.burst == 0 {
		return
	}
	b.clicks = b.burst
	b.burst = 0
}

// IsClicked reports a completed single click since the last Reset.
func (b *Button) IsClicked() bool { return b.clicks == 1 }

// Clicks returns the number of presses in the last completed click burst
// since the last Reset. It is at most 1 unless Config.Release is set.
func (b *Button) Clicks() int { return b.clicks }

// Holds returns the hold events accrued since the last Reset. A Tick adds at
// most one.
func (b *Button) Holds() uint32 { return b.holds }

// Reset clears the click and hold flags. Debounce and gesture timing carry on.
func (b *Button) Reset() {
	b.clicks = 0
	b.holds = 0
}

// State returns the gesture state as of the last Tick.
func (b *Button) State() State { return b.state }

// IsHeld reports whether the button is past the hold threshold.
func (b *Button) IsHeld() bool { return b.state == Held }

// PressedFor returns how long the current press has lasted as of the last
// Tick, or zero when idle.
func (b *Button) PressedFor() time.Duration {
	if b.state == Idle {
		return 0
	}
	return b.last.Sub(b.pressedAt)
}
