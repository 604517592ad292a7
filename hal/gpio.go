package hal

import (
	"sync"
	"time"
)

// virtualPin is an input whose level is set from software, e.g. a key on the
// host keyboard standing in for a board button.
type virtualPin struct {
	mu    sync.Mutex
	level bool
}

func newVirtualPin(level bool) *virtualPin {
	return &virtualPin{level: level}
}

func (p *virtualPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *virtualPin) Set(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// signalPin is a periodic input: active for the first `active` of every
// `period`. With activeLow the reported level is inverted, as for a button
// wired to ground with a pull-up.
type signalPin struct {
	mu sync.Mutex

	t0        time.Time
	now       func() time.Time
	offset    time.Duration
	period    time.Duration
	active    time.Duration
	activeLow bool
}

// SignalConfig describes a scripted button for headless runs.
type SignalConfig struct {
	Period time.Duration
	Active time.Duration
	Offset time.Duration
}

// Scripted defaults: a short click on up every two seconds and a one second
// hold on down every five.
var (
	demoUpSignal   = SignalConfig{Period: 2 * time.Second, Active: 100 * time.Millisecond, Offset: 500 * time.Millisecond}
	demoDownSignal = SignalConfig{Period: 5 * time.Second, Active: 1 * time.Second, Offset: 1 * time.Second}
)

func newSignalPin(cfg SignalConfig, activeLow bool) InputPin {
	return newSignalPinWithClock(cfg, activeLow, time.Now)
}

func newSignalPinWithClock(cfg SignalConfig, activeLow bool, now func() time.Time) InputPin {
	if now == nil {
		now = time.Now
	}
	if cfg.Period <= 0 {
		cfg.Period = 1 * time.Second
	}
	if cfg.Active < 0 {
		cfg.Active = 0
	}
	if cfg.Active > cfg.Period {
		cfg.Active = cfg.Period
	}
	return &signalPin{
		t0:        now(),
		now:       now,
		offset:    cfg.Offset,
		period:    cfg.Period,
		active:    cfg.Active,
		activeLow: activeLow,
	}
}

func (p *signalPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := p.now().Sub(p.t0) - p.offset
	if elapsed < 0 {
		return p.activeLow
	}
	phase := elapsed % p.period
	on := phase < p.active
	if p.activeLow {
		return !on
	}
	return on
}
