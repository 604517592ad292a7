//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled    bool
	Hz         int
	Ticks      uint64
	StepBudget int

	// Up and Down script the two buttons.
	Up   SignalConfig
	Down SignalConfig
}

// DefaultHeadlessConfig runs at 200 Hz with the demo button script.
func DefaultHeadlessConfig() HeadlessConfig {
	return HeadlessConfig{
		Hz:         200,
		StepBudget: 1,
		Up:         demoUpSignal,
		Down:       demoDownSignal,
	}
}

// RunHeadless runs the backend without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 200
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}

	h, err := newHost(&[2]SignalConfig{cfg.Up, cfg.Down})
	if err != nil {
		return err
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			h.logStats()
			return ctx.Err()
		case <-t.C:
			if step != nil {
				for i := 0; i < cfg.StepBudget; i++ {
					if err := step(); err != nil {
						return err
					}
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				h.logStats()
				return nil
			}
		}
	}
}
