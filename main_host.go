//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"tdisplay/app"
	"tdisplay/hal"
)

func main() {
	hcfg := hal.DefaultHeadlessConfig()
	var wcfg hal.WindowConfig
	acfg := app.DefaultConfig()

	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window, with scripted button presses.")
	flag.IntVar(&hcfg.Hz, "hz", hcfg.Hz, "Loop passes per second in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&wcfg.StepsPerFrame, "steps", 4, "Loop passes per window frame.")
	flag.IntVar(&wcfg.Scale, "scale", 3, "Window scale factor.")
	flag.DurationVar(&acfg.Up.Debounce, "debounce", acfg.Up.Debounce, "Button debounce interval.")
	flag.DurationVar(&acfg.Up.Hold, "hold", acfg.Up.Hold, "Press duration that counts as a hold.")
	flag.DurationVar(&acfg.Up.Repeat, "repeat", 0, "Hold auto-repeat interval (0 = off).")
	flag.Parse()

	acfg.Down = acfg.Up

	newApp := func(h hal.HAL) (func() error, error) {
		return app.New(h, acfg)
	}

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, wcfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
