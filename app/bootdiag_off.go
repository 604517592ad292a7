//go:build !bootdebug

package app

import "tdisplay/hal"

func bootStep(hal.Logger, string) {}
