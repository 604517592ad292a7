package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"tdisplay/hal"
)

// recovered logs a panic raised inside a loop pass, with its stack when the
// runtime provides one, and turns it into a fatal error. The screen is left
// as it was.
func recovered(log hal.Logger, r any) error {
	err := fmt.Errorf("app: panic: %v", r)
	logf(log, "fatal: %v", err)
	stack := debug.Stack()
	if len(stack) == 0 {
		logf(log, "stack: unavailable")
		return err
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		logf(log, "%s", line)
	}
	return err
}
