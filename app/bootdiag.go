//go:build bootdebug

package app

import "tdisplay/hal"

// bootStep reports bring-up progress so a board that hangs during start-up
// shows the last step it reached on the serial console.
func bootStep(log hal.Logger, step string) {
	logf(log, "boot: %s", step)
}
