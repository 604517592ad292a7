//go:build tinygo && baremetal

package hal

import (
	"machine"
	_ "unsafe"
)

//go:linkname ticks runtime.ticks
func ticks() uint64

//go:linkname ticksToNanoseconds runtime.ticksToNanoseconds
func ticksToNanoseconds(ticks uint64) int64

// tinyGoClock reads the runtime's hardware tick counter.
type tinyGoClock struct{}

func (tinyGoClock) Micros() uint64 {
	return uint64(ticksToNanoseconds(ticks()) / 1000)
}

// serialLogger writes to the board's default serial console.
type serialLogger struct{}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		machine.Serial.WriteByte(s[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		machine.Serial.WriteByte(b[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}

// Console returns the serial logger. It works before New, so bring-up
// failures can still be reported.
func Console() Logger { return &serialLogger{} }
