//go:build !baremetal

package hal

import "time"

// hostClock counts microseconds from HAL creation using the monotonic
// reading carried by time.Time.
type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

func (c *hostClock) Micros() uint64 {
	d := time.Since(c.start)
	if d < 0 {
		return 0
	}
	return uint64(d / time.Microsecond)
}
