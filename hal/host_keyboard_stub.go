//go:build !tinygo && !cgo

package hal

type hostKeyboard struct {
	up   *virtualPin
	down *virtualPin
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{
		up:   newVirtualPin(true),
		down: newVirtualPin(true),
	}
}

type hostHotkeys struct {
	stats bool
	quit  bool
}

func (k *hostKeyboard) poll() hostHotkeys {
	// No keyboard support without the window backend.
	return hostHotkeys{}
}
