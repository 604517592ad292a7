//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard maps the arrow keys onto the two board buttons. The pins are
// active low: a held key reads false.
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

// hostHotkeys are one-shot actions of the host window.
type hostHotkeys struct {
	stats bool
	quit  bool
}

func (k *hostKeyboard) poll() hostHotkeys {
	k.up.Set(!ebiten.IsKeyPressed(ebiten.KeyArrowUp))
	k.down.Set(!ebiten.IsKeyPressed(ebiten.KeyArrowDown))

	return hostHotkeys{
		stats: inpututil.IsKeyJustPressed(ebiten.KeyF12),
		quit:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}
