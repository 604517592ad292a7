//go:build !tinygo && cgo

package hal

import (
	"tdisplay/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Scale         int
	StepsPerFrame int
}

// RunWindow starts a desktop window that shows the emulated panel and maps
// the arrow keys onto the board buttons. It blocks until the window closes or
// a step fails.
func RunWindow(newApp func(HAL) (func() error, error), cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}
	if cfg.StepsPerFrame <= 0 {
		cfg.StepsPerFrame = 4
	}

	h, err := newHost(nil)
	if err != nil {
		return err
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step, steps: cfg.StepsPerFrame}
	w, ht := h.panel.Size()
	ebiten.SetWindowTitle("T-Display (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w*cfg.Scale, ht*cfg.Scale)
	ebiten.SetTPS(60)
	err = ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type hostGame struct {
	h     *hostHAL
	pix   []byte
	img   *ebiten.Image
	step  func() error
	steps int
}

func (g *hostGame) Update() error {
	keys := g.h.kbd.poll()
	if keys.quit {
		return ebiten.Termination
	}
	if keys.stats {
		g.h.logStats()
	}
	if g.step == nil {
		return nil
	}
	// Several loop passes per frame keep the button sampling well under the
	// debounce interval.
	for i := 0; i < g.steps; i++ {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := g.h.panel.Size()
	if g.img == nil {
		g.pix = make([]byte, w*h*4)
		g.img = ebiten.NewImage(w, h)
	}
	g.h.bus.snapshotRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.panel.Size()
}
