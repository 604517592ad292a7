package hal

import "image/color"

// RGB565 is a 16bpp color: rrrrrggggggbbbbb.
type RGB565 uint16

// RGB packs an 8-bit-per-channel color.
func RGB(r, g, b uint8) RGB565 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return RGB565((rr << 11) | (gg << 5) | bb)
}

// FromRGBA converts a color.RGBA, ignoring alpha.
func FromRGBA(c color.RGBA) RGB565 {
	return RGB(c.R, c.G, c.B)
}

// RGBA expands the color back to 8 bits per channel.
func (p RGB565) RGBA() color.RGBA {
	r, g, b := rgb888From565(uint16(p))
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}
