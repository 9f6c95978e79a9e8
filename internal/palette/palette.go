// Package palette owns the four live colors every colored effect reads from,
// and the strategies that pick where those colors drift next.
package palette

import "math"

// Size is the fixed number of entries in a palette.
const Size = 4

// Color is an RGB triple with channels in the 0-255 range. Channels stay
// fractional while a palette is being interpolated.
type Color struct {
	R, G, B float64
}

// RGB255 rounds the channels to bytes.
func (c Color) RGB255() (r, g, b uint8) {
	return channel(c.R), channel(c.G), channel(c.B)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

// Palette is a fixed set of colors. A *Palette is shared by reference: the
// animator mutates its cells in place and dependents read through Refs.
type Palette [Size]Color

// Assign overwrites every cell with src without rebinding p.
func (p *Palette) Assign(src Palette) {
	for i := range p {
		p[i] = src[i]
	}
}

// Ref returns a handle to cell i modulo Size.
func (p *Palette) Ref(i int) Ref {
	i %= Size
	if i < 0 {
		i += Size
	}
	return Ref{palette: p, index: i}
}

// Ref is a handle into a live palette cell. It never copies the color, so a
// recolor of the palette is visible through every Ref on the next read.
type Ref struct {
	palette *Palette
	index   int
}

// Color resolves the handle. A zero Ref resolves to white.
func (r Ref) Color() Color {
	if r.palette == nil {
		return Color{R: 255, G: 255, B: 255}
	}
	return r.palette[r.index]
}

// Index is the palette cell the handle points at.
func (r Ref) Index() int { return r.index }

// Palette is the palette the handle points into.
func (r Ref) Palette() *Palette { return r.palette }
