// Package surface is the 2D raster contract the animation engine draws on.
package surface

import "math"

// Blend selects how a draw composites with what is already on the surface.
type Blend int

const (
	// SourceOver is normal alpha compositing.
	SourceOver Blend = iota
	// Screen brightens instead of occluding: out = src + dst·(1 − src).
	Screen
)

func (b Blend) String() string {
	if b == Screen {
		return "screen"
	}
	return "source-over"
}

// RGBA is a straight-alpha color with 0-255 channels and a 0-1 alpha.
type RGBA struct {
	R, G, B, A float64
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// Normalized returns channels scaled to 0-1 with alpha clamped.
func (c RGBA) Normalized() (r, g, b, a float32) {
	return float32(clamp01(c.R / 255)), float32(clamp01(c.G / 255)), float32(clamp01(c.B / 255)), float32(clamp01(c.A))
}

// Stop is a gradient color stop at an offset in [0, 1].
type Stop struct {
	Offset float64
	Color  RGBA
}

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// VerticalGradient maps Y0..Y1 onto its stops.
type VerticalGradient struct {
	Y0, Y1 float64
	Stops  []Stop
}

// At resolves the gradient color at y.
func (g VerticalGradient) At(y float64) RGBA {
	if g.Y1 == g.Y0 {
		return Interpolate(g.Stops, 0)
	}
	return Interpolate(g.Stops, (y-g.Y0)/(g.Y1-g.Y0))
}

// Interpolate resolves stops at t, holding the end colors outside the range.
func Interpolate(stops []Stop, t float64) RGBA {
	if len(stops) == 0 {
		return RGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			f := (t - a.Offset) / span
			return RGBA{
				R: a.Color.R + (b.Color.R-a.Color.R)*f,
				G: a.Color.G + (b.Color.G-a.Color.G)*f,
				B: a.Color.B + (b.Color.B-a.Color.B)*f,
				A: a.Color.A + (b.Color.A-a.Color.A)*f,
			}
		}
	}
	return stops[len(stops)-1].Color
}

// Surface is what the engine needs from a drawing target: filled and
// stroked paths, linear and radial gradients, and two compositing modes.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	SetBlend(b Blend)

	// Fill covers the whole surface, used for the background fade.
	Fill(c RGBA)
	FillCircle(x, y, r float64, c RGBA)
	StrokeCircle(x, y, r, width float64, c RGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c RGBA)
	// StrokeGradientLine fades linearly from `from` at (x0,y0) to `to` at (x1,y1).
	StrokeGradientLine(x0, y0, x1, y1, width float64, from, to RGBA)
	FillRadial(x, y, r float64, stops []Stop)
	// FillRibbon fills the area between the top curve and the bottom line.
	FillRibbon(top []Point, bottom float64, g VerticalGradient)
	StrokePolyline(pts []Point, width float64, c RGBA)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
