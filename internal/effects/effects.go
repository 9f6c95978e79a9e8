// Package effects holds the visual primitives of the scene. Every primitive
// owns its kinematic state, advances with Update(dt, speed) and renders with
// Draw onto a surface. Colored primitives read through a palette.Ref so the
// palette animator can recolor them without touching the primitive.
package effects

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/surface"
)

// rgba resolves a live color to a drawable one, rounding channels.
func rgba(c palette.Color, a float64) surface.RGBA {
	return surface.RGBA{R: math.Round(c.R), G: math.Round(c.G), B: math.Round(c.B), A: a}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func dist2(ax, ay, bx, by float64) float64 {
	dx, dy := ax-bx, ay-by
	return dx*dx + dy*dy
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
