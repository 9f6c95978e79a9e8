package effects

import (
	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/surface"
)

const (
	// PulseGrowth is the ring expansion rate in px/s.
	PulseGrowth = 160.0
	// PulseMinScale and PulseMaxScale bound the max radius relative to the orb.
	PulseMinScale = 1.8
	PulseMaxScale = 3.2

	pulseAlpha = 0.40
	pulseWidth = 3.5
)

// PulseRing is an expanding outline emitted by an orb.
type PulseRing struct {
	X, Y   float64
	Radius float64
	Max    float64
	Life   float64
	Color  palette.Ref
	Done   bool
}

func NewPulseRing(x, y float64, c palette.Ref, maxRadius float64) *PulseRing {
	return &PulseRing{X: x, Y: y, Max: maxRadius, Life: 1, Color: c}
}

func (p *PulseRing) Update(dt, speed float64) {
	p.Radius += dt * speed * PulseGrowth
	p.Life = 1 - p.Radius/p.Max
	if p.Radius >= p.Max {
		p.Done = true
	}
}

func (p *PulseRing) Draw(dst surface.Surface) {
	life := clamp01(p.Life)
	if life == 0 {
		return
	}
	dst.StrokeCircle(p.X, p.Y, p.Radius, life*pulseWidth, rgba(p.Color.Color(), life*pulseAlpha))
}
