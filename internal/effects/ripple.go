package effects

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/surface"
)

// RippleDelays staggers the three rings of an impact.
var RippleDelays = [3]float64{0, 0.5, 1.0}

const (
	rippleAlpha     = 0.5
	rippleRingFade  = 0.25
	rippleBaseWidth = 1.5
	rippleBand      = 18.0
	rippleLift      = 12.0
)

// Ripple is a pooled impact of three concentric rings sharing one speed and
// one decaying life.
type Ripple struct {
	X, Y    float64
	Speed   float64
	Life    float64
	Decay   float64
	Elapsed float64
	Color   palette.Ref
	Active  bool
}

// Spawn reuses the slot for a new impact somewhere in the frame.
func (p *Ripple) Spawn(w, h float64, c palette.Ref, r rng.Source) {
	*p = Ripple{
		X:      rng.Range(r, w*0.1, w*0.9),
		Y:      rng.Range(r, h*0.1, h*0.9),
		Speed:  rng.Range(r, 60, 120),
		Life:   1,
		Decay:  rng.Range(r, 0.18, 0.30),
		Color:  c,
		Active: true,
	}
}

func (p *Ripple) Update(dt, speed float64) {
	if !p.Active {
		return
	}
	t := dt * speed
	p.Elapsed += t
	p.Life -= p.Decay * t
	if p.Life <= 0 {
		p.Life = 0
		p.Active = false
	}
}

// RingRadius is the radius of ring i, or -1 while its delay has not elapsed.
func (p *Ripple) RingRadius(i int) float64 {
	since := p.Elapsed - RippleDelays[i]
	if since < 0 {
		return -1
	}
	return since * p.Speed
}

// Displacement is how far the rings lift a point of the wave field.
func (p *Ripple) Displacement(x, y float64) float64 {
	if !p.Active {
		return 0
	}
	d := math.Hypot(x-p.X, y-p.Y)
	lift := 0.0
	for i := range RippleDelays {
		r := p.RingRadius(i)
		if r < 0 {
			continue
		}
		k := (d - r) / rippleBand
		lift += math.Exp(-k*k) * rippleLift * p.Life
	}
	return lift
}

func (p *Ripple) Draw(dst surface.Surface) {
	if !p.Active {
		return
	}
	c := p.Color.Color()
	for i := range RippleDelays {
		r := p.RingRadius(i)
		if r <= 0 {
			continue
		}
		a := p.Life * rippleAlpha * (1 - float64(i)*rippleRingFade)
		dst.StrokeCircle(p.X, p.Y, r, rippleBaseWidth+p.Life*rippleBaseWidth, rgba(c, a))
	}
}
