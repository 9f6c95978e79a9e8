package effects

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/surface"
)

const (
	OrbMinRadius = 60.0
	OrbMaxRadius = 180.0
	// OrbRetargetDist2 is the squared distance at which an orb picks a new target.
	OrbRetargetDist2 = 400.0
	OrbMinBreathe    = 0.08
	OrbMaxBreathe    = 0.18
	OrbMinPulse      = 3.0
	OrbMaxPulse      = 8.0

	orbFrameRate     = 60.0
	orbOpacityRate   = 0.5
	orbOpacityBase   = 0.55
	orbOpacitySwing  = 0.45
	orbMidStopAlpha  = 0.4
	orbMidStopOffset = 0.5
)

// Orb is a glowing disc that drifts between random targets, breathes in
// size and alpha, and periodically asks to emit a pulse ring.
type Orb struct {
	X, Y   float64
	TX, TY float64
	Radius float64
	W, H   float64
	Color  palette.Ref

	speed        float64
	phase        float64
	opacityPhase float64
	breatheAmp   float64
	breatheFreq  float64
	pulseTimer   float64

	rng rng.Source
}

func NewOrb(w, h float64, c palette.Ref, r rng.Source) *Orb {
	return &Orb{
		W:            w,
		H:            h,
		Color:        c,
		Radius:       rng.Range(r, OrbMinRadius, OrbMaxRadius),
		X:            rng.Range(r, 0, w),
		Y:            rng.Range(r, 0, h),
		TX:           rng.Range(r, 0, w),
		TY:           rng.Range(r, 0, h),
		speed:        rng.Range(r, 0.0003, 0.0008),
		phase:        rng.Angle(r),
		opacityPhase: rng.Angle(r),
		breatheAmp:   rng.Range(r, OrbMinBreathe, OrbMaxBreathe),
		breatheFreq:  rng.Range(r, 0.4, 0.9),
		pulseTimer:   rng.Range(r, OrbMinPulse, OrbMaxPulse),
		rng:          r,
	}
}

// SetBounds gives the orb a new wander area; its position is kept.
func (o *Orb) SetBounds(w, h float64) {
	o.W, o.H = w, h
}

func (o *Orb) Update(dt, speed float64) {
	t := dt * speed
	f := o.speed * t * orbFrameRate
	o.X = lerp(o.X, o.TX, f)
	o.Y = lerp(o.Y, o.TY, f)
	if dist2(o.X, o.Y, o.TX, o.TY) < OrbRetargetDist2 {
		o.TX = rng.Range(o.rng, o.Radius, o.W-o.Radius)
		o.TY = rng.Range(o.rng, o.Radius, o.H-o.Radius)
	}
	o.phase += dt * o.breatheFreq * speed
	o.opacityPhase += dt * orbOpacityRate * speed
	o.pulseTimer -= t
}

// ShouldPulse fires once when the pulse countdown has elapsed and rearms it.
func (o *Orb) ShouldPulse() bool {
	if o.pulseTimer <= 0 {
		o.pulseTimer = rng.Range(o.rng, OrbMinPulse, OrbMaxPulse)
		return true
	}
	return false
}

// PulseTimer is the time left before the next pulse.
func (o *Orb) PulseTimer() float64 { return o.pulseTimer }

// Scale is the breathing factor applied to the radius.
func (o *Orb) Scale() float64 {
	return 1 + math.Sin(o.phase)*o.breatheAmp
}

// DrawRadius is the radius after breathing.
func (o *Orb) DrawRadius() float64 {
	return o.Radius * o.Scale()
}

// Alpha is the center alpha for a global orb opacity.
func (o *Orb) Alpha(opacity float64) float64 {
	return opacity * (orbOpacityBase + orbOpacitySwing*math.Sin(o.opacityPhase))
}

func (o *Orb) Draw(dst surface.Surface, opacity float64) {
	a := o.Alpha(opacity)
	c := o.Color.Color()
	dst.FillRadial(o.X, o.Y, o.DrawRadius(), []surface.Stop{
		{Offset: 0, Color: rgba(c, a)},
		{Offset: orbMidStopOffset, Color: rgba(c, a*orbMidStopAlpha)},
		{Offset: 1, Color: rgba(c, 0)},
	})
}
