package effects

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/surface"
)

const (
	SmokeFadeIn  = 0.2
	SmokeFadeOut = 0.5

	smokeDrag      = 0.25
	smokeGrowth    = 0.6
	smokeMidOffset = 0.6
	smokeMidAlpha  = 0.5
)

// Smoke is a pooled puff that rises from the bottom of the frame, slows,
// sways and swells until it fades out.
type Smoke struct {
	X, Y        float64
	VY          float64 // upward speed, px/s
	Radius      float64
	MaxRadius   float64
	Age         float64
	MaxAge      float64
	BaseOpacity float64
	Color       palette.Ref
	Active      bool

	swayAmp   float64
	swayFreq  float64
	swayPhase float64
}

// Spawn reuses the slot for a new puff near the bottom edge.
func (s *Smoke) Spawn(w, h float64, c palette.Ref, r rng.Source) {
	*s = Smoke{
		X:           rng.Range(r, 0, w),
		Y:           rng.Range(r, h*0.92, h*1.05),
		VY:          rng.Range(r, 30, 80),
		Radius:      rng.Range(r, 8, 20),
		MaxRadius:   rng.Range(r, 60, 140),
		MaxAge:      rng.Range(r, 6, 12),
		BaseOpacity: rng.Range(r, 0.05, 0.12),
		Color:       c,
		Active:      true,
		swayAmp:     rng.Range(r, 10, 30),
		swayFreq:    rng.Range(r, 0.6, 1.6),
		swayPhase:   rng.Angle(r),
	}
}

func (s *Smoke) Update(dt, speed float64) {
	if !s.Active {
		return
	}
	t := dt * speed
	s.Age += t
	s.VY *= math.Exp(-smokeDrag * t)
	s.Y -= s.VY * t
	s.X += math.Sin(s.Age*s.swayFreq+s.swayPhase) * s.swayAmp * t
	s.Radius += (s.MaxRadius - s.Radius) * (1 - math.Exp(-smokeGrowth*t))
	if s.Age >= s.MaxAge {
		s.Active = false
	}
}

// Opacity is the base opacity shaped by the fade-in and fade-out envelope.
func (s *Smoke) Opacity() float64 {
	if s.MaxAge <= 0 {
		return 0
	}
	life := s.Age / s.MaxAge
	fadeIn := math.Min(1, life/SmokeFadeIn)
	fadeOut := 1.0
	if life > 1-SmokeFadeOut {
		fadeOut = (1 - life) / SmokeFadeOut
	}
	return s.BaseOpacity * clamp01(fadeIn) * clamp01(fadeOut)
}

func (s *Smoke) Draw(dst surface.Surface) {
	if !s.Active {
		return
	}
	a := s.Opacity()
	c := s.Color.Color()
	dst.FillRadial(s.X, s.Y, s.Radius, []surface.Stop{
		{Offset: 0, Color: rgba(c, a)},
		{Offset: smokeMidOffset, Color: rgba(c, a*smokeMidAlpha)},
		{Offset: 1, Color: rgba(c, 0)},
	})
}
