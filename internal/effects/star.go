package effects

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/surface"
)

const (
	StarMinRadius = 0.4
	StarMaxRadius = 1.8
	StarMinFreq   = 0.3
	StarMaxFreq   = 1.4

	starBaseAlpha    = 0.20
	starTwinkleAlpha = 0.45
)

// Star is a fixed point that twinkles forever.
type Star struct {
	X, Y   float64
	Radius float64
	Phase  float64
	Freq   float64
}

func NewStar(w, h float64, r rng.Source) *Star {
	s := &Star{}
	s.Init(w, h, r)
	return s
}

// Init reseeds position and twinkle parameters, used again on resize.
func (s *Star) Init(w, h float64, r rng.Source) {
	s.X = rng.Range(r, 0, w)
	s.Y = rng.Range(r, 0, h)
	s.Radius = rng.Range(r, StarMinRadius, StarMaxRadius)
	s.Phase = rng.Angle(r)
	s.Freq = rng.Range(r, StarMinFreq, StarMaxFreq)
}

func (s *Star) Update(dt, speed float64) {
	s.Phase += dt * s.Freq * speed
}

// Brightness is the twinkle level in [0, 1].
func (s *Star) Brightness() float64 {
	return 0.5 + 0.5*math.Sin(s.Phase)
}

func (s *Star) Alpha() float64 {
	return starBaseAlpha + starTwinkleAlpha*s.Brightness()
}

func (s *Star) Draw(dst surface.Surface) {
	dst.FillCircle(s.X, s.Y, s.Radius, surface.RGBA{R: 255, G: 255, B: 255, A: s.Alpha()})
}
