package effects

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/surface"
)

const (
	auroraStep       = 5.0
	auroraHarmonic   = 1.7
	auroraPhaseRate  = 1.3
	auroraHarmonicAm = 0.4
	auroraPeakAlpha  = 0.06
	auroraPeakOffset = 0.4
)

// Aurora is a soft ribbon of two superposed sines filled down to the bottom
// edge and faded out at both ends.
type Aurora struct {
	Color  palette.Ref
	T      float64
	Speed  float64
	Amp    float64
	Freq   float64
	YBase  float64 // fraction of the frame height
	Height float64

	pts []surface.Point
}

func NewAurora(c palette.Ref, r rng.Source) *Aurora {
	return &Aurora{
		Color:  c,
		T:      rng.Angle(r),
		Speed:  rng.Range(r, 0.06, 0.14),
		Amp:    rng.Range(r, 30, 90),
		Freq:   rng.Range(r, 0.002, 0.007),
		YBase:  rng.Range(r, 0.50, 0.88),
		Height: rng.Range(r, 60, 130),
	}
}

func (a *Aurora) Update(dt, speed float64) {
	a.T += dt * a.Speed * speed
}

// CurveY is the ribbon's top edge at x for a frame of height h.
func (a *Aurora) CurveY(x, h float64) float64 {
	return a.YBase*h +
		math.Sin(x*a.Freq+a.T)*a.Amp +
		math.Sin(x*a.Freq*auroraHarmonic+a.T*auroraPhaseRate)*a.Amp*auroraHarmonicAm
}

func (a *Aurora) Draw(dst surface.Surface) {
	wi, hi := dst.Size()
	w, h := float64(wi), float64(hi)

	a.pts = a.pts[:0]
	for x := 0.0; x <= w; x += auroraStep {
		a.pts = append(a.pts, surface.Point{X: x, Y: a.CurveY(x, h)})
	}

	c := a.Color.Color()
	dst.FillRibbon(a.pts, h, surface.VerticalGradient{
		Y0: a.YBase*h - a.Height,
		Y1: h,
		Stops: []surface.Stop{
			{Offset: 0, Color: rgba(c, 0)},
			{Offset: auroraPeakOffset, Color: rgba(c, auroraPeakAlpha)},
			{Offset: 1, Color: rgba(c, 0)},
		},
	})
}
