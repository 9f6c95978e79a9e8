package effects

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/surface"
)

const (
	waveStep       = 8.0
	waveAlpha      = 0.14
	waveWidth      = 1.2
	waveNoiseScale = 0.004
	waveNoiseDrift = 0.15
	waveNoiseAmp   = 0.6
)

// NewWaveNoise seeds the drift field shared by the rows of one wave grid.
func NewWaveNoise(r rng.Source) *perlin.Perlin {
	return perlin.NewPerlin(2, 2, 3, r.Int63())
}

// WaveRow is one horizontal line of the ripple-mode wave grid. It undulates
// on its own and is lifted wherever a ripple ring passes under it.
type WaveRow struct {
	BaseY float64
	W     float64
	Amp   float64
	Freq  float64
	Phase float64
	Speed float64
	Color palette.Ref

	t     float64
	noise *perlin.Perlin
	pts   []surface.Point
}

func NewWaveRow(y, w float64, c palette.Ref, noise *perlin.Perlin, r rng.Source) *WaveRow {
	return &WaveRow{
		BaseY: y,
		W:     w,
		Amp:   rng.Range(r, 3, 9),
		Freq:  rng.Range(r, 0.004, 0.012),
		Phase: rng.Angle(r),
		Speed: rng.Range(r, 0.3, 0.8),
		Color: c,
		noise: noise,
	}
}

// SetBounds moves the row to a new baseline and width.
func (w *WaveRow) SetBounds(y, width float64) {
	w.BaseY, w.W = y, width
}

func (w *WaveRow) Update(dt, speed float64) {
	w.Phase += dt * w.Speed * speed
	w.t += dt * speed
}

// Y is the displaced height of the row at x.
func (w *WaveRow) Y(x float64, ripples []*Ripple) float64 {
	y := w.BaseY + math.Sin(x*w.Freq+w.Phase)*w.Amp
	if w.noise != nil {
		y += w.noise.Noise2D(x*waveNoiseScale, w.BaseY*waveNoiseScale+w.t*waveNoiseDrift) * w.Amp * waveNoiseAmp
	}
	for _, p := range ripples {
		y -= p.Displacement(x, w.BaseY)
	}
	return y
}

func (w *WaveRow) Draw(dst surface.Surface, ripples []*Ripple) {
	w.pts = w.pts[:0]
	for x := 0.0; x <= w.W; x += waveStep {
		w.pts = append(w.pts, surface.Point{X: x, Y: w.Y(x, ripples)})
	}
	dst.StrokePolyline(w.pts, waveWidth, rgba(w.Color.Color(), waveAlpha))
}
