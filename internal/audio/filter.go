package audio

import (
	"math"

	"github.com/faiface/beep"
)

// LowpassQ is the resonance of every voice filter.
const LowpassQ = 0.7

// lowpass is a stereo biquad low-pass (RBJ cookbook coefficients).
type lowpass struct {
	s beep.Streamer

	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

func newLowpass(s beep.Streamer, freq, q float64, rate beep.SampleRate) *lowpass {
	w0 := 2 * math.Pi * freq / float64(rate)
	cosw, sinw := math.Cos(w0), math.Sin(w0)
	alpha := sinw / (2 * q)
	a0 := 1 + alpha

	return &lowpass{
		s:  s,
		b0: (1 - cosw) / 2 / a0,
		b1: (1 - cosw) / a0,
		b2: (1 - cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *lowpass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			x := samples[i][c]
			y := f.b0*x + f.b1*f.x1[c] + f.b2*f.x2[c] - f.a1*f.y1[c] - f.a2*f.y2[c]
			f.x2[c], f.x1[c] = f.x1[c], x
			f.y2[c], f.y1[c] = f.y1[c], y
			samples[i][c] = y
		}
	}
	return n, ok
}

func (f *lowpass) Err() error { return f.s.Err() }
