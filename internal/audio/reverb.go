package audio

import (
	"time"

	"github.com/faiface/beep"
)

// Room reverb: two delay lines feeding each other.
const (
	ReverbDelayA    = 710 * time.Millisecond
	ReverbDelayB    = 590 * time.Millisecond
	ReverbFeedbackA = 0.30
	ReverbFeedbackB = 0.28
	ReverbWet       = 0.45
)

type delayLine struct {
	buf [][2]float64
	pos int
}

func newDelayLine(n int) *delayLine {
	return &delayLine{buf: make([][2]float64, max(n, 1))}
}

// tap returns the sample written len(buf) samples ago.
func (d *delayLine) tap() [2]float64 { return d.buf[d.pos] }

func (d *delayLine) write(v [2]float64) {
	d.buf[d.pos] = v
	d.pos++
	if d.pos >= len(d.buf) {
		d.pos = 0
	}
}

// reverb passes the dry signal through and adds the wet output of a
// cross-feedback delay pair: the input and B's feedback enter A, A's
// feedback enters B.
type reverb struct {
	s    beep.Streamer
	a, b *delayLine
}

func newReverb(s beep.Streamer, rate beep.SampleRate) *reverb {
	return &reverb{
		s: s,
		a: newDelayLine(rate.N(ReverbDelayA)),
		b: newDelayLine(rate.N(ReverbDelayB)),
	}
}

func (r *reverb) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.s.Stream(samples)
	for i := 0; i < n; i++ {
		outA, outB := r.a.tap(), r.b.tap()
		var inA, inB [2]float64
		for c := 0; c < 2; c++ {
			inA[c] = samples[i][c] + outB[c]*ReverbFeedbackB
			inB[c] = outA[c] * ReverbFeedbackA
			samples[i][c] += (outA[c] + outB[c]) * ReverbWet
		}
		r.a.write(inA)
		r.b.write(inB)
	}
	return n, ok
}

func (r *reverb) Err() error { return r.s.Err() }
