package audio

import (
	"math"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Triangle
)

// BaseFreq is the drone root (A2).
const BaseFreq = 110.0

type voiceSpec struct {
	ratio    float64
	wave     Wave
	gain     float64
	lfoFreq  float64
	lfoCents float64
}

// Drone voices over BaseFreq: root, fifth, octave, minor 7th harmonic,
// twelfth and sub-octave.
var droneVoices = []voiceSpec{
	{1.000, Sine, 0.28, 0.025, 2.5},
	{1.500, Sine, 0.18, 0.038, 3.0},
	{2.000, Triangle, 0.10, 0.051, 4.0},
	{2.667, Sine, 0.07, 0.064, 3.5},
	{3.000, Triangle, 0.05, 0.079, 5.0},
	{0.500, Sine, 0.12, 0.018, 2.0},
}

// oscillator is an endless mono wave whose pitch wobbles with a slow sine
// LFO, in cents.
type oscillator struct {
	freq     float64
	wave     Wave
	phase    float64
	lfoFreq  float64
	lfoCents float64
	lfoPhase float64
	rate     beep.SampleRate
}

func newOscillator(freq float64, wave Wave, lfoFreq, lfoCents float64, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		wave:     wave,
		lfoFreq:  lfoFreq,
		lfoCents: lfoCents,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	sr := float64(o.rate)
	for i := range samples {
		var val float64
		switch o.wave {
		case Triangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		cents := o.lfoCents * math.Sin(2*math.Pi*o.lfoPhase)
		o.phase += o.freq * math.Exp2(cents/1200) / sr
		o.phase -= math.Floor(o.phase)
		o.lfoPhase += o.lfoFreq / sr
		o.lfoPhase -= math.Floor(o.lfoPhase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// cutoff softens the upper voices.
func cutoff(ratio float64) float64 {
	return math.Min(800/ratio, 1200)
}

// newVoice wires oscillator -> low-pass -> gain.
func newVoice(v voiceSpec, rate beep.SampleRate) beep.Streamer {
	osc := newOscillator(BaseFreq*v.ratio, v.wave, v.lfoFreq, v.lfoCents, rate)
	filtered := newLowpass(osc, cutoff(v.ratio), LowpassQ, rate)
	return newVolume(filtered, v.gain)
}

// newVolume maps a linear gain onto effects.Volume. Log2(0) is -Inf, so
// zero becomes a silent volume.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
