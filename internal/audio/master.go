package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// Master swell: a slow relative breathe on top of the ramped gain.
const (
	SwellRate  = 0.012
	SwellDepth = 0.03
)

// master applies a linearly ramped gain and the swell LFO. Its fields are
// shared with the output goroutine; callers hold the sink lock.
type master struct {
	s    beep.Streamer
	rate beep.SampleRate

	gain   float64
	target float64
	step   float64
	swell  float64
}

func newMaster(s beep.Streamer, rate beep.SampleRate) *master {
	return &master{s: s, rate: rate}
}

// rampTo moves the gain to target over d, starting from the current value.
func (m *master) rampTo(target float64, d time.Duration) {
	m.target = target
	n := m.rate.N(d)
	if n <= 0 {
		m.gain, m.step = target, 0
		return
	}
	m.step = (target - m.gain) / float64(n)
}

func (m *master) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = m.s.Stream(samples)
	sr := float64(m.rate)
	for i := 0; i < n; i++ {
		if m.step != 0 {
			m.gain += m.step
			if (m.step > 0 && m.gain >= m.target) || (m.step < 0 && m.gain <= m.target) {
				m.gain, m.step = m.target, 0
			}
		}
		g := m.gain * (1 + SwellDepth*math.Sin(2*math.Pi*m.swell))
		m.swell += SwellRate / sr
		m.swell -= math.Floor(m.swell)

		samples[i][0] *= g
		samples[i][1] *= g
	}
	return n, ok
}

func (m *master) Err() error { return m.s.Err() }
