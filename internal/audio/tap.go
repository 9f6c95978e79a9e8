package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap passes a stream through unchanged and keeps its last samples in a ring
// so the renderer can read the output level.
type Tap struct {
	Source beep.Streamer

	mu     sync.RWMutex
	buffer [][2]float64
	next   int
	filled bool
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([][2]float64, max(ringSize, 1)),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.next] = samples[i]
			t.next++
			if t.next >= len(t.buffer) {
				t.next = 0
				t.filled = true
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot returns up to the last n samples, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	avail := t.next
	if t.filled {
		avail = len(t.buffer)
	}
	n = min(n, avail)

	out := make([][2]float64, n)
	idx := t.next - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// Level is the RMS of the mono mix over the last n samples.
func (t *Tap) Level(n int) float64 {
	samples := t.Snapshot(n)
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sum += mono * mono
	}
	return math.Sqrt(sum / float64(len(samples)))
}
