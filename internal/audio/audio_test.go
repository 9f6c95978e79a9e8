package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	lock sync.Mutex

	mu      sync.Mutex
	initErr error
	inits   int
	played  []beep.Streamer
	clears  int
}

func (s *fakeSink) Init(beep.SampleRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inits++
	return s.initErr
}

func (s *fakeSink) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played = append(s.played, st)
}

func (s *fakeSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
}

func (s *fakeSink) Lock()   { s.lock.Lock() }
func (s *fakeSink) Unlock() { s.lock.Unlock() }

// timers collects delayed callbacks so tests decide when they fire.
type timers struct {
	pending []func()
	delays  []time.Duration
}

func (t *timers) after(d time.Duration, f func()) {
	t.delays = append(t.delays, d)
	t.pending = append(t.pending, f)
}

func newTestEngine(sink *fakeSink, tm *timers) *Engine {
	return New(WithSink(sink), WithAfterFunc(tm.after))
}

func pull(s beep.Streamer, n int) [][2]float64 {
	out := make([][2]float64, 0, n)
	buf := make([][2]float64, 512)
	for len(out) < n {
		k := min(len(buf), n-len(out))
		got, _ := s.Stream(buf[:k])
		out = append(out, buf[:got]...)
		if got == 0 {
			break
		}
	}
	return out
}

// sliceStreamer plays data then endless silence.
type sliceStreamer struct {
	data [][2]float64
	pos  int
}

func (s *sliceStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos < len(s.data) {
			samples[i] = s.data[s.pos]
		} else {
			samples[i] = [2]float64{}
		}
		s.pos++
	}
	return len(samples), true
}

func (s *sliceStreamer) Err() error { return nil }

type constStreamer float64

func (c constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{float64(c), float64(c)}
	}
	return len(samples), true
}

func (constStreamer) Err() error { return nil }

func rms(samples [][2]float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s[0] * s[0]
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func TestStartIsIdempotent(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := newTestEngine(sink, tm)

	e.Start()
	e.Start()

	assert.True(t, e.Playing())
	assert.Len(t, sink.played, 1)
	assert.Equal(t, len(droneVoices), e.mixer.Len())
}

func TestStartFadesIn(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := New(WithSink(sink), WithAfterFunc(tm.after), WithVolume(0.5))
	e.Start()
	require.Len(t, sink.played, 1)

	assert.Zero(t, e.master.gain)
	pull(sink.played[0], SampleRate.N(FadeIn)/2)
	assert.InDelta(t, 0.5*GainScale/2, e.master.gain, 1e-3)

	pull(sink.played[0], SampleRate.N(FadeIn))
	assert.InDelta(t, 0.5*GainScale, e.master.gain, 1e-9)
}

func TestStartFailureLeavesEngineIdle(t *testing.T) {
	sink := &fakeSink{initErr: errors.New("no device")}
	e := newTestEngine(sink, &timers{})

	e.Start()

	assert.False(t, e.Playing())
	assert.Equal(t, Idle, e.State())
	assert.Empty(t, sink.played)
	assert.Zero(t, e.Level())
}

func TestStopTearsDownAfterDelay(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := newTestEngine(sink, tm)
	e.Start()

	e.Stop()
	assert.Equal(t, Stopping, e.State())
	assert.False(t, e.Playing())
	assert.Zero(t, e.master.target)
	require.Len(t, tm.pending, 1)
	assert.Equal(t, TeardownWait, tm.delays[0])
	assert.GreaterOrEqual(t, TeardownWait, FadeOut)

	e.Stop()
	assert.Len(t, tm.pending, 1, "second stop is a no-op")

	tm.pending[0]()
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 1, sink.clears)
}

func TestStartWhileStoppingIsNoop(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := newTestEngine(sink, tm)
	e.Start()
	e.Stop()

	e.Start()
	assert.Equal(t, Stopping, e.State())
	assert.Len(t, sink.played, 1)

	tm.pending[0]()
	e.Start()
	assert.True(t, e.Playing())
	assert.Len(t, sink.played, 2)
}

func TestStaleTeardownIsIgnored(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := newTestEngine(sink, tm)

	e.Start()
	e.Stop()
	tm.pending[0]()
	e.Start()
	e.Stop()
	require.Len(t, tm.pending, 2)

	// The first teardown firing again must not touch the second cycle.
	tm.pending[0]()
	assert.Equal(t, Stopping, e.State())
	assert.Equal(t, 1, sink.clears)

	tm.pending[1]()
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 2, sink.clears)
}

func TestSetVolumeClampsAndRamps(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := newTestEngine(sink, tm)

	e.SetVolume(3)
	assert.Equal(t, 1.0, e.Volume())
	e.SetVolume(-1)
	assert.Equal(t, 0.0, e.Volume())
	e.SetVolume(math.NaN())
	assert.Equal(t, DefaultVolume, e.Volume())

	e.Start()
	pull(sink.played[0], SampleRate.N(FadeIn))
	e.SetVolume(0.2)
	assert.InDelta(t, 0.2*GainScale, e.master.target, 1e-12)

	pull(sink.played[0], SampleRate.N(VolumeRamp))
	assert.InDelta(t, 0.2*GainScale, e.master.gain, 1e-9)
}

func TestToggle(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := newTestEngine(sink, tm)

	e.Toggle()
	assert.True(t, e.Playing())
	e.Toggle()
	assert.Equal(t, Stopping, e.State())
}

func TestPlayingOutputIsAudible(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := newTestEngine(sink, tm)
	e.Start()

	out := pull(sink.played[0], SampleRate.N(2*time.Second))
	tail := out[len(out)-4096:]
	assert.Greater(t, rms(tail), 0.001)
	assert.Greater(t, e.Level(), 0.0)
	for _, s := range tail {
		assert.Less(t, math.Abs(s[0]), 1.0)
	}
}

func TestMasterRamp(t *testing.T) {
	m := newMaster(constStreamer(1), 1000)
	m.rampTo(1, time.Second)

	pull(m, 500)
	assert.InDelta(t, 0.5, m.gain, 1e-9)

	out := pull(m, 600)
	assert.Equal(t, 1.0, m.gain)
	assert.Zero(t, m.step)
	last := out[len(out)-1][0]
	assert.InDelta(t, 1, last, SwellDepth+1e-9)

	m.rampTo(0, 0)
	assert.Zero(t, m.gain)
}

func TestOscillatorShapes(t *testing.T) {
	sine := newOscillator(250, Sine, 0, 0, 1000)
	out := pull(sine, 4)
	assert.InDelta(t, 0, out[0][0], 1e-9)
	assert.InDelta(t, 1, out[1][0], 1e-9)
	assert.InDelta(t, 0, out[2][0], 1e-9)
	assert.InDelta(t, -1, out[3][0], 1e-9)

	tri := newOscillator(100, Triangle, 0.5, 5, 1000)
	for _, s := range pull(tri, 2000) {
		assert.LessOrEqual(t, math.Abs(s[0]), 1.0)
		assert.Equal(t, s[0], s[1])
	}
}

func TestLowpass(t *testing.T) {
	tests := []struct {
		name     string
		freq     float64
		min, max float64
	}{
		{name: "passes low tones", freq: 50, min: 0.6, max: 0.8},
		{name: "cuts high tones", freq: 5000, min: 0, max: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc := newOscillator(tt.freq, Sine, 0, 0, SampleRate)
			f := newLowpass(osc, 400, LowpassQ, SampleRate)
			out := pull(f, 44100)
			level := rms(out[22050:])
			assert.GreaterOrEqual(t, level, tt.min)
			assert.LessOrEqual(t, level, tt.max)
		})
	}
}

func TestVoiceCutoff(t *testing.T) {
	assert.Equal(t, 800.0, cutoff(1))
	assert.Equal(t, 1200.0, cutoff(0.5))
	assert.InDelta(t, 266.67, cutoff(3), 0.01)
}

func TestReverbEchoes(t *testing.T) {
	src := &sliceStreamer{data: [][2]float64{{1, 1}}}
	r := newReverb(src, 1000)

	out := pull(r, 1500)
	assert.Equal(t, 1.0, out[0][0], "dry signal passes")
	assert.Zero(t, out[100][0])
	assert.InDelta(t, ReverbWet, out[710][0], 1e-9)
	assert.InDelta(t, ReverbFeedbackA*ReverbWet, out[1300][0], 1e-9)
}

func TestTapSnapshotAndLevel(t *testing.T) {
	data := make([][2]float64, 10)
	for i := range data {
		data[i] = [2]float64{float64(i), float64(i)}
	}
	tap := NewTap(&sliceStreamer{data: data}, 4)

	assert.Empty(t, tap.Snapshot(4))
	assert.Zero(t, tap.Level(4))

	pull(tap, 3)
	assert.Equal(t, [][2]float64{{1, 1}, {2, 2}}, tap.Snapshot(2))

	pull(tap, 3)
	assert.Equal(t, [][2]float64{{2, 2}, {3, 3}, {4, 4}, {5, 5}}, tap.Snapshot(10))

	level := NewTap(constStreamer(0.5), 16)
	pull(level, 16)
	assert.InDelta(t, 0.5, level.Level(16), 1e-12)
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	_, _, err := Decode("song.ogg")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = Decode(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func writeWav(t *testing.T, rate beep.SampleRate) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rain.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	tone := beep.Take(rate.N(100*time.Millisecond), newOscillator(220, Sine, 0, 0, rate))
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, tone, format))
	return path
}

func TestAmbienceMixesUnderDrone(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := newTestEngine(sink, tm)
	path := writeWav(t, 22050)

	require.NoError(t, e.SetAmbience(path))
	assert.Equal(t, path, e.Ambience())

	e.Start()
	assert.Equal(t, len(droneVoices)+1, e.mixer.Len())

	// The loop keeps the mixer populated well past the file length.
	pull(sink.played[0], SampleRate.N(300*time.Millisecond))
	assert.Equal(t, len(droneVoices)+1, e.mixer.Len())

	require.NoError(t, e.SetAmbience(""))
	assert.Empty(t, e.Ambience())
	pull(sink.played[0], 1024)
	assert.Equal(t, len(droneVoices), e.mixer.Len())
}

func TestAmbienceLoadedWhilePlaying(t *testing.T) {
	sink, tm := &fakeSink{}, &timers{}
	e := newTestEngine(sink, tm)
	e.Start()

	require.NoError(t, e.SetAmbience(writeWav(t, SampleRate)))
	assert.Equal(t, len(droneVoices)+1, e.mixer.Len())

	assert.Error(t, e.SetAmbience("notes.txt"))
	assert.NotEmpty(t, e.Ambience(), "failed load keeps the previous file")

	require.NoError(t, e.Close())
	assert.Equal(t, Idle, e.State())
	assert.Empty(t, e.Ambience())
}
