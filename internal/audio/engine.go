// Package audio synthesizes the ambient drone: six filtered oscillators under
// a ramped master gain, a slow swell and a feedback delay reverb.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
)

const (
	SampleRate = beep.SampleRate(44100)

	// GainScale maps the 0..1 user volume onto master gain.
	GainScale = 0.14

	FadeIn       = 1600 * time.Millisecond
	FadeOut      = 450 * time.Millisecond
	TeardownWait = 500 * time.Millisecond
	VolumeRamp   = 150 * time.Millisecond

	DefaultVolume = 0.55
	tapRingSize   = 8192
)

// State is the lifecycle position of the engine.
type State int

const (
	Idle State = iota
	Playing
	Stopping
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Stopping:
		return "stopping"
	default:
		return "idle"
	}
}

// Engine owns the drone graph. Start builds a fresh graph, Stop fades it out
// and tears it down later. The lifecycle is guarded by mu; the graph itself
// is shared with the output goroutine and touched under the sink lock.
type Engine struct {
	mu     sync.Mutex
	sink   Sink
	after  func(time.Duration, func())
	logger *slog.Logger
	rate   beep.SampleRate

	state  State
	gen    uint64
	volume float64

	mixer    *beep.Mixer
	master   *master
	tap      *Tap
	ambience *ambience
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink replaces the speaker output.
func WithSink(s Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithAfterFunc replaces time.AfterFunc for the delayed teardown.
func WithAfterFunc(f func(time.Duration, func())) Option {
	return func(e *Engine) { e.after = f }
}

// WithVolume sets the initial user volume.
func WithVolume(v float64) Option {
	return func(e *Engine) { e.volume = clampVolume(v) }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		rate:   SampleRate,
		volume: DefaultVolume,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sink == nil {
		e.sink = NewSpeakerSink()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Start builds the graph and fades it in. It is a no-op unless idle. An
// output failure is logged and leaves the engine idle.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Idle {
		return
	}
	if err := e.sink.Init(e.rate); err != nil {
		e.logger.Warn("audio output unavailable", "error", err)
		return
	}

	e.mixer = &beep.Mixer{}
	for _, v := range droneVoices {
		e.mixer.Add(newVoice(v, e.rate))
	}
	e.master = newMaster(e.mixer, e.rate)
	e.tap = NewTap(newReverb(e.master, e.rate), tapRingSize)

	e.sink.Lock()
	if e.ambience != nil {
		e.ambience.attach(e.mixer)
	}
	e.master.rampTo(e.volume*GainScale, FadeIn)
	e.sink.Unlock()

	e.sink.Play(e.tap)
	e.state = Playing
	e.gen++
	e.logger.Info("drone started", "volume", e.volume)
}

// Stop fades the drone out and schedules teardown. Only the teardown of the
// latest Stop takes effect.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Playing {
		return
	}
	e.sink.Lock()
	e.master.rampTo(0, FadeOut)
	e.sink.Unlock()

	e.state = Stopping
	gen := e.gen
	e.after(TeardownWait, func() { e.teardown(gen) })
}

func (e *Engine) teardown(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gen != gen || e.state != Stopping {
		return
	}
	e.sink.Lock()
	if e.ambience != nil {
		e.ambience.detach()
	}
	e.sink.Unlock()
	e.sink.Clear()

	e.mixer, e.master = nil, nil
	e.state = Idle
	e.logger.Info("drone stopped")
}

// Toggle starts an idle engine and stops a playing one.
func (e *Engine) Toggle() {
	if e.State() == Idle {
		e.Start()
		return
	}
	e.Stop()
}

// SetVolume clamps v to [0,1] and ramps a playing drone to it.
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.volume = clampVolume(v)
	if e.state != Playing {
		return
	}
	e.sink.Lock()
	e.master.rampTo(e.volume*GainScale, VolumeRamp)
	e.sink.Unlock()
}

// Volume is the user-facing volume.
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// State reports the lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Playing is true between Start and Stop.
func (e *Engine) Playing() bool {
	return e.State() == Playing
}

// Level is the recent RMS output level, zero when nothing plays.
func (e *Engine) Level() float64 {
	e.mu.Lock()
	tap := e.tap
	idle := e.state == Idle
	e.mu.Unlock()

	if tap == nil || idle {
		return 0
	}
	return tap.Level(tapRingSize / 4)
}

// SetAmbience loads a looping file mixed under the drone. An empty path
// removes the current one.
func (e *Engine) SetAmbience(path string) error {
	var next *ambience
	if path != "" {
		a, err := loadAmbience(path, e.rate)
		if err != nil {
			return fmt.Errorf("failed to load ambience: %w", err)
		}
		next = a
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.ambience
	e.sink.Lock()
	if prev != nil {
		prev.detach()
	}
	if next != nil && e.mixer != nil {
		next.attach(e.mixer)
	}
	e.sink.Unlock()
	e.ambience = next

	if prev != nil {
		if err := prev.close(); err != nil {
			e.logger.Warn("failed to close ambience", "path", prev.path, "error", err)
		}
	}
	if next != nil {
		e.logger.Info("ambience loaded", "path", path)
	}
	return nil
}

// Ambience is the path of the loaded ambience file.
func (e *Engine) Ambience() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ambience == nil {
		return ""
	}
	return e.ambience.path
}

// Close silences the output immediately and releases the ambience file.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Idle {
		e.sink.Clear()
		e.state = Idle
		e.gen++
	}
	e.mixer, e.master = nil, nil

	if e.ambience == nil {
		return nil
	}
	err := e.ambience.close()
	e.ambience = nil
	return err
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultVolume
	}
	return math.Min(math.Max(v, 0), 1)
}
