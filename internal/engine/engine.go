// Package engine runs the animation: it owns the settings, the palette
// animator and the scene, and composes one frame per tick onto a surface.
package engine

import (
	"log/slog"
	"time"

	"github.com/iburimskiy/etherwall/internal/config"
	"github.com/iburimskiy/etherwall/internal/metrics"
	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/scene"
	"github.com/iburimskiy/etherwall/internal/surface"
)

const (
	// MaxFrameDelta caps the simulated step after stalls.
	MaxFrameDelta = 0.1
	// FirstFrameDelta is used when there is no previous frame.
	FirstFrameDelta = 0.016

	statsEvery = 30
)

// Engine drives one scene. It is not safe for concurrent use; the host
// calls it from its frame goroutine only.
type Engine struct {
	// Fx is read every tick and may be changed between ticks.
	Fx Fx

	dst      surface.Surface
	settings config.Settings
	mode     scene.Mode
	animator *palette.Animator
	scene    *scene.Scene
	rng      rng.Source
	logger   *slog.Logger
	metrics  *metrics.Metrics

	running bool
	last    time.Time
	hasLast bool
	frames  uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the random source, e.g. a seeded one for tests.
func WithRand(r rng.Source) Option {
	return func(e *Engine) { e.rng = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSettings sets the initial settings; they are clamped.
func WithSettings(s config.Settings) Option {
	return func(e *Engine) { e.settings = s.Clamped() }
}

func WithMode(m scene.Mode) Option {
	return func(e *Engine) { e.mode = m }
}

func WithFx(fx Fx) Option {
	return func(e *Engine) { e.Fx = fx }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates a stopped engine drawing on dst.
func New(dst surface.Surface, opts ...Option) *Engine {
	e := &Engine{
		Fx:       DefaultFx(),
		dst:      dst,
		settings: config.DefaultSettings(),
		mode:     scene.Orbs,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rng.New(0)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.animator = palette.NewAnimator(palette.SourceFor(e.settings.ColorTheme), e.rng)
	return e
}

// Start builds a fresh scene and resumes the frame loop. It is a no-op
// while running.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.rebuild("start")
	e.running = true
	e.hasLast = false
}

// Stop pauses the frame loop. The scene is kept.
func (e *Engine) Stop() {
	e.running = false
}

func (e *Engine) Running() bool { return e.running }

// Frame advances the engine to wall-clock time now. It does nothing while
// stopped.
func (e *Engine) Frame(now time.Time) {
	if !e.running {
		return
	}
	dt := FirstFrameDelta
	if e.hasLast {
		dt = min(max(now.Sub(e.last).Seconds(), 0), MaxFrameDelta)
	}
	e.last, e.hasLast = now, true
	e.Tick(dt)
}

// ApplySettings merges a partial update. A change of orb count or theme
// rebuilds the scene; a theme change also swaps the palette source.
func (e *Engine) ApplySettings(p config.Patch) bool {
	next, structural := e.settings.Merge(p)
	themeChanged := next.ColorTheme != e.settings.ColorTheme
	e.settings = next

	if themeChanged {
		e.animator.SetSource(palette.SourceFor(next.ColorTheme))
		e.logger.Info("color theme changed", "theme", palette.Themes[next.ColorTheme].Name)
	}
	if structural && e.scene != nil {
		e.rebuild("settings")
	}
	return structural
}

// Settings returns the current settings.
func (e *Engine) Settings() config.Settings { return e.settings }

// SetMode switches the mode and always rebuilds a started scene.
func (e *Engine) SetMode(m scene.Mode) {
	e.mode = m
	e.logger.Info("mode changed", "mode", m)
	if e.scene != nil {
		e.rebuild("mode")
	}
}

func (e *Engine) Mode() scene.Mode { return e.mode }

// Resize resizes the surface and refits the scene.
func (e *Engine) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if cw, ch := e.dst.Size(); cw == w && ch == h {
		return
	}
	e.dst.Resize(w, h)
	if e.scene != nil {
		e.scene.Resize(float64(w), float64(h))
	}
	e.logger.Debug("surface resized", "width", w, "height", h)
}

// Scene exposes the live scene, nil before the first Start.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// Animator exposes the palette animator.
func (e *Engine) Animator() *palette.Animator { return e.animator }

func (e *Engine) rebuild(reason string) {
	w, h := e.dst.Size()
	e.scene = scene.Build(scene.Params{
		Width:    float64(w),
		Height:   float64(h),
		Mode:     e.mode,
		OrbCount: e.settings.OrbCount,
	}, e.animator.Current(), e.rng)

	e.metrics.SceneRebuilt(reason)
	e.logger.Debug("scene rebuilt", "reason", reason, "mode", e.mode, "orbs", len(e.scene.Orbs))
}
