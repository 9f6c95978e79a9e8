// Package game hosts the engine in an ebiten window: it feeds frames,
// translates keys into commands, opens dialogs and draws the overlay.
package game

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/etherwall/internal/audio"
	"github.com/iburimskiy/etherwall/internal/config"
	"github.com/iburimskiy/etherwall/internal/controls"
	"github.com/iburimskiy/etherwall/internal/engine"
	"github.com/iburimskiy/etherwall/internal/metrics"
	"github.com/iburimskiy/etherwall/internal/surface/canvas"
)

const statusTTL = 2 * time.Second

// Options wires the collaborators of a Game.
type Options struct {
	Engine  *engine.Engine
	Canvas  *canvas.Canvas
	Audio   *audio.Engine
	Config  *config.File
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	ShowHUD bool
}

// Game implements ebiten.Game.
type Game struct {
	engine   *engine.Engine
	canvas   *canvas.Canvas
	audio    *audio.Engine
	controls *controls.Controller
	metrics  *metrics.Metrics
	logger   *slog.Logger

	// inbox carries work from dialog goroutines to the frame goroutine.
	inbox      chan func()
	dialogOpen atomic.Bool

	// input edge detection
	prevKey map[ebiten.Key]bool

	hud         bool
	status      string
	statusUntil time.Time
	level       float64
	started     time.Time
}

func New(o Options) *Game {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var a controls.Audio
	if o.Audio != nil {
		a = o.Audio
	}
	return &Game{
		engine:   o.Engine,
		canvas:   o.Canvas,
		audio:    o.Audio,
		controls: controls.New(o.Engine, a, o.Config, logger),
		metrics:  o.Metrics,
		logger:   logger,
		inbox:    make(chan func(), 16),
		prevKey:  map[ebiten.Key]bool{},
		hud:      o.ShowHUD,
		started:  time.Now(),
	}
}

// Config is the configuration as changed by the user so far.
func (g *Game) Config() *config.File { return g.controls.Config() }

func (g *Game) Update() error {
	g.drain()

	if err := g.handleInput(); err != nil {
		return err
	}

	g.engine.Frame(time.Now())
	g.updateLevel()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.canvas.Image(), nil)

	if g.hud {
		g.drawHUD(screen)
	}
	g.drawStatus(screen)
}

// Layout follows the window size; the canvas is resized to match.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.engine.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) drain() {
	for {
		select {
		case f := <-g.inbox:
			f()
		default:
			return
		}
	}
}

// post schedules f on the frame goroutine.
func (g *Game) post(f func()) {
	g.inbox <- f
}

func (g *Game) flash(msg string) {
	if msg == "" {
		return
	}
	g.status = msg
	g.statusUntil = time.Now().Add(statusTTL)
}

func (g *Game) fail(err error) {
	g.logger.Warn("command failed", "error", err)
	g.flash("error: " + err.Error())
}

func (g *Game) updateLevel() {
	if g.audio == nil {
		return
	}
	raw := g.audio.Level()
	g.metrics.SetAudioLevel(raw)
	// compressed for display
	g.level = config.SmoothingFactor*g.level + (1-config.SmoothingFactor)*math.Pow(raw, 0.3)
}
