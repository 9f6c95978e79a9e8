package engine

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/scene"
	"github.com/iburimskiy/etherwall/internal/surface"
)

// Compositing constants.
const (
	LinkDistance = 280.0
	LineAlpha    = 0.18
	LineWidth    = 1.0
)

// Background is the fade color laid over the previous frame.
var Background = surface.RGBA{R: 8, G: 8, B: 18}

// FadeAlpha is the per-mode background fade: a high value leaves short
// trails, a low one lets the frame persist.
var FadeAlpha = map[scene.Mode]float64{
	scene.Orbs:   0.22,
	scene.Smoke:  0.12,
	scene.Ripple: 0.05,
}

// Tick advances the simulation by dt seconds and draws one frame.
func (e *Engine) Tick(dt float64) {
	if e.scene == nil {
		e.rebuild("start")
	}
	speed := e.settings.AnimationSpeed

	if e.animator.Step(dt, speed) {
		e.metrics.PaletteRefreshed()
	}

	e.dst.SetBlend(surface.SourceOver)
	e.dst.Fill(Background.WithAlpha(FadeAlpha[e.mode]))

	switch e.mode {
	case scene.Orbs:
		e.drawAurora(dt, speed)
		e.drawStars(dt, speed)
		e.drawShooters(dt, speed)
		e.drawPulses(dt, speed)
		e.drawOrbs(dt, speed)
		e.drawLines()
	case scene.Smoke:
		e.drawAurora(dt, speed)
		e.drawStars(dt, speed)
		e.drawShooters(dt, speed)
		e.drawSmoke(dt, speed)
	case scene.Ripple:
		e.drawStars(dt, speed)
		e.drawShooters(dt, speed)
		e.drawWaves(dt, speed)
		e.drawRipples(dt, speed)
	}
	e.dst.SetBlend(surface.SourceOver)

	e.frames++
	e.metrics.ObserveFrame(dt)
	if e.frames%statsEvery == 0 {
		e.metrics.SetEffects(e.scene.Counts())
	}
}

func (e *Engine) drawAurora(dt, speed float64) {
	if !e.Fx.Aurora {
		return
	}
	e.dst.SetBlend(surface.Screen)
	for _, a := range e.scene.Auroras {
		a.Update(dt, speed)
		a.Draw(e.dst)
	}
}

func (e *Engine) drawStars(dt, speed float64) {
	if !e.Fx.Stars {
		return
	}
	e.dst.SetBlend(surface.SourceOver)
	for _, s := range e.scene.Stars {
		s.Update(dt, speed)
		s.Draw(e.dst)
	}
}

func (e *Engine) drawShooters(dt, speed float64) {
	if !e.Fx.Shooting {
		return
	}
	s := e.scene
	s.ShooterTimer -= dt * speed
	if s.ShooterTimer <= 0 {
		s.LaunchShooter()
		s.ShooterTimer = rng.Range(e.rng, scene.ShooterNextMin, scene.ShooterNextMax)
	}
	e.dst.SetBlend(surface.SourceOver)
	for _, sh := range s.Shooters {
		sh.Update(dt, speed)
		sh.Draw(e.dst)
	}
}

func (e *Engine) drawPulses(dt, speed float64) {
	e.dst.SetBlend(surface.Screen)
	for _, p := range e.scene.Pulses {
		p.Update(dt, speed)
		p.Draw(e.dst)
	}
	e.scene.PrunePulses()
}

func (e *Engine) drawOrbs(dt, speed float64) {
	opacity := e.settings.OrbOpacity
	e.dst.SetBlend(surface.Screen)
	for _, o := range e.scene.Orbs {
		o.Update(dt, speed)
		o.Draw(e.dst, opacity)
		if o.ShouldPulse() {
			e.scene.AddPulse(o)
		}
	}
}

// drawLines links orbs closer than LinkDistance, fading with the squared
// distance.
func (e *Engine) drawLines() {
	if !e.Fx.Lines {
		return
	}
	const maxD2 = LinkDistance * LinkDistance
	opacity := e.settings.OrbOpacity
	orbs := e.scene.Orbs

	e.dst.SetBlend(surface.SourceOver)
	for i := 0; i < len(orbs); i++ {
		for j := i + 1; j < len(orbs); j++ {
			a, b := orbs[i], orbs[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			d2 := dx*dx + dy*dy
			if d2 >= maxD2 {
				continue
			}
			c := a.Color.Color()
			e.dst.StrokeLine(a.X, a.Y, b.X, b.Y, LineWidth, surface.RGBA{
				R: roundChannel(c.R),
				G: roundChannel(c.G),
				B: roundChannel(c.B),
				A: (1 - d2/maxD2) * LineAlpha * opacity,
			})
		}
	}
}

func (e *Engine) drawSmoke(dt, speed float64) {
	s := e.scene
	s.EmitTimer -= dt * speed
	for s.EmitTimer <= 0 {
		s.EmitSmoke()
		s.EmitTimer += rng.Range(e.rng, scene.SmokeEmitMin, scene.SmokeEmitMax)
	}
	e.dst.SetBlend(surface.Screen)
	for _, p := range s.Smoke {
		p.Update(dt, speed)
		p.Draw(e.dst)
	}
}

func (e *Engine) drawWaves(dt, speed float64) {
	e.dst.SetBlend(surface.SourceOver)
	for _, row := range e.scene.Waves {
		row.Update(dt, speed)
		row.Draw(e.dst, e.scene.Ripples)
	}
}

func (e *Engine) drawRipples(dt, speed float64) {
	s := e.scene
	s.ImpactTimer -= dt * speed
	for s.ImpactTimer <= 0 {
		s.Impact()
		s.ImpactTimer += rng.Range(e.rng, scene.ImpactMin, scene.ImpactMax)
	}
	e.dst.SetBlend(surface.Screen)
	for _, p := range s.Ripples {
		p.Update(dt, speed)
		p.Draw(e.dst)
	}
}

func roundChannel(v float64) float64 { return math.Round(v) }
