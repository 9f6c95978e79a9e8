package palette

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/rng"
)

const (
	// RefreshInterval is the simulated time between target changes.
	RefreshInterval = 30.0
	// SmoothingRate gives ~90% convergence to a new target in ~8s.
	SmoothingRate = 0.38
)

// Animator eases the current palette toward a periodically replaced target.
// Both palettes keep their identity for the animator's lifetime.
type Animator struct {
	current *Palette
	target  *Palette
	timer   float64
	source  Source
	rng     rng.Source
}

func NewAnimator(src Source, r rng.Source) *Animator {
	a := &Animator{
		current: new(Palette),
		target:  new(Palette),
		timer:   RefreshInterval,
		source:  src,
		rng:     r,
	}
	a.current.Assign(src.Next(r))
	a.target.Assign(src.Next(r))
	return a
}

// Current is the live palette read by every effect.
func (a *Animator) Current() *Palette { return a.current }

// Target is the palette the current one is easing toward.
func (a *Animator) Target() *Palette { return a.target }

// Timer is the simulated time left before the next refresh.
func (a *Animator) Timer() float64 { return a.timer }

// SetSource swaps the palette strategy and retargets immediately.
func (a *Animator) SetSource(src Source) {
	a.source = src
	a.Refresh()
}

// Refresh overwrites the target in place and restarts the countdown.
func (a *Animator) Refresh() {
	a.target.Assign(a.source.Next(a.rng))
	a.timer = RefreshInterval
}

// Step advances the countdown and eases the current palette. It reports
// whether the target was refreshed during this step.
func (a *Animator) Step(dt, speed float64) bool {
	refreshed := false
	a.timer -= dt * speed
	if a.timer <= 0 {
		a.Refresh()
		refreshed = true
	}

	f := 1 - math.Exp(-dt*SmoothingRate*speed)
	for i := range a.current {
		cur, tgt := &a.current[i], a.target[i]
		cur.R += (tgt.R - cur.R) * f
		cur.G += (tgt.G - cur.G) * f
		cur.B += (tgt.B - cur.B) * f
	}
	return refreshed
}
