// Package scene instantiates the effect population for a mode and keeps it
// in step with the drawing surface size.
package scene

import (
	"github.com/aquilax/go-perlin"

	"github.com/iburimskiy/etherwall/internal/effects"
	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/rng"
)

// Population sizes per effect category.
const (
	StarCount       = 220
	AuroraCount     = 4
	ShooterSlots    = 3
	SmokeSlots      = 96
	RippleSlots     = 6
	WaveRowCount    = 18
	waveRowMarginPc = 0.08
)

// Spawn timers, in simulated seconds.
const (
	ShooterFirstMin = 3.0
	ShooterFirstMax = 8.0
	ShooterNextMin  = 4.0
	ShooterNextMax  = 12.0
	SmokeEmitMin    = 0.08
	SmokeEmitMax    = 0.16
	ImpactMin       = 1.2
	ImpactMax       = 3.5
)

// Params are the structural inputs of a build.
type Params struct {
	Width, Height float64
	Mode          Mode
	OrbCount      int
}

// Scene is the full effect state of one mode. Collections a mode does not
// use stay empty.
type Scene struct {
	Mode          Mode
	Width, Height float64

	Stars    []*effects.Star
	Auroras  []*effects.Aurora
	Shooters []*effects.ShootingStar
	Pulses   []*effects.PulseRing
	Orbs     []*effects.Orb
	Smoke    []*effects.Smoke
	Ripples  []*effects.Ripple
	Waves    []*effects.WaveRow

	ShooterTimer float64
	EmitTimer    float64
	ImpactTimer  float64

	live  *palette.Palette
	rng   rng.Source
	noise *perlin.Perlin
	spawn int
}

// Build creates a fresh population. Colored primitives take palette cells
// round-robin so every cell is used evenly whatever the population size.
func Build(p Params, live *palette.Palette, r rng.Source) *Scene {
	s := &Scene{
		Mode:   p.Mode,
		Width:  p.Width,
		Height: p.Height,
		live:   live,
		rng:    r,
	}

	s.Stars = make([]*effects.Star, StarCount)
	for i := range s.Stars {
		s.Stars[i] = effects.NewStar(p.Width, p.Height, r)
	}

	if p.Mode != Ripple {
		s.Auroras = make([]*effects.Aurora, AuroraCount)
		for i := range s.Auroras {
			s.Auroras[i] = effects.NewAurora(live.Ref(i), r)
		}
	}

	s.Shooters = make([]*effects.ShootingStar, ShooterSlots)
	for i := range s.Shooters {
		s.Shooters[i] = effects.NewShootingStar()
	}
	s.ShooterTimer = rng.Range(r, ShooterFirstMin, ShooterFirstMax)

	switch p.Mode {
	case Orbs:
		n := max(p.OrbCount, 0)
		s.Orbs = make([]*effects.Orb, n)
		for i := range s.Orbs {
			s.Orbs[i] = effects.NewOrb(p.Width, p.Height, live.Ref(i), r)
		}
		s.Pulses = make([]*effects.PulseRing, 0, n)
	case Smoke:
		s.Smoke = make([]*effects.Smoke, SmokeSlots)
		for i := range s.Smoke {
			s.Smoke[i] = &effects.Smoke{}
		}
		s.EmitTimer = rng.Range(r, SmokeEmitMin, SmokeEmitMax)
	case Ripple:
		s.Ripples = make([]*effects.Ripple, RippleSlots)
		for i := range s.Ripples {
			s.Ripples[i] = &effects.Ripple{}
		}
		s.noise = effects.NewWaveNoise(r)
		s.Waves = make([]*effects.WaveRow, WaveRowCount)
		for i := range s.Waves {
			s.Waves[i] = effects.NewWaveRow(s.rowY(i), p.Width, live.Ref(i), s.noise, r)
		}
		s.ImpactTimer = rng.Range(r, ImpactMin, ImpactMax)
	}
	return s
}

// Resize reseeds the stars and hands the new bounds to orbs and wave rows.
// Orbs keep their position.
func (s *Scene) Resize(w, h float64) {
	s.Width, s.Height = w, h
	for _, st := range s.Stars {
		st.Init(w, h, s.rng)
	}
	for _, o := range s.Orbs {
		o.SetBounds(w, h)
	}
	for i, row := range s.Waves {
		row.SetBounds(s.rowY(i), w)
	}
}

func (s *Scene) rowY(i int) float64 {
	margin := s.Height * waveRowMarginPc
	return margin + (s.Height-2*margin)*float64(i)/float64(WaveRowCount-1)
}

// LaunchShooter activates the first idle shooting star. It reports false
// when every slot is busy.
func (s *Scene) LaunchShooter() bool {
	for _, sh := range s.Shooters {
		if !sh.Active {
			sh.Reset(s.Width, s.Height, s.rng)
			return true
		}
	}
	return false
}

// EmitSmoke recycles the first dead smoke slot.
func (s *Scene) EmitSmoke() bool {
	for _, p := range s.Smoke {
		if !p.Active {
			p.Spawn(s.Width, s.Height, s.nextRef(), s.rng)
			return true
		}
	}
	return false
}

// Impact recycles the first finished ripple slot.
func (s *Scene) Impact() bool {
	for _, p := range s.Ripples {
		if !p.Active {
			p.Spawn(s.Width, s.Height, s.nextRef(), s.rng)
			return true
		}
	}
	return false
}

// AddPulse spawns a ring around an orb that asked to pulse.
func (s *Scene) AddPulse(o *effects.Orb) {
	maxR := o.Radius * rng.Range(s.rng, effects.PulseMinScale, effects.PulseMaxScale)
	s.Pulses = append(s.Pulses, effects.NewPulseRing(o.X, o.Y, o.Color, maxR))
}

// PrunePulses drops finished rings from the active collection.
func (s *Scene) PrunePulses() {
	live := s.Pulses[:0]
	for _, p := range s.Pulses {
		if !p.Done {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(s.Pulses); i++ {
		s.Pulses[i] = nil
	}
	s.Pulses = live
}

// Counts reports the active population per category. Every category is
// present, idle ones with zero.
func (s *Scene) Counts() map[string]int {
	c := map[string]int{
		"stars":    len(s.Stars),
		"auroras":  len(s.Auroras),
		"orbs":     len(s.Orbs),
		"pulses":   len(s.Pulses),
		"waves":    len(s.Waves),
		"shooters": 0,
		"smoke":    0,
		"ripples":  0,
	}
	for _, sh := range s.Shooters {
		if sh.Active {
			c["shooters"]++
		}
	}
	for _, p := range s.Smoke {
		if p.Active {
			c["smoke"]++
		}
	}
	for _, p := range s.Ripples {
		if p.Active {
			c["ripples"]++
		}
	}
	return c
}

func (s *Scene) nextRef() palette.Ref {
	ref := s.live.Ref(s.spawn)
	s.spawn++
	return ref
}
