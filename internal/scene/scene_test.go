package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/rng"
)

func live() *palette.Palette {
	p := palette.GenerateCalm(rng.New(1))
	return &p
}

func TestBuildPopulations(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		orbs     int
		auroras  int
		smoke    int
		ripples  int
		waveRows int
	}{
		{"orbs", Params{Width: 1280, Height: 720, Mode: Orbs, OrbCount: 12}, 12, AuroraCount, 0, 0, 0},
		{"orbs zero", Params{Width: 1280, Height: 720, Mode: Orbs, OrbCount: 0}, 0, AuroraCount, 0, 0, 0},
		{"orbs negative", Params{Width: 1280, Height: 720, Mode: Orbs, OrbCount: -4}, 0, AuroraCount, 0, 0, 0},
		{"smoke", Params{Width: 1280, Height: 720, Mode: Smoke, OrbCount: 12}, 0, AuroraCount, SmokeSlots, 0, 0},
		{"ripple", Params{Width: 1280, Height: 720, Mode: Ripple, OrbCount: 12}, 0, 0, 0, RippleSlots, WaveRowCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Build(tt.params, live(), rng.New(2))
			assert.Len(t, s.Stars, StarCount)
			assert.Len(t, s.Shooters, ShooterSlots)
			assert.Len(t, s.Orbs, tt.orbs)
			assert.Len(t, s.Auroras, tt.auroras)
			assert.Len(t, s.Smoke, tt.smoke)
			assert.Len(t, s.Ripples, tt.ripples)
			assert.Len(t, s.Waves, tt.waveRows)
			assert.Empty(t, s.Pulses)
			for _, sh := range s.Shooters {
				assert.False(t, sh.Active)
			}
			assert.GreaterOrEqual(t, s.ShooterTimer, ShooterFirstMin)
			assert.LessOrEqual(t, s.ShooterTimer, ShooterFirstMax)
		})
	}
}

func TestBuildAssignsPaletteRoundRobin(t *testing.T) {
	p := live()
	s := Build(Params{Width: 800, Height: 600, Mode: Orbs, OrbCount: 10}, p, rng.New(3))
	for i, o := range s.Orbs {
		assert.Equal(t, i%palette.Size, o.Color.Index())
		assert.Same(t, p, o.Color.Palette())
	}
	for i, a := range s.Auroras {
		assert.Equal(t, i%palette.Size, a.Color.Index())
	}

	p[1] = palette.Color{R: 1, G: 2, B: 3}
	assert.Equal(t, palette.Color{R: 1, G: 2, B: 3}, s.Orbs[5].Color.Color())
}

func TestBuildIsStructurallyIdempotent(t *testing.T) {
	params := Params{Width: 1024, Height: 768, Mode: Orbs, OrbCount: 7}
	a := Build(params, live(), rng.New(99))
	b := Build(params, live(), rng.New(99))

	assert.Equal(t, a.Counts(), b.Counts())
	require.Len(t, b.Orbs, len(a.Orbs))
	for i := range a.Orbs {
		assert.Equal(t, a.Orbs[i].X, b.Orbs[i].X, "same seed, same positions")
		assert.Equal(t, a.Orbs[i].Radius, b.Orbs[i].Radius)
	}
	for i := range a.Stars {
		assert.Equal(t, *a.Stars[i], *b.Stars[i])
	}
}

func TestResize(t *testing.T) {
	s := Build(Params{Width: 800, Height: 600, Mode: Orbs, OrbCount: 4}, live(), rng.New(4))
	x, y := s.Orbs[0].X, s.Orbs[0].Y

	s.Resize(3000, 2000)
	assert.Equal(t, x, s.Orbs[0].X)
	assert.Equal(t, y, s.Orbs[0].Y)
	assert.Equal(t, 3000.0, s.Orbs[0].W)
	beyond := 0
	for _, st := range s.Stars {
		assert.LessOrEqual(t, st.X, 3000.0)
		assert.LessOrEqual(t, st.Y, 2000.0)
		if st.X > 800 || st.Y > 600 {
			beyond++
		}
	}
	assert.Positive(t, beyond, "stars reseed across the new frame")
}

func TestResizeMovesWaveRows(t *testing.T) {
	s := Build(Params{Width: 800, Height: 600, Mode: Ripple}, live(), rng.New(5))
	first, last := s.Waves[0], s.Waves[WaveRowCount-1]
	assert.InDelta(t, 600*waveRowMarginPc, first.BaseY, 1e-9)
	assert.InDelta(t, 600*(1-waveRowMarginPc), last.BaseY, 1e-9)

	s.Resize(1000, 1000)
	assert.InDelta(t, 1000*waveRowMarginPc, first.BaseY, 1e-9)
	assert.Equal(t, 1000.0, last.W)
}

func TestLaunchShooterUsesIdleSlots(t *testing.T) {
	s := Build(Params{Width: 800, Height: 600, Mode: Orbs}, live(), rng.New(6))
	for i := 0; i < ShooterSlots; i++ {
		assert.True(t, s.LaunchShooter())
	}
	assert.False(t, s.LaunchShooter(), "pool exhausted")
	assert.Equal(t, ShooterSlots, s.Counts()["shooters"])
}

func TestCountsReportsIdleKinds(t *testing.T) {
	s := Build(Params{Width: 800, Height: 600, Mode: Orbs, OrbCount: 3}, live(), rng.New(9))
	c := s.Counts()
	for _, kind := range []string{"stars", "auroras", "orbs", "pulses", "waves", "shooters", "smoke", "ripples"} {
		assert.Contains(t, c, kind)
	}
	assert.Zero(t, c["shooters"])
	assert.Zero(t, c["smoke"])
	assert.Equal(t, 3, c["orbs"])
}

func TestEmitSmokeRecyclesSlots(t *testing.T) {
	s := Build(Params{Width: 800, Height: 600, Mode: Smoke}, live(), rng.New(7))
	for i := 0; i < SmokeSlots; i++ {
		require.True(t, s.EmitSmoke())
	}
	assert.False(t, s.EmitSmoke())

	s.Smoke[10].Active = false
	assert.True(t, s.EmitSmoke())
	assert.True(t, s.Smoke[10].Active)
	assert.Equal(t, SmokeSlots, s.Counts()["smoke"])
}

func TestImpactRecyclesSlots(t *testing.T) {
	s := Build(Params{Width: 800, Height: 600, Mode: Ripple}, live(), rng.New(8))
	for i := 0; i < RippleSlots; i++ {
		require.True(t, s.Impact())
	}
	assert.False(t, s.Impact())
	assert.Equal(t, 0, s.Ripples[0].Color.Index())
	assert.Equal(t, 1, s.Ripples[1].Color.Index())
}

func TestPulsesPrune(t *testing.T) {
	s := Build(Params{Width: 800, Height: 600, Mode: Orbs, OrbCount: 2}, live(), rng.New(9))
	o := s.Orbs[0]
	s.AddPulse(o)
	s.AddPulse(s.Orbs[1])
	require.Len(t, s.Pulses, 2)
	assert.GreaterOrEqual(t, s.Pulses[0].Max, o.Radius*1.8)
	assert.LessOrEqual(t, s.Pulses[0].Max, o.Radius*3.2)
	assert.Equal(t, o.Color, s.Pulses[0].Color)

	s.Pulses[0].Done = true
	s.PrunePulses()
	require.Len(t, s.Pulses, 1)
	assert.False(t, s.Pulses[0].Done)
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode(" Smoke ")
	require.NoError(t, err)
	assert.Equal(t, Smoke, got)

	_, err = ParseMode("lava")
	assert.ErrorIs(t, err, ErrUnknownMode)

	assert.Equal(t, Smoke, Orbs.Next())
	assert.Equal(t, Orbs, Ripple.Next())
	assert.Equal(t, "mode(9)", Mode(9).String())
}
