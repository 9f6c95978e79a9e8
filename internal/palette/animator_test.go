package palette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/etherwall/internal/rng"
)

func TestAnimatorConvergesWithinEightSeconds(t *testing.T) {
	a := NewAnimator(CalmSource{}, rng.New(11))

	// Drive the countdown to zero to install a fresh target.
	require.False(t, a.Step(RefreshInterval-1, 1))
	require.True(t, a.Step(1, 1))

	for i := 0; i < 2; i++ {
		require.False(t, a.Step(8, 1))
	}

	cur, tgt := a.Current(), a.Target()
	for i := range cur {
		assert.InDelta(t, tgt[i].R, cur[i].R, 3)
		assert.InDelta(t, tgt[i].G, cur[i].G, 3)
		assert.InDelta(t, tgt[i].B, cur[i].B, 3)
	}
}

func TestAnimatorSingleStepFactor(t *testing.T) {
	a := NewAnimator(CalmSource{}, rng.New(5))
	a.Current().Assign(Palette{})
	a.Target().Assign(Palette{{100, 100, 100}, {100, 100, 100}, {100, 100, 100}, {100, 100, 100}})

	a.Step(8, 1)

	want := 100 * (1 - math.Exp(-8*SmoothingRate))
	assert.InDelta(t, want, a.Current()[0].R, 1e-9)
	assert.Greater(t, want, 90.0, "about 90% of the way after 8s")
}

func TestAnimatorRefreshKeepsIdentity(t *testing.T) {
	a := NewAnimator(CalmSource{}, rng.New(9))
	target := a.Target()
	current := a.Current()
	before := *target

	a.Step(RefreshInterval-1, 1)
	assert.Equal(t, before, *target, "no refresh before the countdown elapses")

	assert.True(t, a.Step(1, 1))
	assert.Same(t, target, a.Target())
	assert.Same(t, current, a.Current())
	assert.NotEqual(t, before, *target)
	assert.Equal(t, RefreshInterval, a.Timer())
}

func TestAnimatorSpeedScalesCountdown(t *testing.T) {
	a := NewAnimator(CalmSource{}, rng.New(1))
	assert.True(t, a.Step(10, 3), "10s at 3x speed covers the 30s interval")
}

func TestAnimatorSetSource(t *testing.T) {
	a := NewAnimator(CalmSource{}, rng.New(2))
	a.Step(12, 1)

	a.SetSource(SourceFor(1))
	assert.Equal(t, Themes[1].Colors, *a.Target())
	assert.Equal(t, RefreshInterval, a.Timer())
}
