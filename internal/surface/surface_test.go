package surface

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: RGBA{R: 0, A: 0}},
		{Offset: 0.4, Color: RGBA{R: 100, A: 0.06}},
		{Offset: 1, Color: RGBA{R: 100, A: 0}},
	}

	tests := []struct {
		name  string
		t     float64
		wantR float64
		wantA float64
	}{
		{"before first", -1, 0, 0},
		{"first stop", 0, 0, 0},
		{"mid first span", 0.2, 50, 0.03},
		{"peak", 0.4, 100, 0.06},
		{"mid second span", 0.7, 100, 0.03},
		{"after last", 2, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(stops, tt.t)
			assert.InDelta(t, tt.wantR, got.R, 1e-9)
			assert.InDelta(t, tt.wantA, got.A, 1e-9)
		})
	}

	assert.Equal(t, RGBA{}, Interpolate(nil, 0.5))
}

func TestVerticalGradientAt(t *testing.T) {
	g := VerticalGradient{Y0: 100, Y1: 200, Stops: []Stop{{0, RGBA{A: 0}}, {1, RGBA{A: 1}}}}
	assert.InDelta(t, 0.5, g.At(150).A, 1e-9)
	assert.InDelta(t, 0.0, g.At(50).A, 1e-9)

	flat := VerticalGradient{Y0: 10, Y1: 10, Stops: []Stop{{0, RGBA{A: 0.3}}}}
	assert.InDelta(t, 0.3, flat.At(99).A, 1e-9)
}

func TestNormalizedClamps(t *testing.T) {
	r, g, b, a := RGBA{R: 510, G: -3, B: 127.5, A: math.NaN()}.Normalized()
	assert.Equal(t, float32(1), r)
	assert.Equal(t, float32(0), g)
	assert.InDelta(t, 0.5, b, 1e-6)
	assert.Equal(t, float32(0), a)
}

func TestRecorderTracksBlend(t *testing.T) {
	rec := NewRecorder(640, 480)
	rec.Fill(RGBA{A: 0.2})
	rec.SetBlend(Screen)
	rec.FillRadial(1, 2, 3, []Stop{{0, RGBA{A: 1}}})
	rec.StrokeCircle(1, 2, 3, 1, RGBA{})

	assert.Len(t, rec.Ops, 3)
	assert.Equal(t, SourceOver, rec.Ops[0].Blend)
	assert.Equal(t, Screen, rec.Ops[1].Blend)
	assert.Equal(t, 1, rec.Count(OpFillRadial))

	rec.Resize(800, 600)
	w, h := rec.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	rec.Reset()
	assert.Empty(t, rec.Ops)
}
