package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/etherwall/internal/rng"
)

func TestGenerateCalmHSLBounds(t *testing.T) {
	r := rng.New(42)
	for i := 0; i < 500; i++ {
		hsl := GenerateCalmHSL(r)
		require.Len(t, hsl, Size)
		for _, c := range hsl {
			assert.GreaterOrEqual(t, c.H, 0.0)
			assert.Less(t, c.H, 360.0)
			assert.GreaterOrEqual(t, c.S, SaturationMin)
			assert.LessOrEqual(t, c.S, SaturationMax)
			assert.GreaterOrEqual(t, c.L, LightnessMin)
			assert.LessOrEqual(t, c.L, LightnessMax)
		}
	}
}

func TestGenerateCalmHueOffsets(t *testing.T) {
	hsl := GenerateCalmHSL(rng.New(7))
	base := hsl[0].H
	for i, off := range HueOffsets {
		assert.InDelta(t, wrapHue(base+off), hsl[i].H, 1e-9)
	}
}

func TestGenerateCalmChannels(t *testing.T) {
	r := rng.New(3)
	for i := 0; i < 500; i++ {
		p := GenerateCalm(r)
		for _, c := range p {
			for _, v := range []float64{c.R, c.G, c.B} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 255.0)
				assert.Equal(t, float64(int(v)), v, "channels are rounded")
			}
		}
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name string
		in   HSL
		want Color
	}{
		{"red", HSL{0, 100, 50}, Color{255, 0, 0}},
		{"white", HSL{200, 40, 100}, Color{255, 255, 255}},
		{"gray", HSL{120, 0, 50}, Color{128, 128, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.RGB())
		})
	}
}

func TestWrapHue(t *testing.T) {
	assert.InDelta(t, 350.0, wrapHue(-10), 1e-9)
	assert.InDelta(t, 10.0, wrapHue(370), 1e-9)
	assert.InDelta(t, 0.0, wrapHue(360), 1e-9)
}

func TestRefSeesInPlaceUpdates(t *testing.T) {
	p := &Palette{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}
	ref := p.Ref(5)
	assert.Equal(t, 1, ref.Index())
	assert.Same(t, p, ref.Palette())

	p.Assign(Palette{{0, 0, 0}, {100, 110, 120}, {0, 0, 0}, {0, 0, 0}})
	assert.Equal(t, Color{100, 110, 120}, ref.Color())

	assert.Equal(t, 3, p.Ref(-1).Index())
	assert.Equal(t, Color{255, 255, 255}, Ref{}.Color())
}

func TestColorRGB255(t *testing.T) {
	r, g, b := Color{R: 12.5, G: -4, B: 300}.RGB255()
	assert.Equal(t, uint8(13), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(255), b)
}

func TestThemeSourceRotates(t *testing.T) {
	theme := Themes[1]
	src := NewThemeSource(theme)
	first := src.Next(nil)
	second := src.Next(nil)
	assert.Equal(t, theme.Colors, first)
	assert.Equal(t, theme.Colors[1], second[0])
	assert.Equal(t, theme.Colors[0], second[3])
}

func TestSourceFor(t *testing.T) {
	assert.IsType(t, CalmSource{}, SourceFor(0))
	assert.IsType(t, &ThemeSource{}, SourceFor(2))
	assert.IsType(t, &ThemeSource{}, SourceFor(99), "out of range clamps to last theme")
	assert.IsType(t, CalmSource{}, SourceFor(-3))
}
