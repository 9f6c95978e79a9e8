package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/etherwall/internal/rng"
)

// Calm hue anchors: teals, blues, purples, lavenders, soft rose, mint.
var CalmHues = []float64{170, 185, 200, 215, 230, 245, 260, 275, 290, 310, 330, 155, 190}

// HueOffsets derive the four related hues from the jittered base.
var HueOffsets = [Size]float64{0, 22, -18, 40}

const (
	HueJitter     = 15.0
	SaturationMin = 28.0
	SaturationMax = 52.0
	LightnessMin  = 55.0
	LightnessMax  = 74.0
)

// HSL holds hue in degrees, saturation and lightness in percent.
type HSL struct {
	H, S, L float64
}

// RGB converts with the standard HSL transform, rounding each channel.
func (h HSL) RGB() Color {
	r, g, b := colorful.Hsl(h.H, h.S/100, h.L/100).Clamped().RGB255()
	return Color{R: float64(r), G: float64(g), B: float64(b)}
}

// GenerateCalmHSL samples the four muted HSL triples of a calm palette.
func GenerateCalmHSL(r rng.Source) [Size]HSL {
	base := rng.Pick(r, CalmHues) + rng.Range(r, -HueJitter, HueJitter)

	var out [Size]HSL
	for i, off := range HueOffsets {
		out[i] = HSL{
			H: wrapHue(base + off),
			S: rng.Range(r, SaturationMin, SaturationMax),
			L: rng.Range(r, LightnessMin, LightnessMax),
		}
	}
	return out
}

// GenerateCalm returns a fresh calm palette.
func GenerateCalm(r rng.Source) Palette {
	var p Palette
	for i, hsl := range GenerateCalmHSL(r) {
		p[i] = hsl.RGB()
	}
	return p
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
