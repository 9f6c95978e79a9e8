package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudX          = 12
	hudY          = 12
	hudLineHeight = 16
	swatchSize    = 14
	meterWidth    = 120
	meterHeight   = 6
)

var (
	hudPanel   = color.RGBA{R: 8, G: 8, B: 18, A: 170}
	meterTrack = color.RGBA{R: 60, G: 70, B: 90, A: 200}
	meterFill  = color.RGBA{R: 150, G: 190, B: 220, A: 230}
)

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.engine.Stats()
	s := st.Settings

	sound, volume := "n/a", 0.0
	if g.audio != nil {
		sound = onOff(g.audio.Playing())
		volume = g.audio.Volume()
	}

	lines := []string{
		fmt.Sprintf("mode %s  theme %s  fps %.0f  up %s", st.Mode, st.Theme, ebiten.ActualFPS(), formatDuration(time.Since(g.started))),
		fmt.Sprintf("speed %.1fx  orbs %d  opacity %d%%", s.AnimationSpeed, s.OrbCount, int(s.OrbOpacity*100+0.5)),
		fmt.Sprintf("stars %s  aurora %s  shooting %s  lines %s", onOff(st.Fx.Stars), onOff(st.Fx.Aurora), onOff(st.Fx.Shooting), onOff(st.Fx.Lines)),
		fmt.Sprintf("sound %s  volume %d%%", sound, int(volume*100+0.5)),
		fmt.Sprintf("next palette in %.0fs", st.PaletteTimer),
		"1/2/3 mode  S/A/H/L effects  arrows speed/orbs  [ ] opacity",
		"M mute  +/- volume  T theme  C orbs  O ambience  F fullscreen  D overlay  Esc quit",
	}

	height := float32(len(lines)*hudLineHeight + swatchSize + 24)
	vector.DrawFilledRect(screen, hudX-6, hudY-6, 560, height, hudPanel, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, hudX, hudY+i*hudLineHeight)
	}

	y := float32(hudY + len(lines)*hudLineHeight + 4)
	for i, c := range st.Palette {
		r, gr, b := c.RGB255()
		x := float32(hudX + i*(swatchSize+4))
		vector.DrawFilledRect(screen, x, y, swatchSize, swatchSize, color.RGBA{R: r, G: gr, B: b, A: 255}, false)
	}

	mx := float32(hudX + len(st.Palette)*(swatchSize+4) + 12)
	my := y + (swatchSize-meterHeight)/2
	vector.DrawFilledRect(screen, mx, my, meterWidth, meterHeight, meterTrack, false)
	vector.DrawFilledRect(screen, mx, my, float32(clamp01(g.level))*meterWidth, meterHeight, meterFill, false)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	if g.status == "" || time.Now().After(g.statusUntil) {
		return
	}
	h := screen.Bounds().Dy()
	ebitenutil.DebugPrintAt(screen, g.status, hudX, h-hudLineHeight-8)
}
