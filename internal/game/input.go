package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/etherwall/internal/controls"
)

const (
	repeatDelay    = 30
	repeatInterval = 4
)

// Single-shot bindings.
var keyCommands = map[ebiten.Key]controls.Command{
	ebiten.KeyDigit1: controls.ModeOrbs,
	ebiten.KeyDigit2: controls.ModeSmoke,
	ebiten.KeyDigit3: controls.ModeRipple,
	ebiten.KeyTab:    controls.NextMode,
	ebiten.KeyS:      controls.ToggleStars,
	ebiten.KeyA:      controls.ToggleAurora,
	ebiten.KeyH:      controls.ToggleShooting,
	ebiten.KeyL:      controls.ToggleLines,
	ebiten.KeyM:      controls.ToggleMute,
}

// Bindings that repeat while held.
var repeatCommands = map[ebiten.Key]controls.Command{
	ebiten.KeyArrowUp:        controls.SpeedUp,
	ebiten.KeyArrowDown:      controls.SpeedDown,
	ebiten.KeyArrowRight:     controls.MoreOrbs,
	ebiten.KeyArrowLeft:      controls.FewerOrbs,
	ebiten.KeyBracketRight:   controls.OpacityUp,
	ebiten.KeyBracketLeft:    controls.OpacityDown,
	ebiten.KeyEqual:          controls.VolumeUp,
	ebiten.KeyNumpadAdd:      controls.VolumeUp,
	ebiten.KeyMinus:          controls.VolumeDown,
	ebiten.KeyNumpadSubtract: controls.VolumeDown,
}

func (g *Game) handleInput() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}
	repeating := func(k ebiten.Key) bool {
		d := inpututil.KeyPressDuration(k)
		return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for k, cmd := range keyCommands {
		if justPressed(k) {
			g.flash(g.controls.Apply(cmd))
		}
	}
	for k, cmd := range repeatCommands {
		if repeating(k) {
			g.flash(g.controls.Apply(cmd))
		}
	}

	if justPressed(ebiten.KeyF) {
		fs := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fs)
		g.Config().Window.Fullscreen = fs
	}
	if justPressed(ebiten.KeyD) {
		g.hud = !g.hud
	}
	if justPressed(ebiten.KeyT) {
		g.openThemeDialog()
	}
	if justPressed(ebiten.KeyC) {
		g.openOrbCountDialog()
	}
	if justPressed(ebiten.KeyO) {
		g.openAmbienceDialog()
	}
	return nil
}
