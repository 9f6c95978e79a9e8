// Package controls maps host commands onto the engine, the drone and the
// persisted configuration.
package controls

import (
	"fmt"
	"log/slog"

	"github.com/iburimskiy/etherwall/internal/config"
	"github.com/iburimskiy/etherwall/internal/engine"
	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/scene"
)

// Command is a user action bound to a key.
type Command int

const (
	ModeOrbs Command = iota
	ModeSmoke
	ModeRipple
	NextMode
	ToggleStars
	ToggleAurora
	ToggleShooting
	ToggleLines
	SpeedUp
	SpeedDown
	MoreOrbs
	FewerOrbs
	OpacityUp
	OpacityDown
	ToggleMute
	VolumeUp
	VolumeDown
)

// Audio is the part of the drone engine the controls drive.
type Audio interface {
	Toggle()
	Playing() bool
	Volume() float64
	SetVolume(v float64)
	SetAmbience(path string) error
}

// Controller applies commands and keeps cfg in step with what is applied.
// It runs on the frame goroutine only.
type Controller struct {
	engine *engine.Engine
	audio  Audio
	cfg    *config.File
	logger *slog.Logger
}

func New(e *engine.Engine, a Audio, cfg *config.File, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{engine: e, audio: a, cfg: cfg, logger: logger}
}

// Apply runs cmd and returns a short status line for the overlay.
func (c *Controller) Apply(cmd Command) string {
	defer c.sync()

	switch cmd {
	case ModeOrbs:
		return c.setMode(scene.Orbs)
	case ModeSmoke:
		return c.setMode(scene.Smoke)
	case ModeRipple:
		return c.setMode(scene.Ripple)
	case NextMode:
		return c.setMode(c.engine.Mode().Next())
	case ToggleStars:
		return c.toggle(engine.FxStars)
	case ToggleAurora:
		return c.toggle(engine.FxAurora)
	case ToggleShooting:
		return c.toggle(engine.FxShooting)
	case ToggleLines:
		return c.toggle(engine.FxLines)
	case SpeedUp, SpeedDown:
		step := config.SpeedStep
		if cmd == SpeedDown {
			step = -step
		}
		c.engine.ApplySettings(config.WithAnimationSpeed(c.engine.Settings().AnimationSpeed + step))
		return fmt.Sprintf("speed %.1fx", c.engine.Settings().AnimationSpeed)
	case MoreOrbs, FewerOrbs:
		step := config.OrbCountStep
		if cmd == FewerOrbs {
			step = -step
		}
		c.engine.ApplySettings(config.WithOrbCount(c.engine.Settings().OrbCount + step))
		return fmt.Sprintf("orbs %d", c.engine.Settings().OrbCount)
	case OpacityUp, OpacityDown:
		step := config.OpacityStep
		if cmd == OpacityDown {
			step = -step
		}
		c.engine.ApplySettings(config.WithOrbOpacity(c.engine.Settings().OrbOpacity + step))
		return fmt.Sprintf("opacity %d%%", percent(c.engine.Settings().OrbOpacity))
	case ToggleMute:
		if c.audio == nil {
			return "audio unavailable"
		}
		on := !c.audio.Playing()
		c.audio.Toggle()
		c.cfg.Audio.Enabled = on
		if c.audio.Playing() {
			return "sound on"
		}
		if on {
			return "sound unavailable"
		}
		return "sound off"
	case VolumeUp, VolumeDown:
		if c.audio == nil {
			return "audio unavailable"
		}
		step := config.VolumeStep
		if cmd == VolumeDown {
			step = -step
		}
		c.audio.SetVolume(c.audio.Volume() + step)
		return fmt.Sprintf("volume %d%%", percent(c.audio.Volume()))
	}
	return ""
}

// ApplyPatch merges settings picked in a dialog.
func (c *Controller) ApplyPatch(p config.Patch) string {
	if p.Empty() {
		return ""
	}
	defer c.sync()

	c.engine.ApplySettings(p)
	s := c.engine.Settings()
	if p.ColorTheme != nil {
		return "theme " + palette.Themes[s.ColorTheme].Name
	}
	return fmt.Sprintf("orbs %d", s.OrbCount)
}

// SetAmbience swaps the ambience loop.
func (c *Controller) SetAmbience(path string) (string, error) {
	if c.audio == nil {
		return "audio unavailable", nil
	}
	if err := c.audio.SetAmbience(path); err != nil {
		return "", err
	}
	c.cfg.Audio.Ambience = path
	if path == "" {
		return "ambience off", nil
	}
	return "ambience loaded", nil
}

// Config is the configuration reflecting every applied command.
func (c *Controller) Config() *config.File { return c.cfg }

// setMode always rebuilds, so pressing the current mode key reseeds the scene.
func (c *Controller) setMode(m scene.Mode) string {
	c.engine.SetMode(m)
	return "mode " + m.String()
}

func (c *Controller) toggle(name string) string {
	on, ok := c.engine.Fx.Toggle(name)
	if !ok {
		return ""
	}
	c.logger.Debug("fx toggled", "layer", name, "enabled", on)
	if on {
		return name + " on"
	}
	return name + " off"
}

func (c *Controller) sync() {
	c.cfg.Settings = c.engine.Settings()
	c.cfg.Fx = c.engine.Fx.Map()
	c.cfg.Mode = c.engine.Mode().String()
	if c.audio != nil {
		c.cfg.Audio.Volume = c.audio.Volume()
	}
}

func percent(v float64) int {
	return int(v*100 + 0.5)
}
