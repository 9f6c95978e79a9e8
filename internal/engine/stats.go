package engine

import (
	"github.com/iburimskiy/etherwall/internal/config"
	"github.com/iburimskiy/etherwall/internal/palette"
	"github.com/iburimskiy/etherwall/internal/scene"
)

// Stats is a snapshot of the engine for overlays and metrics.
type Stats struct {
	Mode         scene.Mode
	Running      bool
	Frames       uint64
	Settings     config.Settings
	Theme        string
	Fx           Fx
	Counts       map[string]int
	Palette      palette.Palette
	PaletteTimer float64
}

func (e *Engine) Stats() Stats {
	st := Stats{
		Mode:         e.mode,
		Running:      e.running,
		Frames:       e.frames,
		Settings:     e.settings,
		Theme:        palette.Themes[e.settings.ColorTheme].Name,
		Fx:           e.Fx,
		Palette:      *e.animator.Current(),
		PaletteTimer: e.animator.Timer(),
	}
	if e.scene != nil {
		st.Counts = e.scene.Counts()
	}
	return st
}
