package config

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/palette"
)

// Settings are the user-tunable engine parameters. OrbCount and ColorTheme
// are structural: changing either rebuilds the scene.
type Settings struct {
	AnimationSpeed float64 `yaml:"animation_speed"`
	OrbCount       int     `yaml:"orb_count"`
	OrbOpacity     float64 `yaml:"orb_opacity"`
	ColorTheme     int     `yaml:"color_theme"`
}

func DefaultSettings() Settings {
	return Settings{
		AnimationSpeed: 1.0,
		OrbCount:       12,
		OrbOpacity:     0.80,
		ColorTheme:     0,
	}
}

// Clamped returns s with every field forced into its valid range. Invalid
// values fall back to defaults instead of failing.
func (s Settings) Clamped() Settings {
	def := DefaultSettings()

	switch {
	case math.IsNaN(s.AnimationSpeed) || s.AnimationSpeed <= 0:
		s.AnimationSpeed = def.AnimationSpeed
	case s.AnimationSpeed < MinAnimationSpeed:
		s.AnimationSpeed = MinAnimationSpeed
	case s.AnimationSpeed > MaxAnimationSpeed:
		s.AnimationSpeed = MaxAnimationSpeed
	}

	s.OrbCount = min(max(s.OrbCount, 0), MaxOrbCount)

	if math.IsNaN(s.OrbOpacity) {
		s.OrbOpacity = def.OrbOpacity
	}
	s.OrbOpacity = math.Min(math.Max(s.OrbOpacity, 0), 1)

	s.ColorTheme = palette.ClampTheme(s.ColorTheme)
	return s
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	AnimationSpeed *float64 `yaml:"animation_speed,omitempty"`
	OrbCount       *int     `yaml:"orb_count,omitempty"`
	OrbOpacity     *float64 `yaml:"orb_opacity,omitempty"`
	ColorTheme     *int     `yaml:"color_theme,omitempty"`
}

// Empty reports whether the patch carries no field.
func (p Patch) Empty() bool {
	return p.AnimationSpeed == nil && p.OrbCount == nil && p.OrbOpacity == nil && p.ColorTheme == nil
}

// Merge applies p over s and reports whether a structural field changed.
func (s Settings) Merge(p Patch) (Settings, bool) {
	next := s
	if p.AnimationSpeed != nil {
		next.AnimationSpeed = *p.AnimationSpeed
	}
	if p.OrbCount != nil {
		next.OrbCount = *p.OrbCount
	}
	if p.OrbOpacity != nil {
		next.OrbOpacity = *p.OrbOpacity
	}
	if p.ColorTheme != nil {
		next.ColorTheme = *p.ColorTheme
	}
	next = next.Clamped()

	structural := next.OrbCount != s.OrbCount || next.ColorTheme != s.ColorTheme
	return next, structural
}

// Patch helpers for callers building partial updates.

func WithAnimationSpeed(v float64) Patch { return Patch{AnimationSpeed: &v} }
func WithOrbCount(v int) Patch           { return Patch{OrbCount: &v} }
func WithOrbOpacity(v float64) Patch     { return Patch{OrbOpacity: &v} }
func WithColorTheme(v int) Patch         { return Patch{ColorTheme: &v} }
