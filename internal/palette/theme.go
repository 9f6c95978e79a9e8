package palette

import "github.com/iburimskiy/etherwall/internal/rng"

// Theme is an entry of the fixed color theme table. The first entry has no
// colors of its own and stands for the generated calm palette.
type Theme struct {
	Name      string
	Generated bool
	Colors    Palette
}

var Themes = []Theme{
	{Name: "calm", Generated: true},
	{Name: "deep ocean", Colors: Palette{{64, 120, 180}, {80, 170, 190}, {110, 90, 170}, {150, 200, 210}}},
	{Name: "twilight", Colors: Palette{{150, 110, 190}, {200, 140, 180}, {110, 120, 200}, {230, 180, 200}}},
	{Name: "forest mist", Colors: Palette{{90, 160, 130}, {140, 190, 150}, {80, 130, 140}, {180, 210, 170}}},
	{Name: "ember glow", Colors: Palette{{210, 130, 110}, {230, 170, 120}, {180, 100, 140}, {240, 200, 160}}},
	{Name: "moonlight", Colors: Palette{{170, 180, 210}, {140, 150, 190}, {200, 205, 225}, {120, 140, 170}}},
}

// ClampTheme maps any index onto the theme table.
func ClampTheme(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(Themes) {
		return len(Themes) - 1
	}
	return i
}

// Source picks the next target palette.
type Source interface {
	Next(r rng.Source) Palette
}

// CalmSource generates a new calm palette on every refresh.
type CalmSource struct{}

func (CalmSource) Next(r rng.Source) Palette { return GenerateCalm(r) }

// ThemeSource cycles a fixed theme: every refresh rotates its colors by one
// cell so the scene keeps drifting without leaving the theme.
type ThemeSource struct {
	colors Palette
	shift  int
}

func NewThemeSource(t Theme) *ThemeSource {
	return &ThemeSource{colors: t.Colors}
}

func (s *ThemeSource) Next(rng.Source) Palette {
	var p Palette
	for i := range p {
		p[i] = s.colors[(i+s.shift)%Size]
	}
	s.shift = (s.shift + 1) % Size
	return p
}

// SourceFor returns the strategy for a theme index.
func SourceFor(theme int) Source {
	t := Themes[ClampTheme(theme)]
	if t.Generated {
		return CalmSource{}
	}
	return NewThemeSource(t)
}
