package engine

// Fx switches effect layers. A disabled layer is paused: neither updated
// nor drawn.
type Fx struct {
	Stars    bool
	Aurora   bool
	Shooting bool
	Lines    bool
}

// Fx layer names used by config files and key bindings.
const (
	FxStars    = "stars"
	FxAurora   = "aurora"
	FxShooting = "shooting"
	FxLines    = "lines"
)

func DefaultFx() Fx {
	return Fx{Stars: true, Aurora: true, Shooting: true, Lines: true}
}

// FxFromMap reads flags by name; absent names stay enabled.
func FxFromMap(m map[string]bool) Fx {
	fx := DefaultFx()
	for name, on := range m {
		if p := fx.flag(name); p != nil {
			*p = on
		}
	}
	return fx
}

// Map returns every flag by name.
func (f Fx) Map() map[string]bool {
	return map[string]bool{
		FxStars:    f.Stars,
		FxAurora:   f.Aurora,
		FxShooting: f.Shooting,
		FxLines:    f.Lines,
	}
}

// Toggle flips a flag and returns its new value. Unknown names are ignored.
func (f *Fx) Toggle(name string) (bool, bool) {
	p := f.flag(name)
	if p == nil {
		return false, false
	}
	*p = !*p
	return *p, true
}

func (f *Fx) flag(name string) *bool {
	switch name {
	case FxStars:
		return &f.Stars
	case FxAurora:
		return &f.Aurora
	case FxShooting:
		return &f.Shooting
	case FxLines:
		return &f.Lines
	}
	return nil
}
