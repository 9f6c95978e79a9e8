package scene

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the population and composition strategy of a scene.
type Mode int

const (
	Orbs Mode = iota
	Smoke
	Ripple
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("unknown mode")

// Modes lists every mode in cycling order.
var Modes = []Mode{Orbs, Smoke, Ripple}

func (m Mode) String() string {
	switch m {
	case Orbs:
		return "orbs"
	case Smoke:
		return "smoke"
	case Ripple:
		return "ripple"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts the lower-case mode names.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return Orbs, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	return Modes[(int(m)+1)%len(Modes)]
}
