package effects

import (
	"math"

	"github.com/iburimskiy/etherwall/internal/rng"
	"github.com/iburimskiy/etherwall/internal/surface"
)

const (
	ShootingMinAngle = math.Pi * 0.05
	ShootingMaxAngle = math.Pi * 0.35
	ShootingMinSpeed = 600.0
	ShootingMaxSpeed = 1400.0
	ShootingMinLen   = 80.0
	ShootingMaxLen   = 220.0

	shootingMinDecay = 0.6
	shootingMaxDecay = 1.2
	shootingAlpha    = 0.85
	shootingWidth    = 2.5
)

var shootingColor = surface.RGBA{R: 220, G: 235, B: 255}

// ShootingStar is a pooled streak. It stays inactive until Reset launches it
// and goes back to the pool once its life runs out.
type ShootingStar struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Decay  float64
	Length float64
	Active bool
}

func NewShootingStar() *ShootingStar {
	return &ShootingStar{}
}

// Reset launches the star from above or left of the frame on a shallow
// downward-right heading.
func (s *ShootingStar) Reset(w, h float64, r rng.Source) {
	s.X = rng.Range(r, -w*0.2, w*1.2)
	s.Y = rng.Range(r, -h*0.2, h*0.4)
	angle := rng.Range(r, ShootingMinAngle, ShootingMaxAngle)
	speed := rng.Range(r, ShootingMinSpeed, ShootingMaxSpeed)
	s.VX = math.Cos(angle) * speed
	s.VY = math.Sin(angle) * speed
	s.Life = 1
	s.Decay = rng.Range(r, shootingMinDecay, shootingMaxDecay)
	s.Length = rng.Range(r, ShootingMinLen, ShootingMaxLen)
	s.Active = true
}

func (s *ShootingStar) Update(dt, speed float64) {
	if !s.Active {
		return
	}
	s.X += s.VX * dt * speed
	s.Y += s.VY * dt * speed
	s.Life -= dt * s.Decay * speed
	if s.Life <= 0 {
		s.Active = false
	}
}

// Draw renders a streak trailing opposite the velocity.
func (s *ShootingStar) Draw(dst surface.Surface) {
	if !s.Active {
		return
	}
	v := math.Hypot(s.VX, s.VY)
	if v == 0 {
		return
	}
	tx := s.X - s.VX/v*s.Length
	ty := s.Y - s.VY/v*s.Length
	dst.StrokeGradientLine(s.X, s.Y, tx, ty, s.Life*shootingWidth,
		shootingColor.WithAlpha(s.Life*shootingAlpha),
		shootingColor.WithAlpha(0))
}
