package combat

import (
	"github.com/pixil98/go-fps/internal/game"
)

// Distance covered per tick.
const (
	GrenadeSpeed = 0.3
	BulletSpeed  = 2.0
)

// Projectile is a bullet or thrown grenade in flight.
type Projectile struct {
	ID        string
	Position  game.Vec3
	Direction game.Vec3
	Type      game.WeaponType
	Damage    float64
	Range     float64
	Traveled  float64
	Active    bool
	// Detonated marks a grenade that reached its range on the previous tick.
	// It is kept for one tick so the explosion can be drawn.
	Detonated bool
}

func speedFor(t game.WeaponType) float64 {
	if t == game.WeaponGrenade {
		return GrenadeSpeed
	}
	return BulletSpeed
}

// advance moves p one tick along its direction.
func (p *Projectile) advance() {
	step := p.Direction.Scale(speedFor(p.Type))
	p.Position = p.Position.Add(step)
	p.Traveled += step.Length()
	p.Active = p.Traveled < p.Range
}
