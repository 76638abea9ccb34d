package terminal

import (
	"math"

	"github.com/pixil98/go-fps/internal/game"
)

// PlayerCamera aims projectiles from the player's stored pose. Rotation is
// pitch, yaw, roll in radians with yaw zero looking down -Z.
type PlayerCamera struct {
	store *game.Store
}

func NewPlayerCamera(s *game.Store) *PlayerCamera {
	return &PlayerCamera{store: s}
}

func (c *PlayerCamera) Position() game.Vec3 {
	return c.store.Player().Position
}

func (c *PlayerCamera) Direction() game.Vec3 {
	rot := c.store.Player().Rotation
	pitch, yaw := rot[0], rot[1]
	return game.Vec3{
		-math.Sin(yaw) * math.Cos(pitch),
		math.Sin(pitch),
		-math.Cos(yaw) * math.Cos(pitch),
	}
}
