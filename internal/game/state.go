package game

import "math"

// Phase is the top level state of a session.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "gameOver"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseMenu, PhasePlaying, PhasePaused, PhaseGameOver:
		return true
	}
	return false
}

// MapType selects the arena geometry loaded by the renderer.
type MapType string

const (
	MapUrban    MapType = "urban"
	MapForest   MapType = "forest"
	MapFacility MapType = "facility"
)

func (m MapType) Valid() bool {
	switch m {
	case MapUrban, MapForest, MapFacility:
		return true
	}
	return false
}

// GameMode selects the match rules.
type GameMode string

const (
	ModeTeamDeathmatch GameMode = "tdm"
	ModeFreeForAll     GameMode = "ffa"
	ModeDomination     GameMode = "domination"
	ModeCaptureTheFlag GameMode = "ctf"
)

func (m GameMode) Valid() bool {
	switch m {
	case ModeTeamDeathmatch, ModeFreeForAll, ModeDomination, ModeCaptureTheFlag:
		return true
	}
	return false
}

// Vec3 is an x, y, z triple in world units.
type Vec3 [3]float64

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Scale returns v * f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v[0] * f, v[1] * f, v[2] * f}
}

// Length returns the euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Distance returns the euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float64 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}.Length()
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}
