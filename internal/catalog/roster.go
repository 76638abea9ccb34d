package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/game"
)

// RosterSize is the number of bots spawned alongside the player.
const RosterSize = 11

// spawnSpread is the width of the square area bots spawn in, per map.
var spawnSpread = map[game.MapType]float64{
	game.MapUrban:    80,
	game.MapForest:   80,
	game.MapFacility: 40,
}

// SpawnRoster creates the bots for a match on m. The first half fight with
// the player, the rest against. Each bot carries a copy of a random catalog
// weapon.
func SpawnRoster(m game.MapType, rng *rand.Rand) []game.Bot {
	spread, ok := spawnSpread[m]
	if !ok {
		spread = 80
	}

	bots := make([]game.Bot, RosterSize)
	for i := range bots {
		team := game.TeamEnemies
		if float64(i) < RosterSize/2.0 {
			team = game.TeamAllies
		}

		b := weaponBlueprints[rng.IntN(len(weaponBlueprints))]
		bots[i] = game.Bot{
			ID:     fmt.Sprintf("bot-%d", i),
			Name:   fmt.Sprintf("Bot %d", i+1),
			Health: 100,
			Position: game.Vec3{
				(rng.Float64() - 0.5) * spread,
				DefaultPosition[1],
				(rng.Float64() - 0.5) * spread,
			},
			Rotation: game.Vec3{0, rng.Float64() * 2 * math.Pi, 0},
			Weapon:   b.instantiate(),
			State:    game.BotPatrolling,
			Team:     team,
		}
	}
	return bots
}

// StartMatch replaces any bots in s with a fresh roster for the current map
// and switches to playing.
func StartMatch(s *game.Store, rng *rand.Rand) error {
	el := errors.NewErrorList()
	for _, b := range s.Bots() {
		el.Add(s.RemoveBot(b.ID))
	}
	for _, b := range SpawnRoster(s.CurrentMap(), rng) {
		el.Add(s.AddBot(b))
	}
	if err := el.Err(); err != nil {
		return fmt.Errorf("spawning roster: %w", err)
	}
	return s.SetGameState(game.PhasePlaying)
}
