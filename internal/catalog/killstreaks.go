package catalog

import "github.com/pixil98/go-fps/internal/game"

var killStreakBlueprints = []game.KillStreak{
	{ID: "uav", Name: "UAV Recon", Description: "Reveals enemy positions on the minimap.", Cost: 3, Duration: 30},
	{ID: "counter_uav", Name: "Counter UAV", Description: "Jams enemy radar.", Cost: 4, Duration: 30},
	{ID: "care_package", Name: "Care Package", Description: "Drops a random weapon or powerup.", Cost: 5},
	{ID: "sentry_gun", Name: "Sentry Gun", Description: "Automated turret that targets enemies.", Cost: 7, Duration: 60},
	{ID: "attack_helicopter", Name: "Attack Helicopter", Description: "Helicopter that patrols the map attacking enemies.", Cost: 9, Duration: 45},
	{ID: "airstrike", Name: "Precision Airstrike", Description: "Call in an airstrike on a targeted location.", Cost: 6},
	{ID: "juggernaut", Name: "Juggernaut", Description: "Don heavy armor with increased health and a minigun.", Cost: 15, Duration: 120},
}

// KillStreaks returns a fresh copy of the kill streak pool.
func KillStreaks() []game.KillStreak {
	out := make([]game.KillStreak, len(killStreakBlueprints))
	for i, ks := range killStreakBlueprints {
		ks.Icon = ks.ID
		ks.Unlocked = true
		out[i] = ks
	}
	return out
}
