package audio

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pixil98/go-fps/internal/game"
)

// recipe describes how to synthesize one sound. A non-zero next plays a
// second tone right after the first.
type recipe struct {
	wave     WaveType
	freq     float64
	sweep    float64
	duration time.Duration
	attack   time.Duration
	release  time.Duration
	next     *recipe
}

func tone(wave WaveType, freq, sweep float64, d time.Duration) recipe {
	return recipe{
		wave:     wave,
		freq:     freq,
		sweep:    sweep,
		duration: d,
		attack:   min(5*time.Millisecond, d/4),
		release:  d / 2,
	}
}

func (r recipe) then(n recipe) recipe {
	r.next = &n
	return r
}

const ms = time.Millisecond

// weaponVoices sets the base pitch of each weapon family's shots and
// mechanical noises.
var weaponVoices = map[string]float64{
	"m4a1":    180,
	"ak47":    150,
	"mp5":     240,
	"shotgun": 90,
	"sniper":  70,
	"pistol":  300,
}

var recipes = buildRecipes()

func buildRecipes() map[game.SoundCategory]map[string]recipe {
	weapon := map[string]recipe{
		"weapon_switch":     tone(WaveSquare, 600, -200, 60*ms),
		"weapon_empty":      tone(WaveSquare, 1200, 0, 25*ms),
		"knife_swing":       tone(WaveNoise, 0, 0, 120*ms),
		"knife_hit":         tone(WaveNoise, 0, 0, 60*ms).then(tone(WaveSine, 140, -60, 80*ms)),
		"grenade_throw":     tone(WaveNoise, 0, 0, 150*ms),
		"grenade_pin":       tone(WaveSine, 2200, 0, 40*ms),
		"grenade_explosion": tone(WaveNoise, 0, 0, 700*ms),
	}
	for prefix, f := range weaponVoices {
		weapon[prefix+"_fire"] = tone(WaveNoise, 0, 0, 90*ms).then(tone(WaveSaw, f, -f/2, 60*ms))
		weapon[prefix+"_reload_start"] = tone(WaveSquare, f*4, 0, 40*ms)
		weapon[prefix+"_reload_mid"] = tone(WaveSaw, f*2, f, 120*ms)
		weapon[prefix+"_reload_end"] = tone(WaveSquare, f*5, 0, 30*ms).then(tone(WaveSquare, f*6, 0, 30*ms))
	}

	player := map[string]recipe{
		"jump":        tone(WaveSine, 200, 200, 120*ms),
		"land":        tone(WaveNoise, 0, 0, 80*ms),
		"crouch_down": tone(WaveSine, 300, -120, 90*ms),
		"crouch_up":   tone(WaveSine, 180, 120, 90*ms),
		"prone_down":  tone(WaveNoise, 0, 0, 160*ms),
		"prone_up":    tone(WaveNoise, 0, 0, 140*ms),
		"hit_1":       tone(WaveSaw, 220, -80, 100*ms),
		"hit_2":       tone(WaveSaw, 330, -150, 140*ms),
		"death_1":     tone(WaveSaw, 200, -150, 500*ms),
		"death_2":     tone(WaveSaw, 160, -120, 600*ms),
	}
	for i, s := range []Surface{SurfaceConcrete, SurfaceGrass, SurfaceMetal} {
		for n := 1; n <= footstepVariants; n++ {
			player[fmt.Sprintf("footstep_%s_%d", s, n)] = tone(WaveNoise, 0, 0, time.Duration(40+10*i+5*n)*ms)
		}
	}

	environment := map[string]recipe{
		"urban_ambient":       tone(WaveNoise, 0, 0, 4*time.Second),
		"forest_ambient":      tone(WaveNoise, 0, 0, 4*time.Second),
		"facility_ambient":    tone(WaveSine, 60, 0, 4*time.Second),
		"wind_light":          tone(WaveNoise, 0, 0, 3*time.Second),
		"wind_strong":         tone(WaveNoise, 0, 0, 3*time.Second),
		"rain_light":          tone(WaveNoise, 0, 0, 3*time.Second),
		"rain_heavy":          tone(WaveNoise, 0, 0, 3*time.Second),
		"thunder_1":           tone(WaveNoise, 0, 0, 1500*ms),
		"thunder_2":           tone(WaveNoise, 0, 0, 2*time.Second),
		"explosion_distant_1": tone(WaveSine, 50, -20, 900*ms),
		"explosion_distant_2": tone(WaveSine, 45, -20, 1100*ms),
		"gunfire_distant":     tone(WaveNoise, 0, 0, 60*ms),
	}

	ui := map[string]recipe{
		"ui_click":       tone(WaveSquare, 1000, 0, 20*ms),
		"ui_hover":       tone(WaveSine, 800, 0, 15*ms),
		"level_up":       tone(WaveSquare, 659.25, 0, 100*ms).then(tone(WaveSquare, 987.77, 0, 200*ms)),
		"weapon_unlock":  tone(WaveSine, 880, 0, 100*ms).then(tone(WaveSine, 1760, 0, 150*ms)),
		"kill_confirmed": tone(WaveSquare, 987.77, 0, 60*ms).then(tone(WaveSquare, 1318.51, 0, 120*ms)),
		"game_start":     tone(WaveSine, 440, 440, 400*ms),
		"game_end":       tone(WaveSine, 880, -440, 600*ms),
	}

	music := map[string]recipe{
		"menu_music":       tone(WaveSine, 110, 0, 2*time.Second),
		"game_start_music": tone(WaveSaw, 220, 110, 2*time.Second),
		"combat_music":     tone(WaveSaw, 82.41, 0, 2*time.Second),
		"victory_music":    tone(WaveSquare, 523.25, 0, time.Second).then(tone(WaveSquare, 659.25, 0, time.Second)),
		"defeat_music":     tone(WaveSine, 220, -110, 2*time.Second),
	}

	return map[game.SoundCategory]map[string]recipe{
		game.CategoryWeapon:      weapon,
		game.CategoryPlayer:      player,
		game.CategoryEnvironment: environment,
		game.CategoryUI:          ui,
		game.CategoryMusic:       music,
	}
}

func lookup(category game.SoundCategory, id string) (recipe, bool) {
	r, ok := recipes[category][id]
	return r, ok
}

// Surface is the ground material a footstep lands on.
type Surface string

const (
	SurfaceConcrete Surface = "concrete"
	SurfaceGrass    Surface = "grass"
	SurfaceMetal    Surface = "metal"
)

const footstepVariants = 4

// FootstepSound picks one of the footstep variants for s.
func FootstepSound(s Surface, rng *rand.Rand) string {
	return fmt.Sprintf("footstep_%s_%d", s, rng.IntN(footstepVariants)+1)
}

// SurfaceFor is the footstep surface of a map.
func SurfaceFor(m game.MapType) Surface {
	switch m {
	case game.MapForest:
		return SurfaceGrass
	case game.MapFacility:
		return SurfaceMetal
	}
	return SurfaceConcrete
}
