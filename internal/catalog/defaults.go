package catalog

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/game"
)

// Default loadout, by catalog weapon id.
const (
	DefaultPrimary   = "m4a1"
	DefaultSecondary = "m1911"
	DefaultMelee     = "combatknife"
	DefaultLethal    = "fraggrenade"
)

// DefaultPosition is where a fresh player stands.
var DefaultPosition = game.Vec3{0, 1.8, 0}

// Settings returns the default user preferences.
func Settings() game.Settings {
	return game.Settings{
		Sensitivity: 5,
		FOV:         75,
		Brightness:  50,
		Crosshair: game.Crosshair{
			Style:     "default",
			Color:     "#ffffff",
			Size:      4,
			Gap:       2,
			Thickness: 1,
			Opacity:   0.8,
			Dot:       true,
		},
		Audio: game.AudioSettings{
			Master:  80,
			Music:   60,
			Effects: 90,
		},
		Graphics: game.GraphicsSettings{
			Quality:      "high",
			Shadows:      true,
			AntiAliasing: true,
		},
		Controls: game.ControlSettings{
			AutoReload: true,
		},
	}
}

// Player returns a fresh player with the default loadout.
func Player() *game.Player {
	p := &game.Player{
		Health:               100,
		MaxHealth:            100,
		Position:             DefaultPosition,
		CanJump:              true,
		ActiveWeaponSlot:     game.SlotPrimary,
		Level:                1,
		XPToNextLevel:        game.AccountBaseXP,
		AvailableKillStreaks: KillStreaks(),
		ActiveKillStreaks:    []game.KillStreak{},
	}
	for slot, id := range map[game.Slot]string{
		game.SlotPrimary:   DefaultPrimary,
		game.SlotSecondary: DefaultSecondary,
		game.SlotMelee:     DefaultMelee,
		game.SlotLethal:    DefaultLethal,
	} {
		w, _ := Weapon(id)
		p.Weapons.Set(slot, w)
	}
	return p
}

// Templates hands out the default state to a game.Store.
type Templates struct{}

func (Templates) NewPlayer() *game.Player    { return Player() }
func (Templates) NewArsenal() []*game.Weapon { return Weapons() }
func (Templates) NewSettings() game.Settings { return Settings() }

// Validate checks the static data for internal consistency.
func Validate() error {
	el := errors.NewErrorList()

	seen := map[string]bool{}
	for _, b := range attachmentBlueprints {
		if seen[b.id] {
			el.Add(fmt.Errorf("attachment %q: duplicate id", b.id))
		}
		seen[b.id] = true
		if !b.mount.Valid() {
			el.Add(fmt.Errorf("attachment %q: invalid mount %q", b.id, b.mount))
		}
		if b.unlockLevel < 1 || b.unlockLevel > game.WeaponMaxLevel {
			el.Add(fmt.Errorf("attachment %q: unlock level %d out of range", b.id, b.unlockLevel))
		}
	}

	seen = map[string]bool{}
	for _, b := range weaponBlueprints {
		if seen[b.id] {
			el.Add(fmt.Errorf("weapon %q: duplicate id", b.id))
		}
		seen[b.id] = true
		if b.maxAmmo <= 0 {
			el.Add(fmt.Errorf("weapon %q: magazine must hold at least one round", b.id))
		}
	}
	for _, id := range []string{DefaultPrimary, DefaultSecondary, DefaultMelee, DefaultLethal} {
		if !seen[id] {
			el.Add(fmt.Errorf("default loadout weapon %q is not in the catalog", id))
		}
	}

	seen = map[string]bool{}
	for _, ks := range killStreakBlueprints {
		if seen[ks.ID] {
			el.Add(fmt.Errorf("kill streak %q: duplicate id", ks.ID))
		}
		seen[ks.ID] = true
		if ks.Cost <= 0 {
			el.Add(fmt.Errorf("kill streak %q: cost must be positive", ks.ID))
		}
		if ks.Duration < 0 {
			el.Add(fmt.Errorf("kill streak %q: duration must not be negative", ks.ID))
		}
	}

	s := Settings()
	if err := s.Validate(); err != nil {
		el.Add(fmt.Errorf("default settings: %w", err))
	}

	return el.Err()
}
