package catalog

import "github.com/pixil98/go-fps/internal/game"

type weaponBlueprint struct {
	id         string
	name       string
	typ        game.WeaponType
	damage     float64
	fireRate   float64
	reloadTime float64
	maxAmmo    int
	rng        float64
	recoil     float64
	mobility   float64
	model      string
}

var weaponBlueprints = []weaponBlueprint{
	{"m4a1", "M4A1", game.WeaponAssaultRifle, 30, 700, 2.5, 30, 80, 0.3, 0.7, "m4a1"},
	{"ak47", "AK-47", game.WeaponAssaultRifle, 35, 600, 2.8, 30, 85, 0.4, 0.65, "ak47"},
	{"mp5", "MP5", game.WeaponSubmachineGun, 25, 800, 2.2, 30, 60, 0.25, 0.8, "mp5"},
	{"p90", "P90", game.WeaponSubmachineGun, 22, 900, 2.3, 50, 55, 0.2, 0.85, "p90"},
	{"r870", "R870 MCS", game.WeaponShotgun, 80, 75, 0.7, 8, 20, 0.7, 0.6, "r870"},
	{"dsr50", "DSR-50", game.WeaponSniperRifle, 95, 40, 3.5, 5, 100, 0.8, 0.4, "dsr50"},
	{"m8a1", "M8A1", game.WeaponAssaultRifle, 32, 750, 2.4, 32, 75, 0.35, 0.7, "m8a1"},
	{"lsat", "LSAT", game.WeaponLightMachineGun, 33, 650, 4.5, 100, 85, 0.45, 0.5, "lsat"},
	{"msmc", "MSMC", game.WeaponSubmachineGun, 28, 850, 2.1, 30, 50, 0.3, 0.8, "msmc"},
	{"m1911", "M1911", game.WeaponPistol, 40, 400, 1.8, 8, 40, 0.25, 0.9, "m1911"},
	{"combatknife", "Combat Knife", game.WeaponKnife, 100, 100, 0, game.UnlimitedAmmo, 2, 0, 1, "knife"},
	{"fraggrenade", "Frag Grenade", game.WeaponGrenade, 100, 0, 0, 2, 15, 0, 0.9, "fraggrenade"},
}

// instantiate builds an owned weapon at level 1 with a full magazine and
// three magazines in reserve.
func (b weaponBlueprint) instantiate() *game.Weapon {
	reserve := b.maxAmmo * 3
	if b.maxAmmo >= game.UnlimitedAmmo {
		reserve = 0
	}
	return &game.Weapon{
		ID:                   b.id,
		Name:                 b.name,
		Type:                 b.typ,
		Damage:               b.damage,
		FireRate:             b.fireRate,
		ReloadTime:           b.reloadTime,
		MaxAmmo:              b.maxAmmo,
		CurrentAmmo:          b.maxAmmo,
		ReserveAmmo:          reserve,
		Range:                b.rng,
		Recoil:               b.recoil,
		Mobility:             b.mobility,
		Unlocked:             true,
		Model:                b.model,
		Level:                1,
		XPToNextLevel:        game.WeaponBaseXP,
		MaxLevel:             game.WeaponMaxLevel,
		AvailableAttachments: AttachmentsFor(b.typ),
	}
}

// Weapons returns a fresh copy of the whole weapon catalog.
func Weapons() []*game.Weapon {
	out := make([]*game.Weapon, len(weaponBlueprints))
	for i, b := range weaponBlueprints {
		out[i] = b.instantiate()
	}
	return out
}

// Weapon returns a fresh copy of the catalog weapon with id.
func Weapon(id string) (*game.Weapon, bool) {
	for _, b := range weaponBlueprints {
		if b.id == id {
			return b.instantiate(), true
		}
	}
	return nil, false
}
