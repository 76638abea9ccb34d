package game

// SoundCategory groups sounds under a shared volume level.
type SoundCategory string

const (
	CategoryWeapon      SoundCategory = "weapon"
	CategoryPlayer      SoundCategory = "player"
	CategoryEnvironment SoundCategory = "environment"
	CategoryUI          SoundCategory = "ui"
	CategoryMusic       SoundCategory = "music"
)

// SoundOptions tune a single playback. A zero Volume means full volume.
type SoundOptions struct {
	Volume   float64
	Loop     bool
	Position *Vec3
	Pitch    float64
}

// SoundPlayer is the fire-and-forget audio sink.
type SoundPlayer interface {
	PlaySound(category SoundCategory, id string, opts SoundOptions)
}

// WeaponSoundKind is the weapon action a sound accompanies.
type WeaponSoundKind string

const (
	WeaponSoundFire        WeaponSoundKind = "fire"
	WeaponSoundReloadStart WeaponSoundKind = "reload_start"
	WeaponSoundReloadMid   WeaponSoundKind = "reload_mid"
	WeaponSoundReloadEnd   WeaponSoundKind = "reload_end"
	WeaponSoundEmpty       WeaponSoundKind = "empty"
	WeaponSoundSwitch      WeaponSoundKind = "switch"
)

// FallbackWeaponSound is played when a weapon type has no sound for an action.
const FallbackWeaponSound = "weapon_empty"

var weaponSoundPrefix = map[WeaponType]string{
	WeaponAssaultRifle:  "m4a1",
	WeaponSubmachineGun: "mp5",
	WeaponShotgun:       "shotgun",
	WeaponSniperRifle:   "sniper",
	WeaponPistol:        "pistol",
}

// WeaponSound returns the sound id for kind on a weapon of type t.
func WeaponSound(t WeaponType, kind WeaponSoundKind) string {
	switch kind {
	case WeaponSoundSwitch:
		return "weapon_switch"
	case WeaponSoundEmpty:
		return FallbackWeaponSound
	}

	switch t {
	case WeaponKnife:
		if kind == WeaponSoundFire {
			return "knife_swing"
		}
		return FallbackWeaponSound
	case WeaponGrenade:
		switch kind {
		case WeaponSoundFire:
			return "grenade_throw"
		case WeaponSoundReloadStart:
			return "grenade_pin"
		}
		return FallbackWeaponSound
	}

	prefix, ok := weaponSoundPrefix[t]
	if !ok {
		return FallbackWeaponSound
	}
	return prefix + "_" + string(kind)
}

// NopSoundPlayer discards every sound.
type NopSoundPlayer struct{}

func (NopSoundPlayer) PlaySound(SoundCategory, string, SoundOptions) {}
