package catalog

import "github.com/pixil98/go-fps/internal/game"

type attachmentBlueprint struct {
	id          string
	name        string
	mount       game.Mount
	description string
	stats       game.Modifiers
	unlockLevel int
}

var attachmentBlueprints = []attachmentBlueprint{
	{"red_dot", "Red Dot Sight", game.MountSight, "Improves target acquisition with a clear red dot.",
		game.Modifiers{game.StatMobility: -0.05}, 2},
	{"holographic", "Holographic Sight", game.MountSight, "Provides a wider field of view than standard sights.",
		game.Modifiers{game.StatMobility: -0.08}, 5},
	{"acog", "ACOG Scope", game.MountSight, "4x magnification for medium to long range engagements.",
		game.Modifiers{game.StatMobility: -0.15, game.StatRange: 0.2}, 10},

	{"long_barrel", "Long Barrel", game.MountBarrel, "Increases effective range.",
		game.Modifiers{game.StatRange: 0.2, game.StatMobility: -0.1}, 4},
	{"suppressor", "Suppressor", game.MountBarrel, "Reduces sound and muzzle flash but decreases damage.",
		game.Modifiers{game.StatDamage: -0.1, game.StatRange: -0.1, game.StatRecoil: -0.05}, 7},

	{"foregrip", "Foregrip", game.MountUnderbarrel, "Reduces recoil for better control.",
		game.Modifiers{game.StatRecoil: -0.15}, 3},
	{"laser", "Laser Sight", game.MountUnderbarrel, "Improves hip-fire accuracy.",
		game.Modifiers{game.StatRecoil: -0.05}, 6},

	{"extended_mag", "Extended Magazine", game.MountMagazine, "Increases ammo capacity.",
		game.Modifiers{game.StatMobility: -0.05}, 4},
	{"fast_mag", "Fast Mag", game.MountMagazine, "Reduces reload time.",
		game.Modifiers{game.StatReloadTime: -0.2}, 8},

	{"lightweight_stock", "Lightweight Stock", game.MountStock, "Increases movement speed while aiming.",
		game.Modifiers{game.StatMobility: 0.1, game.StatRecoil: 0.05}, 5},
	{"tactical_stock", "Tactical Stock", game.MountStock, "Reduces recoil while aiming.",
		game.Modifiers{game.StatRecoil: -0.1, game.StatMobility: -0.05}, 9},

	{"quickdraw_grip", "Quickdraw Grip", game.MountGrip, "Faster weapon draw and aim down sight speed.",
		game.Modifiers{game.StatMobility: 0.1}, 3},
	{"ergonomic_grip", "Ergonomic Grip", game.MountGrip, "Better handling and reduced recoil.",
		game.Modifiers{game.StatRecoil: -0.08}, 6},

	{"muzzle_brake", "Muzzle Brake", game.MountMuzzle, "Reduces vertical recoil.",
		game.Modifiers{game.StatRecoil: -0.1}, 4},
	{"compensator", "Compensator", game.MountMuzzle, "Reduces horizontal recoil.",
		game.Modifiers{game.StatRecoil: -0.12}, 7},
}

func (b attachmentBlueprint) instantiate() game.Attachment {
	stats := make(game.Modifiers, len(b.stats))
	for k, v := range b.stats {
		stats[k] = v
	}
	return game.Attachment{
		ID:          b.id,
		Name:        b.name,
		Mount:       b.mount,
		Description: b.description,
		Stats:       stats,
		UnlockLevel: b.unlockLevel,
		Icon:        b.id,
	}
}

// Attachments returns a fresh, locked copy of every attachment.
func Attachments() []game.Attachment {
	out := make([]game.Attachment, len(attachmentBlueprints))
	for i, b := range attachmentBlueprints {
		out[i] = b.instantiate()
	}
	return out
}

// AttachmentsFor returns the attachments that fit weapons of type t.
func AttachmentsFor(t game.WeaponType) []game.Attachment {
	var out []game.Attachment
	for _, b := range attachmentBlueprints {
		if t.Accepts(b.mount) {
			out = append(out, b.instantiate())
		}
	}
	return out
}
