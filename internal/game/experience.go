package game

const (
	// WeaponBaseXP is the xp a fresh weapon needs to reach level 2.
	WeaponBaseXP = 1000
	// WeaponMaxLevel is the level cap for catalog weapons.
	WeaponMaxLevel = 20
	// AccountBaseXP is the xp a fresh account needs to reach level 2.
	AccountBaseXP = 5000
	// PrestigeLevel is the highest account level before prestige wraps to 1.
	PrestigeLevel = 55
)

// NextWeaponThreshold grows a weapon threshold by 1.2x, rounding down.
func NextWeaponThreshold(threshold int) int {
	return threshold * 6 / 5
}

// AccountThreshold is the xp needed to advance past level:
// floor(5000 × (1 + level × 0.1)).
func AccountThreshold(level int) int {
	return AccountBaseXP + AccountBaseXP/10*level
}

// WeaponProgress describes what a call to LevelWeapon changed.
type WeaponProgress struct {
	From, To int
	// Unlocked holds the ids of attachments unlocked along the way.
	Unlocked []string
}

// LevelWeapon adds amount xp to w in place. While the xp covers the threshold
// and the weapon is below its cap it advances a level, grows the threshold
// and unlocks attachments whose unlock level equals the new level. At the cap
// xp and threshold are pinned to zero.
func LevelWeapon(w *Weapon, amount int) WeaponProgress {
	prog := WeaponProgress{From: w.Level, To: w.Level}
	if w.Level >= w.MaxLevel {
		w.XP, w.XPToNextLevel = 0, 0
		return prog
	}
	if w.XPToNextLevel <= 0 {
		w.XPToNextLevel = WeaponBaseXP
	}

	w.XP += amount
	for w.XP >= w.XPToNextLevel && w.Level < w.MaxLevel {
		w.XP -= w.XPToNextLevel
		w.Level++
		w.XPToNextLevel = NextWeaponThreshold(w.XPToNextLevel)

		for _, a := range w.AvailableAttachments {
			if a.UnlockLevel == w.Level && w.unlockAttachment(a.ID) {
				prog.Unlocked = append(prog.Unlocked, a.ID)
			}
		}
	}

	if w.Level >= w.MaxLevel {
		w.XP, w.XPToNextLevel = 0, 0
	}
	prog.To = w.Level
	return prog
}

// AccountProgress describes what a call to LevelAccount changed.
type AccountProgress struct {
	From, To int
	// Prestiged counts how many times the level wrapped past PrestigeLevel.
	Prestiged int
}

// LevelAccount adds amount xp to p in place. Passing PrestigeLevel resets the
// level to 1, bumps prestige and zeroes xp; overflow past the boundary is
// discarded.
func LevelAccount(p *Player, amount int) AccountProgress {
	prog := AccountProgress{From: p.Level}
	if p.XPToNextLevel <= 0 {
		p.XPToNextLevel = AccountThreshold(p.Level)
	}

	p.XP += amount
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++

		if p.Level > PrestigeLevel {
			p.Level = 1
			p.Prestige++
			p.XP = 0
			prog.Prestiged++
		}

		p.XPToNextLevel = AccountThreshold(p.Level)
	}

	prog.To = p.Level
	return prog
}
