package game

// Slot is one of the four fixed weapon positions on a player.
type Slot string

const (
	SlotPrimary   Slot = "primary"
	SlotSecondary Slot = "secondary"
	SlotMelee     Slot = "melee"
	SlotLethal    Slot = "lethal"
)

// Slots lists the weapon slots in switch order.
var Slots = []Slot{SlotPrimary, SlotSecondary, SlotMelee, SlotLethal}

func (s Slot) Valid() bool {
	switch s {
	case SlotPrimary, SlotSecondary, SlotMelee, SlotLethal:
		return true
	}
	return false
}

// Loadout is the fixed map of slots to weapons. Empty slots are nil.
type Loadout struct {
	Primary   *Weapon `json:"primary"`
	Secondary *Weapon `json:"secondary"`
	Melee     *Weapon `json:"melee"`
	Lethal    *Weapon `json:"lethal"`
}

func (l *Loadout) slot(s Slot) **Weapon {
	switch s {
	case SlotPrimary:
		return &l.Primary
	case SlotSecondary:
		return &l.Secondary
	case SlotMelee:
		return &l.Melee
	case SlotLethal:
		return &l.Lethal
	}
	return nil
}

// Get returns the weapon in s, or nil.
func (l Loadout) Get(s Slot) *Weapon {
	p := l.slot(s)
	if p == nil {
		return nil
	}
	return *p
}

// Set places w (or nil) in s. Unknown slots are ignored.
func (l *Loadout) Set(s Slot, w *Weapon) {
	if p := l.slot(s); p != nil {
		*p = w
	}
}

func (l Loadout) Clone() Loadout {
	return Loadout{
		Primary:   l.Primary.Clone(),
		Secondary: l.Secondary.Clone(),
		Melee:     l.Melee.Clone(),
		Lethal:    l.Lethal.Clone(),
	}
}

// KillStreak is an ability bought with streak counter units.
type KillStreak struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"isUnlocked"`
	Active      bool   `json:"isActive"`
	// Duration in seconds. Zero means the effect is instantaneous.
	Duration int `json:"duration"`
}

func cloneStreaks(in []KillStreak) []KillStreak {
	if in == nil {
		return nil
	}
	out := make([]KillStreak, len(in))
	copy(out, in)
	return out
}

// Player is the controlled agent.
type Player struct {
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	Armor     float64 `json:"armor"`

	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`

	IsMoving    bool `json:"isMoving"`
	IsRunning   bool `json:"isRunning"`
	IsCrouching bool `json:"isCrouching"`
	IsProne     bool `json:"isProne"`
	IsSliding   bool `json:"isSliding"`
	IsJumping   bool `json:"isJumping"`
	CanJump     bool `json:"canJump"`

	Weapons               Loadout `json:"weapons"`
	ActiveWeaponSlot      Slot    `json:"activeWeaponSlot"`
	HasDualPrimaryPowerup bool    `json:"hasDualPrimaryPowerup"`

	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPToNextLevel int `json:"xpToNextLevel"`
	Prestige      int `json:"prestige"`

	KillStreak           int          `json:"killStreak"`
	AvailableKillStreaks []KillStreak `json:"availableKillStreaks"`
	ActiveKillStreaks    []KillStreak `json:"activeKillStreaks"`
}

// Clone returns a deep copy of p.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	c.Weapons = p.Weapons.Clone()
	c.AvailableKillStreaks = cloneStreaks(p.AvailableKillStreaks)
	c.ActiveKillStreaks = cloneStreaks(p.ActiveKillStreaks)
	return &c
}

// ActiveWeapon returns the weapon in the active slot, or nil.
func (p *Player) ActiveWeapon() *Weapon {
	return p.Weapons.Get(p.ActiveWeaponSlot)
}

func (p *Player) availableStreak(id string) (KillStreak, bool) {
	for _, ks := range p.AvailableKillStreaks {
		if ks.ID == id {
			return ks, true
		}
	}
	return KillStreak{}, false
}

// StreakActive reports whether a kill streak with id is currently active.
func (p *Player) StreakActive(id string) bool {
	for _, ks := range p.ActiveKillStreaks {
		if ks.ID == id {
			return true
		}
	}
	return false
}

// PlayerUpdate carries the player fields to change. Nil fields are left as is.
type PlayerUpdate struct {
	Health    *float64
	MaxHealth *float64
	Armor     *float64

	Position *Vec3
	Rotation *Vec3

	IsMoving    *bool
	IsRunning   *bool
	IsCrouching *bool
	IsProne     *bool
	IsSliding   *bool
	IsJumping   *bool
	CanJump     *bool

	HasDualPrimaryPowerup *bool
}

func (u PlayerUpdate) apply(p *Player) {
	setIf(&p.Health, u.Health)
	setIf(&p.MaxHealth, u.MaxHealth)
	setIf(&p.Armor, u.Armor)
	setIf(&p.Position, u.Position)
	setIf(&p.Rotation, u.Rotation)
	setIf(&p.IsMoving, u.IsMoving)
	setIf(&p.IsRunning, u.IsRunning)
	setIf(&p.IsCrouching, u.IsCrouching)
	setIf(&p.IsProne, u.IsProne)
	setIf(&p.IsSliding, u.IsSliding)
	setIf(&p.IsJumping, u.IsJumping)
	setIf(&p.CanJump, u.CanJump)
	setIf(&p.HasDualPrimaryPowerup, u.HasDualPrimaryPowerup)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
