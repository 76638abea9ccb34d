package game

import "math"

// UnlimitedAmmo marks a weapon whose magazine never depletes.
const UnlimitedAmmo = math.MaxInt32

// WeaponType is the category a weapon belongs to.
type WeaponType string

const (
	WeaponAssaultRifle    WeaponType = "assaultRifle"
	WeaponSubmachineGun   WeaponType = "submachineGun"
	WeaponShotgun         WeaponType = "shotgun"
	WeaponSniperRifle     WeaponType = "sniperRifle"
	WeaponLightMachineGun WeaponType = "lightMachineGun"
	WeaponPistol          WeaponType = "pistol"
	WeaponKnife           WeaponType = "knife"
	WeaponGrenade         WeaponType = "grenade"
)

// Reloadable reports whether weapons of this type use a magazine.
func (t WeaponType) Reloadable() bool {
	return t != WeaponKnife && t != WeaponGrenade
}

// Accepts reports whether an attachment on the given mount fits this weapon type.
func (t WeaponType) Accepts(m Mount) bool {
	switch t {
	case WeaponKnife, WeaponGrenade:
		return false
	case WeaponPistol:
		return m != MountUnderbarrel && m != MountStock
	}
	return true
}

// Mount is one of the seven attachment points on a weapon.
type Mount string

const (
	MountSight       Mount = "sight"
	MountBarrel      Mount = "barrel"
	MountUnderbarrel Mount = "underbarrel"
	MountMagazine    Mount = "magazine"
	MountStock       Mount = "stock"
	MountGrip        Mount = "grip"
	MountMuzzle      Mount = "muzzle"
)

// Mounts lists every mount point in display order.
var Mounts = []Mount{
	MountSight,
	MountBarrel,
	MountUnderbarrel,
	MountMagazine,
	MountStock,
	MountGrip,
	MountMuzzle,
}

func (m Mount) Valid() bool {
	for _, v := range Mounts {
		if v == m {
			return true
		}
	}
	return false
}

// Stat names a weapon attribute an attachment can modify.
type Stat string

const (
	StatDamage     Stat = "damage"
	StatRange      Stat = "range"
	StatRecoil     Stat = "recoil"
	StatMobility   Stat = "mobility"
	StatFireRate   Stat = "fireRate"
	StatReloadTime Stat = "reloadTime"
)

// Modifiers maps a stat to a fractional delta. -0.1 reduces the stat by 10%.
type Modifiers map[Stat]float64

// Attachment is an unlockable weapon modifier.
type Attachment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Mount       Mount     `json:"type"`
	Description string    `json:"description"`
	Stats       Modifiers `json:"stats"`
	UnlockLevel int       `json:"unlockLevel"`
	Unlocked    bool      `json:"isUnlocked"`
	Icon        string    `json:"icon"`
}

func (a Attachment) Clone() Attachment {
	c := a
	if a.Stats != nil {
		c.Stats = make(Modifiers, len(a.Stats))
		for k, v := range a.Stats {
			c.Stats[k] = v
		}
	}
	return c
}

// AttachmentSet holds at most one attachment per mount point.
type AttachmentSet struct {
	Sight       *Attachment `json:"sight"`
	Barrel      *Attachment `json:"barrel"`
	Underbarrel *Attachment `json:"underbarrel"`
	Magazine    *Attachment `json:"magazine"`
	Stock       *Attachment `json:"stock"`
	Grip        *Attachment `json:"grip"`
	Muzzle      *Attachment `json:"muzzle"`
}

func (s *AttachmentSet) slot(m Mount) **Attachment {
	switch m {
	case MountSight:
		return &s.Sight
	case MountBarrel:
		return &s.Barrel
	case MountUnderbarrel:
		return &s.Underbarrel
	case MountMagazine:
		return &s.Magazine
	case MountStock:
		return &s.Stock
	case MountGrip:
		return &s.Grip
	case MountMuzzle:
		return &s.Muzzle
	}
	return nil
}

// Get returns the attachment on m, or nil when the mount is empty.
func (s AttachmentSet) Get(m Mount) *Attachment {
	p := s.slot(m)
	if p == nil {
		return nil
	}
	return *p
}

// Set places a (or nil) on m. Unknown mounts are ignored.
func (s *AttachmentSet) Set(m Mount, a *Attachment) {
	if p := s.slot(m); p != nil {
		*p = a
	}
}

// Equipped returns the mounted attachments in mount order.
func (s AttachmentSet) Equipped() []*Attachment {
	var out []*Attachment
	for _, m := range Mounts {
		if a := s.Get(m); a != nil {
			out = append(out, a)
		}
	}
	return out
}

func (s AttachmentSet) Clone() AttachmentSet {
	var c AttachmentSet
	for _, m := range Mounts {
		if a := s.Get(m); a != nil {
			ac := a.Clone()
			c.Set(m, &ac)
		}
	}
	return c
}

// Weapon is a loadout item. Catalog entries are blueprints; equipped weapons are
// independent copies.
type Weapon struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        WeaponType `json:"type"`
	Damage      float64    `json:"damage"`
	FireRate    float64    `json:"fireRate"`
	ReloadTime  float64    `json:"reloadTime"`
	MaxAmmo     int        `json:"maxAmmo"`
	CurrentAmmo int        `json:"currentAmmo"`
	ReserveAmmo int        `json:"reserveAmmo"`
	Range       float64    `json:"range"`
	Recoil      float64    `json:"recoil"`
	Mobility    float64    `json:"mobility"`
	Unlocked    bool       `json:"isUnlocked"`
	Model       string     `json:"model"`

	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPToNextLevel int `json:"xpToNextLevel"`
	MaxLevel      int `json:"maxLevel"`

	Attachments          AttachmentSet `json:"attachments"`
	AvailableAttachments []Attachment  `json:"availableAttachments"`
}

// Clone returns a deep copy of w. A nil weapon clones to nil.
func (w *Weapon) Clone() *Weapon {
	if w == nil {
		return nil
	}
	c := *w
	c.Attachments = w.Attachments.Clone()
	if w.AvailableAttachments != nil {
		c.AvailableAttachments = make([]Attachment, len(w.AvailableAttachments))
		for i, a := range w.AvailableAttachments {
			c.AvailableAttachments[i] = a.Clone()
		}
	}
	return &c
}

// Unlimited reports whether firing w never consumes ammo.
func (w *Weapon) Unlimited() bool {
	return w.MaxAmmo >= UnlimitedAmmo
}

// Base returns the unmodified value of s.
func (w *Weapon) Base(s Stat) float64 {
	switch s {
	case StatDamage:
		return w.Damage
	case StatRange:
		return w.Range
	case StatRecoil:
		return w.Recoil
	case StatMobility:
		return w.Mobility
	case StatFireRate:
		return w.FireRate
	case StatReloadTime:
		return w.ReloadTime
	}
	return 0
}

// Effective returns s after every equipped attachment's modifier is applied
// multiplicatively: base × Π(1 + modifier).
func (w *Weapon) Effective(s Stat) float64 {
	return w.Modified(s, w.Base(s))
}

// Modified applies the equipped attachment modifiers for s to base.
func (w *Weapon) Modified(s Stat, base float64) float64 {
	v := base
	for _, a := range w.Attachments.Equipped() {
		if mod, ok := a.Stats[s]; ok {
			v *= 1 + mod
		}
	}
	return v
}

// AvailableAttachment returns the weapon's copy of the attachment with id.
func (w *Weapon) AvailableAttachment(id string) (*Attachment, bool) {
	for i := range w.AvailableAttachments {
		if w.AvailableAttachments[i].ID == id {
			return &w.AvailableAttachments[i], true
		}
	}
	return nil, false
}

// unlockAttachment marks the attachment unlocked both in the available list and
// on the mount if it is currently equipped.
func (w *Weapon) unlockAttachment(id string) bool {
	a, ok := w.AvailableAttachment(id)
	if !ok {
		return false
	}
	changed := !a.Unlocked
	a.Unlocked = true
	for _, m := range Mounts {
		if e := w.Attachments.Get(m); e != nil && e.ID == id {
			e.Unlocked = true
		}
	}
	return changed
}
