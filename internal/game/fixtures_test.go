package game

// testTemplates is a small stand-in for the catalog.
type testTemplates struct{}

func testAttachments() []Attachment {
	return []Attachment{
		{ID: "red_dot", Mount: MountSight, Stats: Modifiers{StatMobility: -0.05}, UnlockLevel: 2},
		{ID: "foregrip", Mount: MountUnderbarrel, Stats: Modifiers{StatRecoil: -0.1}, UnlockLevel: 3},
		{ID: "muzzle_brake", Mount: MountMuzzle, Stats: Modifiers{StatRecoil: -0.1}, UnlockLevel: 4},
		{ID: "suppressor", Mount: MountBarrel, Stats: Modifiers{StatDamage: -0.1, StatRange: -0.1}, UnlockLevel: 7},
	}
}

func testWeapon(id string, t WeaponType, maxAmmo int) *Weapon {
	reserve := maxAmmo * 3
	if maxAmmo >= UnlimitedAmmo {
		reserve = 0
	}
	var avail []Attachment
	for _, a := range testAttachments() {
		if t.Accepts(a.Mount) {
			avail = append(avail, a)
		}
	}
	return &Weapon{
		ID:                   id,
		Name:                 id,
		Type:                 t,
		Damage:               30,
		FireRate:             600,
		MaxAmmo:              maxAmmo,
		CurrentAmmo:          maxAmmo,
		ReserveAmmo:          reserve,
		Range:                80,
		Recoil:               0.3,
		Level:                1,
		XPToNextLevel:        WeaponBaseXP,
		MaxLevel:             WeaponMaxLevel,
		AvailableAttachments: avail,
	}
}

func (testTemplates) NewArsenal() []*Weapon {
	return []*Weapon{
		testWeapon("rifle", WeaponAssaultRifle, 30),
		testWeapon("smg", WeaponSubmachineGun, 30),
		testWeapon("pistol", WeaponPistol, 8),
		testWeapon("knife", WeaponKnife, UnlimitedAmmo),
		testWeapon("frag", WeaponGrenade, 2),
	}
}

func (testTemplates) NewPlayer() *Player {
	return &Player{
		Health:    100,
		MaxHealth: 100,
		Position:  Vec3{0, 1.8, 0},
		CanJump:   true,
		Weapons: Loadout{
			Primary:   testWeapon("rifle", WeaponAssaultRifle, 30),
			Secondary: testWeapon("pistol", WeaponPistol, 8),
			Melee:     testWeapon("knife", WeaponKnife, UnlimitedAmmo),
			Lethal:    testWeapon("frag", WeaponGrenade, 2),
		},
		ActiveWeaponSlot: SlotPrimary,
		Level:            1,
		XPToNextLevel:    AccountBaseXP,
		AvailableKillStreaks: []KillStreak{
			{ID: "uav", Cost: 3, Duration: 30, Unlocked: true},
			{ID: "care_package", Cost: 5, Unlocked: true},
		},
		ActiveKillStreaks: []KillStreak{},
	}
}

func (testTemplates) NewSettings() Settings {
	return Settings{
		Sensitivity: 5,
		FOV:         75,
		Brightness:  50,
		Crosshair:   Crosshair{Style: "default", Color: "#ffffff", Size: 4, Gap: 2, Thickness: 1, Opacity: 0.8, Dot: true},
		Audio:       AudioSettings{Master: 80, Music: 60, Effects: 90},
		Graphics:    GraphicsSettings{Quality: "high", Shadows: true, AntiAliasing: true},
		Controls:    ControlSettings{AutoReload: true},
	}
}

func newTestStore() *Store {
	return NewStore(testTemplates{})
}

// recorder collects events for assertions.
type recorder struct {
	events []Event
}

func (r *recorder) handle(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) count(k EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
