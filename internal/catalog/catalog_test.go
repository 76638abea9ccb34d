package catalog

import (
	"math/rand/v2"
	"testing"

	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWeapons_Instantiate(t *testing.T) {
	tests := map[string]struct {
		id             string
		expType        game.WeaponType
		expMaxAmmo     int
		expReserve     int
		expAttachments int
	}{
		"assault rifle": {
			id:             "m4a1",
			expType:        game.WeaponAssaultRifle,
			expMaxAmmo:     30,
			expReserve:     90,
			expAttachments: 15,
		},
		"pistol excludes underbarrel and stock": {
			id:             "m1911",
			expType:        game.WeaponPistol,
			expMaxAmmo:     8,
			expReserve:     24,
			expAttachments: 11,
		},
		"knife is unlimited with no attachments": {
			id:             "combatknife",
			expType:        game.WeaponKnife,
			expMaxAmmo:     game.UnlimitedAmmo,
			expReserve:     0,
			expAttachments: 0,
		},
		"grenade has no attachments": {
			id:             "fraggrenade",
			expType:        game.WeaponGrenade,
			expMaxAmmo:     2,
			expReserve:     6,
			expAttachments: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, ok := Weapon(tt.id)
			if !ok {
				t.Fatalf("weapon %q not found", tt.id)
			}

			testutil.AssertEqual(t, "type", w.Type, tt.expType)
			testutil.AssertEqual(t, "max ammo", w.MaxAmmo, tt.expMaxAmmo)
			testutil.AssertEqual(t, "current ammo", w.CurrentAmmo, tt.expMaxAmmo)
			testutil.AssertEqual(t, "reserve", w.ReserveAmmo, tt.expReserve)
			testutil.AssertEqual(t, "attachments", len(w.AvailableAttachments), tt.expAttachments)
			testutil.AssertEqual(t, "level", w.Level, 1)
			testutil.AssertEqual(t, "xp to next", w.XPToNextLevel, 1000)
			testutil.AssertEqual(t, "max level", w.MaxLevel, 20)
		})
	}
}

func TestWeapon_CopiesAreIndependent(t *testing.T) {
	a, _ := Weapon("m4a1")
	b, _ := Weapon("m4a1")

	a.CurrentAmmo = 0
	a.AvailableAttachments[0].Unlocked = true
	a.AvailableAttachments[0].Stats[game.StatMobility] = 5

	testutil.AssertEqual(t, "ammo", b.CurrentAmmo, 30)
	testutil.AssertEqual(t, "unlocked", b.AvailableAttachments[0].Unlocked, false)
	testutil.AssertEqual(t, "stat", b.AvailableAttachments[0].Stats[game.StatMobility], -0.05)
}

func TestPlayer_Defaults(t *testing.T) {
	p := Player()

	testutil.AssertEqual(t, "health", p.Health, 100.0)
	testutil.AssertEqual(t, "position", p.Position, game.Vec3{0, 1.8, 0})
	testutil.AssertEqual(t, "primary", p.Weapons.Primary.ID, "m4a1")
	testutil.AssertEqual(t, "secondary", p.Weapons.Secondary.ID, "m1911")
	testutil.AssertEqual(t, "melee", p.Weapons.Melee.ID, "combatknife")
	testutil.AssertEqual(t, "lethal", p.Weapons.Lethal.ID, "fraggrenade")
	testutil.AssertEqual(t, "active slot", p.ActiveWeaponSlot, game.SlotPrimary)
	testutil.AssertEqual(t, "xp to next", p.XPToNextLevel, 5000)
	testutil.AssertEqual(t, "streaks", len(p.AvailableKillStreaks), 7)
	testutil.AssertEqual(t, "active streaks", len(p.ActiveKillStreaks), 0)
}

func TestSpawnRoster(t *testing.T) {
	tests := map[string]struct {
		mapType   game.MapType
		expSpread float64
	}{
		"urban":    {mapType: game.MapUrban, expSpread: 80},
		"forest":   {mapType: game.MapForest, expSpread: 80},
		"facility": {mapType: game.MapFacility, expSpread: 40},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			bots := SpawnRoster(tt.mapType, rand.New(rand.NewPCG(1, 2)))

			testutil.AssertEqual(t, "count", len(bots), RosterSize)

			allies := 0
			for i, b := range bots {
				if b.Team == game.TeamAllies {
					allies++
				}
				if b.Position[0] < -tt.expSpread/2 || b.Position[0] > tt.expSpread/2 {
					t.Errorf("bot %d x %f outside spread", i, b.Position[0])
				}
				if b.Position[2] < -tt.expSpread/2 || b.Position[2] > tt.expSpread/2 {
					t.Errorf("bot %d z %f outside spread", i, b.Position[2])
				}
				testutil.AssertEqual(t, "state", b.State, game.BotPatrolling)
				testutil.AssertEqual(t, "health", b.Health, 100.0)
				if b.Weapon == nil {
					t.Errorf("bot %d has no weapon", i)
				}
			}
			testutil.AssertEqual(t, "allies", allies, 6)
			testutil.AssertEqual(t, "first id", bots[0].ID, "bot-0")
			testutil.AssertEqual(t, "first name", bots[0].Name, "Bot 1")
		})
	}
}

func TestStartMatch(t *testing.T) {
	s := game.NewStore(Templates{})
	if err := s.SetCurrentMap(game.MapFacility); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddBot(game.Bot{ID: "bot-0", Health: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := StartMatch(s, rand.New(rand.NewPCG(1, 2))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "phase", s.GameState(), game.PhasePlaying)
	testutil.AssertEqual(t, "bots", len(s.Bots()), RosterSize)
	b, ok := s.Bot("bot-0")
	testutil.AssertEqual(t, "replaced", ok, true)
	testutil.AssertEqual(t, "fresh health", b.Health, 100.0)
}
