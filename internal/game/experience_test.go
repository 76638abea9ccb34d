package game

import (
	"math"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestLevelWeapon(t *testing.T) {
	tests := map[string]struct {
		level, xp, threshold int
		amount               int
		expLevel             int
		expXP                int
		expThreshold         int
		expUnlocked          []string
	}{
		"below threshold": {
			level: 1, xp: 100, threshold: 1000, amount: 200,
			expLevel: 1, expXP: 300, expThreshold: 1000,
		},
		"single level with carry": {
			level: 1, xp: 950, threshold: 1000, amount: 100,
			expLevel: 2, expXP: 50, expThreshold: 1200,
			expUnlocked: []string{"red_dot"},
		},
		"multiple levels": {
			level: 1, xp: 0, threshold: 1000, amount: 1000 + 1200 + 10,
			expLevel: 3, expXP: 10, expThreshold: 1440,
			expUnlocked: []string{"red_dot", "foregrip"},
		},
		"reaching the cap pins xp": {
			level: 19, xp: 0, threshold: 500, amount: 10000,
			expLevel: 20, expXP: 0, expThreshold: 0,
		},
		"at the cap xp has no effect": {
			level: 20, xp: 0, threshold: 0, amount: 5000,
			expLevel: 20, expXP: 0, expThreshold: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := testWeapon("rifle", WeaponAssaultRifle, 30)
			w.Level, w.XP, w.XPToNextLevel = tt.level, tt.xp, tt.threshold

			prog := LevelWeapon(w, tt.amount)

			testutil.AssertEqual(t, "level", w.Level, tt.expLevel)
			testutil.AssertEqual(t, "xp", w.XP, tt.expXP)
			testutil.AssertEqual(t, "threshold", w.XPToNextLevel, tt.expThreshold)
			testutil.AssertEqual(t, "from", prog.From, tt.level)
			testutil.AssertEqual(t, "to", prog.To, tt.expLevel)
			testutil.AssertEqual(t, "unlocked count", len(prog.Unlocked), len(tt.expUnlocked))
			for i, id := range tt.expUnlocked {
				testutil.AssertEqual(t, "unlocked id", prog.Unlocked[i], id)
				a, _ := w.AvailableAttachment(id)
				testutil.AssertEqual(t, "attachment unlocked", a.Unlocked, true)
			}
		})
	}
}

func TestLevelAccount(t *testing.T) {
	tests := map[string]struct {
		level, xp, threshold, prestige int
		amount                         int
		expLevel                       int
		expXP                          int
		expThreshold                   int
		expPrestige                    int
	}{
		"below threshold": {
			level: 1, xp: 0, threshold: 5500, amount: 100,
			expLevel: 1, expXP: 100, expThreshold: 5500,
		},
		"level up recomputes threshold": {
			level: 1, xp: 5400, threshold: 5500, amount: 200,
			expLevel: 2, expXP: 100, expThreshold: 6000,
		},
		"prestige discards overflow": {
			level: 55, xp: 4900, threshold: 5000, amount: 200, prestige: 0,
			expLevel: 1, expXP: 0, expThreshold: 5500, expPrestige: 1,
		},
		"stale zero threshold is recomputed": {
			level: 3, xp: 0, threshold: 0, amount: 10,
			expLevel: 3, expXP: 10, expThreshold: 6500,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := &Player{Level: tt.level, XP: tt.xp, XPToNextLevel: tt.threshold, Prestige: tt.prestige}

			LevelAccount(p, tt.amount)

			testutil.AssertEqual(t, "level", p.Level, tt.expLevel)
			testutil.AssertEqual(t, "xp", p.XP, tt.expXP)
			testutil.AssertEqual(t, "threshold", p.XPToNextLevel, tt.expThreshold)
			testutil.AssertEqual(t, "prestige", p.Prestige, tt.expPrestige)
		})
	}
}

func TestAccountThreshold_MatchesFloorFormula(t *testing.T) {
	for level := 0; level <= PrestigeLevel; level++ {
		exp := int(math.Floor(5000*(1+float64(level)*0.1) + 1e-9))
		testutil.AssertEqual(t, "threshold", AccountThreshold(level), exp)
	}
}

func TestNextWeaponThreshold(t *testing.T) {
	th := WeaponBaseXP
	exp := []int{1200, 1440, 1728, 2073, 2487}
	for _, e := range exp {
		th = NextWeaponThreshold(th)
		testutil.AssertEqual(t, "threshold", th, e)
	}
}
