package terminal

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-fps/internal/catalog"
	"github.com/pixil98/go-fps/internal/combat"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-testutil"
)

type fakeEngine struct {
	input  *combat.InputQueue
	reload combat.ReloadStage
	shots  []combat.Projectile
	hits   []combat.Hit
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{input: combat.NewInputQueue()}
}

func (e *fakeEngine) Input() *combat.InputQueue        { return e.input }
func (e *fakeEngine) Reloading() combat.ReloadStage    { return e.reload }
func (e *fakeEngine) Projectiles() []combat.Projectile { return e.shots }
func (e *fakeEngine) ReportHit(_ context.Context, h combat.Hit) error {
	e.hits = append(e.hits, h)
	return nil
}

func TestTranslate(t *testing.T) {
	tests := map[string]struct {
		key       tcell.Key
		r         rune
		expAction action
		expEvent  combat.InputEvent
	}{
		"reload":       {key: tcell.KeyRune, r: 'r', expAction: actionInput, expEvent: combat.InputEvent{Kind: combat.Reload}},
		"slot 2":       {key: tcell.KeyRune, r: '2', expAction: actionInput, expEvent: combat.InputEvent{Kind: combat.SwitchWeapon, Slot: game.SlotSecondary}},
		"melee":        {key: tcell.KeyRune, r: '3', expAction: actionInput, expEvent: combat.InputEvent{Kind: combat.SwitchWeapon, Slot: game.SlotMelee}},
		"grenade":      {key: tcell.KeyRune, r: 'g', expAction: actionInput, expEvent: combat.InputEvent{Kind: combat.ThrowGrenade}},
		"streak":       {key: tcell.KeyRune, r: '4', expAction: actionInput, expEvent: combat.InputEvent{Kind: combat.ActivateKillStreak}},
		"pause":        {key: tcell.KeyRune, r: 'p', expAction: actionInput, expEvent: combat.InputEvent{Kind: combat.TogglePause}},
		"trigger":      {key: tcell.KeyRune, r: ' ', expAction: actionTrigger},
		"hit":          {key: tcell.KeyRune, r: 'h', expAction: actionHit},
		"headshot":     {key: tcell.KeyRune, r: 'H', expAction: actionHeadshot},
		"enter":        {key: tcell.KeyEnter, expAction: actionStart},
		"escape":       {key: tcell.KeyEscape, expAction: actionQuit},
		"q":            {key: tcell.KeyRune, r: 'q', expAction: actionQuit},
		"unbound rune": {key: tcell.KeyRune, r: 'z', expAction: actionNone},
		"unbound key":  {key: tcell.KeyF5, expAction: actionNone},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			act, ev := translate(tt.key, tt.r)
			testutil.AssertEqual(t, "action", act, tt.expAction)
			testutil.AssertEqual(t, "event", ev, tt.expEvent)
		})
	}
}

func newTestFrontend(t *testing.T) (*Frontend, *game.Store, *fakeEngine) {
	t.Helper()
	store := game.NewStore(catalog.Templates{})
	eng := newFakeEngine()
	return NewFrontend(store, eng, WithRand(rand.New(rand.NewPCG(1, 2)))), store, eng
}

func TestFrontend_TriggerLatch(t *testing.T) {
	f, _, eng := newTestFrontend(t)

	testutil.AssertEqual(t, "running", f.handleKey(context.Background(), tcell.KeyRune, ' '), true)
	testutil.AssertEqual(t, "running", f.handleKey(context.Background(), tcell.KeyRune, ' '), true)

	evs := eng.input.Drain()
	testutil.AssertEqual(t, "events", len(evs), 2)
	testutil.AssertEqual(t, "press", evs[0].Kind, combat.TriggerDown)
	testutil.AssertEqual(t, "release", evs[1].Kind, combat.TriggerUp)
}

func TestFrontend_StartAndHit(t *testing.T) {
	f, store, eng := newTestFrontend(t)
	ctx := context.Background()

	f.handleKey(ctx, tcell.KeyRune, 'h')
	testutil.AssertEqual(t, "hits before match", len(eng.hits), 0)

	f.handleKey(ctx, tcell.KeyEnter, 0)
	testutil.AssertEqual(t, "phase", store.GameState(), game.PhasePlaying)
	testutil.AssertEqual(t, "bots", len(store.Bots()), catalog.RosterSize)

	// A second Enter mid-match leaves the roster alone.
	first := store.Bots()[0]
	f.handleKey(ctx, tcell.KeyEnter, 0)
	testutil.AssertEqual(t, "roster kept", store.Bots()[0].Position, first.Position)

	f.handleKey(ctx, tcell.KeyRune, 'H')
	testutil.AssertEqual(t, "hits", len(eng.hits), 1)
	testutil.AssertEqual(t, "target", eng.hits[0].TargetID, "bot-6")
	testutil.AssertEqual(t, "damage", eng.hits[0].Damage, 30.0)
	testutil.AssertEqual(t, "headshot", eng.hits[0].Headshot, true)
}

func TestFrontend_Quit(t *testing.T) {
	f, _, _ := newTestFrontend(t)
	testutil.AssertEqual(t, "q", f.handleKey(context.Background(), tcell.KeyRune, 'q'), false)
	testutil.AssertEqual(t, "ctrl-c", f.handleKey(context.Background(), tcell.KeyCtrlC, 0), false)
}

func TestHUDLines(t *testing.T) {
	tests := map[string]struct {
		mutate func(h *hudState)
		exp    []string
		notExp []string
	}{
		"menu": {
			exp: []string{"MENU  |  Urban  |  TDM  |  score 0", "Press Enter to start a match on urban.", "M4A1           30/90"},
		},
		"reloading": {
			mutate: func(h *hudState) {
				h.phase = game.PhasePlaying
				h.reload = combat.ReloadMid
			},
			exp:    []string{"RELOADING (mid)"},
			notExp: []string{"Press Enter"},
		},
		"empty magazine": {
			mutate: func(h *hudState) {
				h.player.Weapons.Primary.CurrentAmmo = 0
				h.trigger = true
			},
			exp: []string{"EMPTY  FIRING"},
		},
		"melee is unlimited": {
			mutate: func(h *hudState) {
				h.player.ActiveWeaponSlot = game.SlotMelee
			},
			exp:    []string{"Combat Knife   ∞"},
			notExp: []string{"EMPTY"},
		},
		"streaks": {
			mutate: func(h *hudState) {
				h.player.KillStreak = 3
			},
			exp: []string{"STREAK 3  UAV Recon ready"},
		},
		"paused and corrupted": {
			mutate: func(h *hudState) {
				h.phase = game.PhasePaused
				h.corrupted = true
			},
			exp: []string{"Paused. Press p to resume.", "Saved progress could not be read"},
		},
		"bot counts": {
			mutate: func(h *hudState) {
				h.bots = []game.Bot{
					{Team: game.TeamAllies, Health: 100},
					{Team: game.TeamEnemies, Health: 100},
					{Team: game.TeamEnemies, Health: 0},
				}
				h.projectiles = 2
			},
			exp: []string{"allies 1  enemies 1  projectiles 2"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := hudState{
				phase:   game.PhaseMenu,
				mapType: game.MapUrban,
				mode:    game.ModeTeamDeathmatch,
				player:  catalog.Player(),
			}
			if tt.mutate != nil {
				tt.mutate(&h)
			}
			out := strings.Join(hudLines(h), "\n")
			for _, exp := range tt.exp {
				if !strings.Contains(out, exp) {
					t.Errorf("expected HUD to contain %q, got:\n%s", exp, out)
				}
			}
			for _, exp := range tt.notExp {
				if strings.Contains(out, exp) {
					t.Errorf("expected HUD not to contain %q, got:\n%s", exp, out)
				}
			}
		})
	}
}

func TestBar(t *testing.T) {
	tests := map[string]struct {
		cur, total float64
		exp        string
	}{
		"full":     {cur: 100, total: 100, exp: "[####################]"},
		"half":     {cur: 50, total: 100, exp: "[##########..........]"},
		"overflow": {cur: 150, total: 100, exp: "[####################]"},
		"no total": {cur: 5, total: 0, exp: "[....................]"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "bar", bar(tt.cur, tt.total), tt.exp)
		})
	}
}

func TestFrontend_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("initializing screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(100, 20)

	store := game.NewStore(catalog.Templates{})
	f := NewFrontend(store, newFakeEngine(), WithScreen(screen))
	f.draw()

	var row strings.Builder
	for x := 0; x < 4; x++ {
		r, _, _, _ := screen.GetContent(x, 0)
		row.WriteRune(r)
	}
	testutil.AssertEqual(t, "header", row.String(), "MENU")
}

func TestPlayerCamera(t *testing.T) {
	tests := map[string]struct {
		rotation game.Vec3
		exp      game.Vec3
	}{
		"forward":   {rotation: game.Vec3{}, exp: game.Vec3{0, 0, -1}},
		"turn left": {rotation: game.Vec3{0, math.Pi / 2, 0}, exp: game.Vec3{-1, 0, 0}},
		"look up":   {rotation: game.Vec3{math.Pi / 2, 0, 0}, exp: game.Vec3{0, 1, 0}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store := game.NewStore(catalog.Templates{})
			rot := tt.rotation
			if err := store.UpdatePlayer(game.PlayerUpdate{Rotation: &rot}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			cam := NewPlayerCamera(store)
			testutil.AssertEqual(t, "position", cam.Position(), catalog.DefaultPosition)
			dir := cam.Direction()
			for i := range dir {
				if math.Abs(dir[i]-tt.exp[i]) > 1e-9 {
					t.Errorf("direction = %v, expected %v", dir, tt.exp)
					break
				}
			}
		})
	}
}
