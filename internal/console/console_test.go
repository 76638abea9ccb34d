package console

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/pixil98/go-fps/internal/catalog"
	"github.com/pixil98/go-fps/internal/combat"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/messaging"
	"github.com/pixil98/go-testutil"
)

type scriptedConn struct {
	io.Reader
	out bytes.Buffer
}

func (c *scriptedConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

type fakeSubscriber struct {
	subject      string
	unsubscribed bool
	send         []messaging.Notification
}

func (f *fakeSubscriber) Subscribe(subject string, handler func(string, []byte)) (func(), error) {
	f.subject = subject
	for _, n := range f.send {
		data, _ := json.Marshal(n)
		handler(subject, data)
	}
	return func() { f.unsubscribed = true }, nil
}

func TestConsole_RunSession(t *testing.T) {
	tests := map[string]struct {
		script    string
		setup     func(s *game.Store)
		expOutput []string
		check     func(t *testing.T, s *game.Store, q *combat.InputQueue)
	}{
		"help lists commands": {
			script:    "help\nquit\n",
			expOutput: []string{"equip", "watch", "Goodbye."},
		},
		"status": {
			script:    "status\n",
			expOutput: []string{"Phase: Menu", "Level 1 (prestige 0)", "Weapon: M4A1  30/90"},
		},
		"loadout": {
			script:    "loadout\nquit\n",
			expOutput: []string{"* primary   M4A1", "  lethal    Frag Grenade"},
		},
		"unknown command": {
			script:    "dance\nquit\n",
			expOutput: []string{`Unknown command "dance"`},
		},
		"choose map": {
			script: "map\n3\nquit\n",
			check: func(t *testing.T, s *game.Store, _ *combat.InputQueue) {
				testutil.AssertEqual(t, "map", s.CurrentMap(), game.MapFacility)
			},
		},
		"invalid selection retries": {
			script:    "mode\n9\nx\n2\nquit\n",
			expOutput: []string{"Invalid selection!"},
			check: func(t *testing.T, s *game.Store, _ *combat.InputQueue) {
				testutil.AssertEqual(t, "mode", s.GameMode(), game.ModeFreeForAll)
			},
		},
		"equip secondary": {
			script:    "equip\n1\n2\nquit\n",
			expOutput: []string{"Equipped M4A1 as secondary."},
			check: func(t *testing.T, s *game.Store, _ *combat.InputQueue) {
				testutil.AssertEqual(t, "secondary", s.Player().Weapons.Secondary.ID, "m4a1")
			},
		},
		"equip rejected": {
			script:    "equip\n2\n1\nquit\n",
			expOutput: []string{"Primary slot occupied"},
		},
		"start match": {
			script:    "start\nstart\nquit\n",
			expOutput: []string{"Match started on urban with 11 bots.", "A match is already running"},
			check: func(t *testing.T, s *game.Store, _ *combat.InputQueue) {
				testutil.AssertEqual(t, "phase", s.GameState(), game.PhasePlaying)
			},
		},
		"pause and streak go through the input queue": {
			script: "pause\nstreak\nquit\n",
			check: func(t *testing.T, _ *game.Store, q *combat.InputQueue) {
				evs := q.Drain()
				testutil.AssertEqual(t, "queued", len(evs), 2)
				testutil.AssertEqual(t, "first", evs[0].Kind, combat.TogglePause)
				testutil.AssertEqual(t, "second", evs[1].Kind, combat.ActivateKillStreak)
			},
		},
		"soft reset": {
			script: "reset\nno\nquit\n",
			setup: func(s *game.Store) {
				_ = s.AddScore(500)
				_ = s.SetCurrentMap(game.MapForest)
			},
			expOutput: []string{"Game reset."},
			check: func(t *testing.T, s *game.Store, _ *combat.InputQueue) {
				testutil.AssertEqual(t, "score", s.Score(), 0)
			},
		},
		"purge reset": {
			script:    "reset\nmaybe\ny\nquit\n",
			expOutput: []string{"enter 'yes' or 'no'", "saved progress wiped"},
		},
		"disconnect without quit": {
			script:    "status",
			expOutput: []string{"Phase: Menu"},
		},
		"watch without feed": {
			script:    "watch\nquit\n",
			expOutput: []string{"Event feed is not available"},
		},
		"corrupted storage warning": {
			script: "quit\n",
			setup: func(s *game.Store) {
				_ = s.SetStorageCorrupted(true)
			},
			expOutput: []string{"Warning: saved progress could not be read"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store := game.NewStore(catalog.Templates{})
			if tt.setup != nil {
				tt.setup(store)
			}
			q := combat.NewInputQueue()
			c := NewConsole(store, q, WithRand(rand.New(rand.NewPCG(1, 2))))

			conn := &scriptedConn{Reader: strings.NewReader(tt.script)}
			if err := c.RunSession(context.Background(), conn); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := conn.out.String()
			for _, exp := range tt.expOutput {
				if !strings.Contains(out, exp) {
					t.Errorf("expected output to contain %q, got:\n%s", exp, out)
				}
			}
			if tt.check != nil {
				tt.check(t, store, q)
			}
		})
	}
}

func TestConsole_Watch(t *testing.T) {
	sub := &fakeSubscriber{send: []messaging.Notification{
		{Kind: "kill_streak_available", Message: "UAV RECON AVAILABLE!"},
		{Kind: "score_changed", Previous: 0, Current: 100},
	}}
	store := game.NewStore(catalog.Templates{})
	c := NewConsole(store, combat.NewInputQueue(), WithEvents(sub, "fps.events.>"))

	conn := &scriptedConn{Reader: strings.NewReader("watch\n\nquit\n")}
	if err := c.RunSession(context.Background(), conn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := conn.out.String()
	for _, exp := range []string{"[kill_streak_available] UAV RECON AVAILABLE!", "[score_changed] 0 -> 100"} {
		if !strings.Contains(out, exp) {
			t.Errorf("expected output to contain %q, got:\n%s", exp, out)
		}
	}
	testutil.AssertEqual(t, "subject", sub.subject, "fps.events.>")
	testutil.AssertEqual(t, "unsubscribed", sub.unsubscribed, true)
}

func TestSelector_Layout(t *testing.T) {
	sel := newSelector[int]()
	for i := 0; i < 7; i++ {
		sel.add("opt", i)
	}
	sel.build()

	testutil.AssertEqual(t, "rows", len(sel.output), defaultSelectorRowCount)
	if !strings.Contains(sel.output[0], " 1. opt") || !strings.Contains(sel.output[0], " 6. opt") {
		t.Errorf("unexpected first row %q", sel.output[0])
	}
}
