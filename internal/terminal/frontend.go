package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-fps/internal/catalog"
	"github.com/pixil98/go-fps/internal/combat"
	"github.com/pixil98/go-fps/internal/display"
	"github.com/pixil98/go-fps/internal/game"
)

const DefaultFrameInterval = time.Second / 30

// Engine is the part of the combat engine the frontend drives.
type Engine interface {
	Input() *combat.InputQueue
	Reloading() combat.ReloadStage
	Projectiles() []combat.Projectile
	ReportHit(ctx context.Context, h combat.Hit) error
}

type FrontendOpt func(*Frontend)

// WithScreen draws to s instead of the process terminal.
func WithScreen(s tcell.Screen) FrontendOpt {
	return func(f *Frontend) {
		f.screen = s
	}
}

func WithFrameInterval(d time.Duration) FrontendOpt {
	return func(f *Frontend) {
		f.frameInterval = d
	}
}

func WithRand(r *rand.Rand) FrontendOpt {
	return func(f *Frontend) {
		f.rng = r
	}
}

// Frontend is a keyboard driven HUD for playing in a terminal. Terminals
// report no key releases, so space latches the trigger until pressed again.
// h and H stand in for the physics layer and report a hit on the first live
// enemy.
type Frontend struct {
	screen        tcell.Screen
	store         *game.Store
	engine        Engine
	rng           *rand.Rand
	frameInterval time.Duration

	trigger bool
}

func NewFrontend(store *game.Store, engine Engine, opts ...FrontendOpt) *Frontend {
	f := &Frontend{
		store:         store,
		engine:        engine,
		frameInterval: DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return f
}

// Start runs the HUD until ctx is cancelled or the player quits.
func (f *Frontend) Start(ctx context.Context) error {
	if f.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		f.screen = s
	}
	if err := f.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer f.screen.Fini()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(f.frameInterval)
	defer ticker.Stop()

	f.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !f.handleKey(ctx, ev.Key(), ev.Rune()) {
					slog.InfoContext(ctx, "terminal closed by player")
					return nil
				}
			case *tcell.EventResize:
				f.screen.Sync()
			}
		case <-ticker.C:
			f.draw()
		}
	}
}

// handleKey applies one key press and reports whether the frontend should
// keep running.
func (f *Frontend) handleKey(ctx context.Context, key tcell.Key, r rune) bool {
	act, ev := translate(key, r)
	switch act {
	case actionQuit:
		return false
	case actionInput:
		f.engine.Input().Push(ev)
	case actionTrigger:
		f.trigger = !f.trigger
		kind := combat.TriggerUp
		if f.trigger {
			kind = combat.TriggerDown
		}
		f.engine.Input().Push(combat.InputEvent{Kind: kind})
	case actionStart:
		if f.store.GameState() != game.PhaseMenu {
			return true
		}
		if err := catalog.StartMatch(f.store, f.rng); err != nil {
			slog.ErrorContext(ctx, "starting match", "error", err)
		}
	case actionHit, actionHeadshot:
		f.reportHit(ctx, act == actionHeadshot)
	}
	return true
}

func (f *Frontend) reportHit(ctx context.Context, headshot bool) {
	w := f.store.ActiveWeapon()
	if w == nil {
		return
	}
	for _, b := range f.store.Bots() {
		if b.Team != game.TeamEnemies || b.Health <= 0 {
			continue
		}
		dmg, _, _ := combat.FinalStats(w)
		if err := f.engine.ReportHit(ctx, combat.Hit{TargetID: b.ID, Damage: dmg, Headshot: headshot}); err != nil {
			slog.WarnContext(ctx, "reporting hit", "target", b.ID, "error", err)
		}
		return
	}
}

func (f *Frontend) state() hudState {
	return hudState{
		phase:       f.store.GameState(),
		mapType:     f.store.CurrentMap(),
		mode:        f.store.GameMode(),
		score:       f.store.Score(),
		player:      f.store.Player(),
		bots:        f.store.Bots(),
		projectiles: len(f.engine.Projectiles()),
		reload:      f.engine.Reloading(),
		trigger:     f.trigger,
		corrupted:   f.store.StorageCorrupted(),
	}
}

var (
	styleHeader = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

func (f *Frontend) draw() {
	width, _ := f.screen.Size()

	f.screen.Clear()
	for y, line := range hudLines(f.state()) {
		line = display.Fit(line, width)
		style := styleText
		if y == 0 {
			style = styleHeader
		}
		x := 0
		for _, r := range line {
			f.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	f.screen.Show()
}
