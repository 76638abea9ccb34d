package combat

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/go-fps/internal/game"
)

// ReloadStage is a state of the reload machine.
type ReloadStage int

const (
	ReloadIdle ReloadStage = iota
	ReloadStart
	ReloadMid
	ReloadEnd
)

func (s ReloadStage) String() string {
	switch s {
	case ReloadStart:
		return "start"
	case ReloadMid:
		return "mid"
	case ReloadEnd:
		return "end"
	}
	return "idle"
}

// How long each stage holds before advancing.
const (
	StartDwell = 300 * time.Millisecond
	MidDwell   = 500 * time.Millisecond
	EndDwell   = 200 * time.Millisecond
)

// Reloading returns the current reload stage.
func (e *Engine) Reloading() ReloadStage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reload
}

// canReload reports whether w may start a reload.
func canReload(w *game.Weapon) bool {
	return w != nil &&
		w.Type.Reloadable() &&
		w.CurrentAmmo < w.MaxAmmo &&
		w.ReserveAmmo > 0
}

func (e *Engine) startReload(ctx context.Context) {
	if e.reload != ReloadIdle {
		return
	}
	w := e.store.ActiveWeapon()
	if !canReload(w) {
		return
	}

	e.reload = ReloadStart
	e.reloadTimer = StartDwell
	e.sound.PlaySound(game.CategoryWeapon, game.WeaponSound(w.Type, game.WeaponSoundReloadStart), game.SoundOptions{})
	slog.DebugContext(ctx, "reload started", "weapon", w.ID)
}

func (e *Engine) cancelReload() {
	e.reload = ReloadIdle
	e.reloadTimer = 0
}

// processReload counts down the current stage. A stage that runs out moves
// to the next one with a fresh dwell; leftover time is not carried over.
func (e *Engine) processReload(ctx context.Context, delta time.Duration) {
	if e.reload == ReloadIdle {
		return
	}

	e.reloadTimer -= delta
	if e.reloadTimer > 0 {
		return
	}

	w := e.store.ActiveWeapon()
	if w == nil {
		e.cancelReload()
		return
	}

	switch e.reload {
	case ReloadStart:
		e.reload = ReloadMid
		e.reloadTimer = MidDwell
		e.sound.PlaySound(game.CategoryWeapon, game.WeaponSound(w.Type, game.WeaponSoundReloadMid), game.SoundOptions{})
	case ReloadMid:
		e.reload = ReloadEnd
		e.reloadTimer = EndDwell
		e.sound.PlaySound(game.CategoryWeapon, game.WeaponSound(w.Type, game.WeaponSoundReloadEnd), game.SoundOptions{})
	case ReloadEnd:
		e.cancelReload()
		if err := e.store.ReloadWeapon(); err != nil {
			slog.WarnContext(ctx, "completing reload", "weapon", w.ID, "error", err)
			return
		}
		e.stats.reloads.Add(ctx, 1, weaponAttr(string(w.Type)))
	}
}
