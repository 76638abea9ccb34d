package combat

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/game"
	"go.opentelemetry.io/otel/metric"
)

// DefaultFireInterval applies to weapons without a fire rate.
const DefaultFireInterval = 500 * time.Millisecond

// Base values used when a weapon leaves a stat unset.
const (
	DefaultDamage = 10.0
	DefaultRange  = 50.0
	DefaultRecoil = 0.2
)

// spreadFactor scales recoil into per-axis direction jitter.
const spreadFactor = 0.05

// XP awards for a reported hit.
const (
	HitXP          = 20
	HeadshotXP     = 50
	KillXP         = 100
	HeadshotKillXP = 150
	// LethalDamage is the raw damage at which a body hit counts as a kill.
	LethalDamage = 100.0
)

// Camera supplies the muzzle origin and aim for new projectiles.
type Camera interface {
	Position() game.Vec3
	Direction() game.Vec3
}

// Hit is a collision reported by the physics collaborator.
type Hit struct {
	TargetID string
	Damage   float64
	Headshot bool
}

// Lethal reports whether the hit counts as a kill.
func (h Hit) Lethal() bool {
	return h.Headshot || h.Damage >= LethalDamage
}

type EngineOpt func(*Engine)

// WithRand sets the source used for shot spread.
func WithRand(r *rand.Rand) EngineOpt {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithMeter overrides the global OpenTelemetry meter.
func WithMeter(m metric.Meter) EngineOpt {
	return func(e *Engine) {
		e.meter = m
	}
}

// WithInput shares an input queue with a front end.
func WithInput(q *InputQueue) EngineOpt {
	return func(e *Engine) {
		e.input = q
	}
}

// Engine turns input edges and elapsed time into store mutations. All of its
// work happens inside Tick and ReportHit, which must be called from the
// simulation goroutine.
type Engine struct {
	store  *game.Store
	sound  game.SoundPlayer
	camera Camera
	input  *InputQueue
	rng    *rand.Rand
	meter  metric.Meter
	stats  *metrics

	mu sync.Mutex

	now      time.Duration
	lastFire time.Duration
	hasFired bool
	trigger  bool

	reload      ReloadStage
	reloadTimer time.Duration

	projectiles  []*Projectile
	streakTimers map[string]time.Duration
}

// NewEngine builds an engine around store. A nil sound player discards
// sounds; a nil camera disables projectile spawning.
func NewEngine(store *game.Store, sound game.SoundPlayer, camera Camera, opts ...EngineOpt) (*Engine, error) {
	if sound == nil {
		sound = game.NopSoundPlayer{}
	}
	e := &Engine{
		store:        store,
		sound:        sound,
		camera:       camera,
		streakTimers: map[string]time.Duration{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.input == nil {
		e.input = NewInputQueue()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if e.meter == nil {
		e.meter = meter()
	}

	stats, err := newMetrics(e.meter)
	if err != nil {
		return nil, err
	}
	e.stats = stats

	return e, nil
}

// Input returns the queue the engine drains every tick.
func (e *Engine) Input() *InputQueue {
	return e.input
}

// Tick runs one simulation step: queued input, then the reload machine, fire
// gating, projectiles and kill-streak timers. Nothing but input handling
// happens unless the game is being played.
func (e *Engine) Tick(ctx context.Context, delta time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ev := range e.input.Drain() {
		e.handle(ctx, ev)
	}

	if e.store.GameState() != game.PhasePlaying {
		return nil
	}

	e.now += delta
	e.processReload(ctx, delta)
	e.processFire(ctx)
	e.advanceProjectiles()
	e.advanceStreaks(ctx, delta)

	return nil
}

func (e *Engine) handle(ctx context.Context, ev InputEvent) {
	if ev.Kind == TogglePause {
		e.togglePause(ctx)
		return
	}
	if ev.Kind == TriggerUp {
		e.trigger = false
		return
	}
	if e.store.GameState() != game.PhasePlaying {
		return
	}

	switch ev.Kind {
	case TriggerDown:
		e.pressTrigger(ctx)
	case Reload:
		e.startReload(ctx)
	case SwitchWeapon:
		e.switchWeapon(ctx, ev.Slot)
	case ThrowGrenade:
		e.throwGrenade(ctx)
	case ActivateKillStreak:
		e.activateAffordableStreak(ctx)
	}
}

func (e *Engine) togglePause(ctx context.Context) {
	var next game.Phase
	switch e.store.GameState() {
	case game.PhasePlaying:
		next = game.PhasePaused
		e.trigger = false
	case game.PhasePaused:
		next = game.PhasePlaying
	default:
		return
	}
	if err := e.store.SetGameState(next); err != nil {
		slog.WarnContext(ctx, "toggling pause", "error", err)
	}
}

// pressTrigger arms automatic fire. Pressing with a primary or secondary
// weapon also earns one point of weapon XP.
func (e *Engine) pressTrigger(ctx context.Context) {
	if e.reload != ReloadIdle {
		return
	}
	e.trigger = true

	slot := e.store.Player().ActiveWeaponSlot
	if slot == game.SlotMelee || slot == game.SlotLethal {
		return
	}
	if err := e.store.AddWeaponXP(slot, 1); err != nil {
		slog.DebugContext(ctx, "awarding trigger xp", "slot", slot, "error", err)
	}
}

func (e *Engine) switchWeapon(ctx context.Context, slot game.Slot) {
	if err := e.store.SwitchWeapon(slot); err != nil {
		slog.DebugContext(ctx, "switching weapon", "slot", slot, "error", err)
		return
	}
	e.cancelReload()
	if w := e.store.ActiveWeapon(); w != nil {
		e.sound.PlaySound(game.CategoryWeapon, game.WeaponSound(w.Type, game.WeaponSoundSwitch), game.SoundOptions{})
	}
}

func (e *Engine) throwGrenade(ctx context.Context) {
	g := e.store.Player().Weapons.Lethal
	if err := e.store.ThrowGrenade(); err != nil {
		slog.DebugContext(ctx, "throwing grenade", "error", err)
		return
	}
	e.sound.PlaySound(game.CategoryWeapon, game.WeaponSound(game.WeaponGrenade, game.WeaponSoundFire), game.SoundOptions{})
	e.spawn(ctx, g, false)
}

// activateAffordableStreak activates the first streak the counter can pay
// for that is not already running.
func (e *Engine) activateAffordableStreak(ctx context.Context) {
	p := e.store.Player()
	for _, ks := range p.AvailableKillStreaks {
		if ks.Cost > p.KillStreak || p.StreakActive(ks.ID) {
			continue
		}
		if err := e.store.ActivateKillStreak(ks.ID); err != nil {
			slog.WarnContext(ctx, "activating kill streak", "id", ks.ID, "error", err)
			return
		}
		e.streakTimers[ks.ID] = time.Duration(ks.Duration) * time.Second
		return
	}
}

// FireInterval is the minimum time between two shots of w.
func FireInterval(w *game.Weapon) time.Duration {
	if w == nil || w.FireRate <= 0 {
		return DefaultFireInterval
	}
	return time.Duration(float64(time.Minute) / w.FireRate)
}

func (e *Engine) processFire(ctx context.Context) {
	if !e.trigger || e.reload != ReloadIdle {
		return
	}
	w := e.store.ActiveWeapon()
	if w == nil {
		return
	}
	if e.hasFired && e.now-e.lastFire < FireInterval(w) {
		return
	}
	e.hasFired = true
	e.lastFire = e.now

	if w.CurrentAmmo <= 0 {
		e.sound.PlaySound(game.CategoryWeapon, game.WeaponSound(w.Type, game.WeaponSoundEmpty), game.SoundOptions{})
		if w.ReserveAmmo > 0 && e.store.Settings().Controls.AutoReload {
			e.startReload(ctx)
		}
		return
	}

	if err := e.store.FireWeapon(); err != nil {
		slog.WarnContext(ctx, "firing weapon", "weapon", w.ID, "error", err)
		return
	}
	e.stats.shots.Add(ctx, 1, weaponAttr(string(w.Type)))
	e.sound.PlaySound(game.CategoryWeapon, game.WeaponSound(w.Type, game.WeaponSoundFire), game.SoundOptions{})
	e.spawn(ctx, w, true)
}

// FinalStats returns the attachment-modified damage, range and recoil of w,
// substituting defaults for unset base values.
func FinalStats(w *game.Weapon) (damage, rng, recoil float64) {
	base := func(v, def float64) float64 {
		if v == 0 {
			return def
		}
		return v
	}
	damage = w.Modified(game.StatDamage, base(w.Damage, DefaultDamage))
	rng = w.Modified(game.StatRange, base(w.Range, DefaultRange))
	recoil = w.Modified(game.StatRecoil, base(w.Recoil, DefaultRecoil))
	return damage, rng, recoil
}

// spawn launches a projectile for w from the camera. Bullets get recoil spread.
func (e *Engine) spawn(ctx context.Context, w *game.Weapon, spread bool) {
	if e.camera == nil {
		slog.DebugContext(ctx, "no camera, projectile not spawned")
		return
	}
	if w == nil {
		return
	}

	damage, rng, recoil := FinalStats(w)
	dir := e.camera.Direction()
	if spread {
		s := recoil * spreadFactor
		for i := range dir {
			dir[i] += (e.rng.Float64() - 0.5) * s
		}
	}

	e.projectiles = append(e.projectiles, &Projectile{
		ID:        uuid.NewString(),
		Position:  e.camera.Position(),
		Direction: dir.Normalize(),
		Type:      w.Type,
		Damage:    damage,
		Range:     rng,
		Active:    true,
	})
	e.stats.live.Store(int64(len(e.projectiles)))
}

func (e *Engine) advanceProjectiles() {
	kept := e.projectiles[:0]
	for _, p := range e.projectiles {
		if p.Detonated {
			continue
		}
		p.advance()
		if p.Active {
			kept = append(kept, p)
			continue
		}
		if p.Type == game.WeaponGrenade {
			p.Detonated = true
			pos := p.Position
			e.sound.PlaySound(game.CategoryWeapon, "grenade_explosion", game.SoundOptions{Position: &pos})
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(e.projectiles); i++ {
		e.projectiles[i] = nil
	}
	e.projectiles = kept
	e.stats.live.Store(int64(len(e.projectiles)))
}

// Projectiles returns copies of the projectiles in flight, including grenades
// detonated on the last tick.
func (e *Engine) Projectiles() []Projectile {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Projectile, len(e.projectiles))
	for i, p := range e.projectiles {
		out[i] = *p
	}
	return out
}

func (e *Engine) advanceStreaks(ctx context.Context, delta time.Duration) {
	active := e.store.Player().ActiveKillStreaks

	seen := make(map[string]bool, len(active))
	for _, ks := range active {
		seen[ks.ID] = true
		left, ok := e.streakTimers[ks.ID]
		if !ok {
			left = time.Duration(ks.Duration) * time.Second
		}
		left -= delta
		if left > 0 {
			e.streakTimers[ks.ID] = left
			continue
		}
		delete(e.streakTimers, ks.ID)
		if err := e.store.DeactivateKillStreak(ks.ID); err != nil {
			slog.WarnContext(ctx, "expiring kill streak", "id", ks.ID, "error", err)
		}
	}
	for id := range e.streakTimers {
		if !seen[id] {
			delete(e.streakTimers, id)
		}
	}
}

// ReportHit awards XP for a hit on a bot and applies the damage to it. Lethal
// hits add the kill bonus, the kill-streak point and score.
func (e *Engine) ReportHit(ctx context.Context, h Hit) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	el := errors.NewErrorList()
	slot := e.store.Player().ActiveWeaponSlot
	lethal := h.Lethal()

	hitSound := "hit_1"
	xp := HitXP
	if h.Headshot {
		hitSound = "hit_2"
		xp = HeadshotXP
	}
	e.sound.PlaySound(game.CategoryPlayer, hitSound, game.SoundOptions{})
	e.stats.hits.Add(ctx, 1)

	el.Add(e.store.AddWeaponXP(slot, xp))
	el.Add(e.store.AddPlayerXP(xp))
	el.Add(e.damageBot(h, lethal))

	if lethal {
		kill := KillXP
		if h.Headshot {
			kill = HeadshotKillXP
		}
		e.sound.PlaySound(game.CategoryUI, "kill_confirmed", game.SoundOptions{})
		e.stats.kills.Add(ctx, 1)

		el.Add(e.store.AddWeaponXP(slot, kill))
		el.Add(e.store.AddPlayerXP(kill))
		el.Add(e.store.IncrementKillStreak())
		el.Add(e.store.AddScore(kill))
	}

	if err := el.Err(); err != nil {
		return fmt.Errorf("resolving hit on %q: %w", h.TargetID, err)
	}
	return nil
}

func (e *Engine) damageBot(h Hit, lethal bool) error {
	if h.TargetID == "" {
		return nil
	}
	b, ok := e.store.Bot(h.TargetID)
	if !ok {
		return nil
	}

	health := max(b.Health-h.Damage, 0)
	if lethal {
		health = 0
	}
	u := game.BotUpdate{Health: &health}
	if health == 0 {
		dead := game.BotDead
		u.State = &dead
	}
	return e.store.UpdateBot(h.TargetID, u)
}
