package game

import (
	"fmt"
	"sync"
)

// Templates produces fresh, independently owned copies of the default state.
type Templates interface {
	NewPlayer() *Player
	NewArsenal() []*Weapon
	NewSettings() Settings
}

// SaveState is the persisted subset of the store.
type SaveState struct {
	Player   *Player
	Arsenal  []*Weapon
	Settings Settings
	Map      MapType
	Mode     GameMode
	Score    int
}

// Store is the single source of truth for a session. Every mutation replaces
// the subtree it touches, so values handed out by readers are never modified
// afterwards. Mutations return nil when applied and a sentinel error naming
// the rejection reason otherwise.
type Store struct {
	mu        sync.RWMutex
	templates Templates
	bus       *eventBus

	phase      Phase
	currentMap MapType
	mode       GameMode
	player     *Player
	bots       []Bot
	arsenal    []*Weapon
	score      int
	settings   Settings
	corrupted  bool
}

func NewStore(t Templates) *Store {
	return &Store{
		templates:  t,
		bus:        newEventBus(),
		phase:      PhaseMenu,
		currentMap: MapUrban,
		mode:       ModeTeamDeathmatch,
		player:     t.NewPlayer(),
		arsenal:    t.NewArsenal(),
		settings:   t.NewSettings(),
	}
}

// Subscribe registers h for events of kind and returns a func that removes it.
func (s *Store) Subscribe(kind EventKind, h EventHandler) func() {
	return s.bus.subscribe(kind, h)
}

// SubscribeAll registers h for every event.
func (s *Store) SubscribeAll(h EventHandler) func() {
	return s.bus.subscribeAll(h)
}

type change struct {
	events []Event
}

func (c *change) emit(e Event) {
	c.events = append(c.events, e)
}

// update runs fn under the write lock and dispatches the collected events
// once the lock is released.
func (s *Store) update(fn func(c *change) error) error {
	c := &change{}

	s.mu.Lock()
	err := fn(c)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	c.emit(Event{Kind: EventStateChanged})
	s.bus.emit(c.events)
	return nil
}

/* Readers */

func (s *Store) GameState() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Store) CurrentMap() MapType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentMap
}

func (s *Store) GameMode() GameMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Player returns a copy of the player.
func (s *Store) Player() *Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Clone()
}

// ActiveWeapon returns a copy of the weapon in the active slot, or nil.
func (s *Store) ActiveWeapon() *Weapon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.ActiveWeapon().Clone()
}

func (s *Store) Bots() []Bot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Bot, len(s.bots))
	for i, b := range s.bots {
		out[i] = b.Clone()
	}
	return out
}

func (s *Store) Bot(id string) (Bot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.botIndex(id)
	if i < 0 {
		return Bot{}, false
	}
	return s.bots[i].Clone(), true
}

// Arsenal returns a copy of the weapon catalog.
func (s *Store) Arsenal() []*Weapon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneArsenal(s.arsenal)
}

func (s *Store) Score() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score
}

func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) StorageCorrupted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corrupted
}

// SaveState returns a copy of the persisted subset.
func (s *Store) SaveState() SaveState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SaveState{
		Player:   s.player.Clone(),
		Arsenal:  cloneArsenal(s.arsenal),
		Settings: s.settings,
		Map:      s.currentMap,
		Mode:     s.mode,
		Score:    s.score,
	}
}

// Restore replaces the persisted subset, typically once at startup. Missing
// parts fall back to the templates.
func (s *Store) Restore(st SaveState, corrupted bool) {
	s.mu.Lock()
	if st.Player != nil {
		s.player = st.Player.Clone()
	} else {
		s.player = s.templates.NewPlayer()
	}
	if len(st.Arsenal) > 0 {
		s.arsenal = cloneArsenal(st.Arsenal)
	}
	if st.Settings.Validate() == nil {
		s.settings = st.Settings
	}
	if st.Map.Valid() {
		s.currentMap = st.Map
	}
	if st.Mode.Valid() {
		s.mode = st.Mode
	}
	s.score = st.Score
	s.corrupted = corrupted
	s.mu.Unlock()

	if corrupted {
		s.bus.emit([]Event{{Kind: EventStorageCorrupted}})
	}
}

/* Session */

func (s *Store) SetGameState(p Phase) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPhase, p)
	}
	return s.update(func(c *change) error {
		if s.phase != p {
			c.emit(Event{Kind: EventGameStateChanged, ID: string(p), Name: string(s.phase)})
		}
		s.phase = p
		return nil
	})
}

func (s *Store) SetCurrentMap(m MapType) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMap, m)
	}
	return s.update(func(c *change) error {
		s.currentMap = m
		c.emit(Event{Kind: EventMapChanged, ID: string(m)})
		return nil
	})
}

func (s *Store) SetGameMode(m GameMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, m)
	}
	return s.update(func(c *change) error {
		s.mode = m
		c.emit(Event{Kind: EventModeChanged, ID: string(m)})
		return nil
	})
}

func (s *Store) AddScore(points int) error {
	return s.update(func(c *change) error {
		prev := s.score
		s.score += points
		c.emit(Event{Kind: EventScoreChanged, Previous: prev, Current: s.score})
		return nil
	})
}

func (s *Store) SetStorageCorrupted(v bool) error {
	return s.update(func(c *change) error {
		s.corrupted = v
		if v {
			c.emit(Event{Kind: EventStorageCorrupted})
		}
		return nil
	})
}

func (s *Store) UpdateSettings(u SettingsUpdate) error {
	return s.update(func(c *change) error {
		next := s.settings
		u.apply(&next)
		if err := next.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
		}
		s.settings = next
		c.emit(Event{Kind: EventSettingsChanged})
		return nil
	})
}

// ResetGame returns to the menu with a fresh player, no bots and zero score.
// When clearPersisted is set the catalog and settings are reset as well and
// subscribers are told to purge durable storage.
func (s *Store) ResetGame(clearPersisted bool) error {
	return s.update(func(c *change) error {
		if clearPersisted {
			s.arsenal = s.templates.NewArsenal()
			s.settings = s.templates.NewSettings()
		}

		p := s.templates.NewPlayer()
		syncUnlocks(p, s.arsenal)

		if s.phase != PhaseMenu {
			c.emit(Event{Kind: EventGameStateChanged, ID: string(PhaseMenu), Name: string(s.phase)})
		}
		if s.score != 0 {
			c.emit(Event{Kind: EventScoreChanged, Previous: s.score})
		}

		s.phase = PhaseMenu
		s.player = p
		s.bots = nil
		s.score = 0
		s.corrupted = false

		c.emit(Event{Kind: EventGameReset, Purge: clearPersisted})
		return nil
	})
}

/* Player */

func (s *Store) UpdatePlayer(u PlayerUpdate) error {
	return s.update(func(c *change) error {
		p := s.player.Clone()
		u.apply(p)
		s.player = p
		return nil
	})
}

func (s *Store) EquipWeapon(weaponID string, slot Slot) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return s.update(func(c *change) error {
		w := s.arsenalWeapon(weaponID)
		if w == nil {
			return fmt.Errorf("%w: %q", ErrWeaponNotFound, weaponID)
		}
		if slot == SlotPrimary && s.player.Weapons.Primary != nil && !s.player.HasDualPrimaryPowerup {
			return ErrPrimaryOccupied
		}

		p := s.player.Clone()
		p.Weapons.Set(slot, w.Clone())
		s.player = p

		c.emit(Event{Kind: EventWeaponEquipped, Slot: slot, ID: w.ID, Name: w.Name})
		return nil
	})
}

func (s *Store) SwitchWeapon(slot Slot) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return s.update(func(c *change) error {
		w := s.player.Weapons.Get(slot)
		if w == nil {
			return fmt.Errorf("%w: %s", ErrSlotEmpty, slot)
		}

		p := s.player.Clone()
		p.ActiveWeaponSlot = slot
		s.player = p

		c.emit(Event{Kind: EventWeaponSwitched, Slot: slot, ID: w.ID, Name: w.Name})
		return nil
	})
}

// FireWeapon consumes one round from the active weapon. Rate limiting is the
// caller's concern.
func (s *Store) FireWeapon() error {
	return s.update(func(c *change) error {
		slot := s.player.ActiveWeaponSlot
		w := s.player.Weapons.Get(slot)
		if w == nil {
			return fmt.Errorf("%w: %s", ErrSlotEmpty, slot)
		}
		if w.CurrentAmmo <= 0 {
			return ErrNoAmmo
		}
		if w.Unlimited() {
			return nil
		}

		p := s.player.Clone()
		p.Weapons.Get(slot).CurrentAmmo--
		s.player = p
		return nil
	})
}

// ReloadWeapon moves min(maxAmmo - currentAmmo, reserveAmmo) rounds from the
// reserve into the active weapon's magazine.
func (s *Store) ReloadWeapon() error {
	return s.update(func(c *change) error {
		slot := s.player.ActiveWeaponSlot
		w := s.player.Weapons.Get(slot)
		if w == nil {
			return fmt.Errorf("%w: %s", ErrSlotEmpty, slot)
		}
		if w.CurrentAmmo >= w.MaxAmmo {
			return ErrMagazineFull
		}
		if w.ReserveAmmo <= 0 {
			return ErrNoReserve
		}

		p := s.player.Clone()
		nw := p.Weapons.Get(slot)
		n := min(nw.MaxAmmo-nw.CurrentAmmo, nw.ReserveAmmo)
		nw.CurrentAmmo += n
		nw.ReserveAmmo -= n
		s.player = p
		return nil
	})
}

func (s *Store) ThrowGrenade() error {
	return s.update(func(c *change) error {
		w := s.player.Weapons.Lethal
		if w == nil {
			return fmt.Errorf("%w: %s", ErrSlotEmpty, SlotLethal)
		}
		if w.CurrentAmmo <= 0 {
			return ErrNoAmmo
		}

		p := s.player.Clone()
		p.Weapons.Lethal.CurrentAmmo--
		s.player = p
		return nil
	})
}

func (s *Store) AddWeaponXP(slot Slot, amount int) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	if amount < 0 {
		return ErrNegativeXP
	}
	return s.update(func(c *change) error {
		if s.player.Weapons.Get(slot) == nil {
			return fmt.Errorf("%w: %s", ErrSlotEmpty, slot)
		}

		p := s.player.Clone()
		w := p.Weapons.Get(slot)
		prog := LevelWeapon(w, amount)
		s.player = p

		if prog.To != prog.From {
			c.emit(Event{Kind: EventWeaponLevelUp, Slot: slot, ID: w.ID, Name: w.Name, Previous: prog.From, Current: prog.To})
		}
		for _, id := range prog.Unlocked {
			s.unlockInArsenal(w.ID, id)
			c.emit(Event{Kind: EventAttachmentUnlocked, Slot: slot, ID: id, Name: w.Name})
		}
		return nil
	})
}

func (s *Store) AddPlayerXP(amount int) error {
	if amount < 0 {
		return ErrNegativeXP
	}
	return s.update(func(c *change) error {
		p := s.player.Clone()
		prevPrestige := p.Prestige
		prog := LevelAccount(p, amount)
		s.player = p

		if prog.To != prog.From || prog.Prestiged > 0 {
			c.emit(Event{Kind: EventPlayerLevelUp, Previous: prog.From, Current: prog.To})
		}
		if prog.Prestiged > 0 {
			c.emit(Event{Kind: EventPrestige, Previous: prevPrestige, Current: p.Prestige})
		}
		return nil
	})
}

/* Attachments */

// UnlockAttachment unlocks an attachment on a catalog weapon and on every
// equipped copy of it.
func (s *Store) UnlockAttachment(weaponID, attachmentID string) error {
	return s.update(func(c *change) error {
		w := s.arsenalWeapon(weaponID)
		if w == nil {
			return fmt.Errorf("%w: %q", ErrWeaponNotFound, weaponID)
		}
		a, ok := w.AvailableAttachment(attachmentID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrAttachmentNotFound, attachmentID)
		}
		if a.Unlocked {
			return nil
		}

		s.unlockInArsenal(weaponID, attachmentID)

		p := s.player.Clone()
		for _, slot := range Slots {
			if pw := p.Weapons.Get(slot); pw != nil && pw.ID == weaponID {
				pw.unlockAttachment(attachmentID)
			}
		}
		s.player = p

		c.emit(Event{Kind: EventAttachmentUnlocked, ID: attachmentID, Name: w.Name})
		return nil
	})
}

// EquipAttachment mounts an unlocked attachment on the weapon in slot. The
// mount point is taken from the attachment.
func (s *Store) EquipAttachment(slot Slot, attachmentID string) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return s.update(func(c *change) error {
		w := s.player.Weapons.Get(slot)
		if w == nil {
			return fmt.Errorf("%w: %s", ErrSlotEmpty, slot)
		}
		a, ok := w.AvailableAttachment(attachmentID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrAttachmentNotFound, attachmentID)
		}
		if !a.Unlocked {
			return fmt.Errorf("%w: %q", ErrAttachmentLocked, attachmentID)
		}
		if !w.Type.Accepts(a.Mount) {
			return fmt.Errorf("%w: %s on %s", ErrInvalidMount, a.Mount, w.Type)
		}

		p := s.player.Clone()
		mounted := a.Clone()
		p.Weapons.Get(slot).Attachments.Set(a.Mount, &mounted)
		s.player = p
		return nil
	})
}

func (s *Store) RemoveAttachment(slot Slot, m Mount) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMount, m)
	}
	return s.update(func(c *change) error {
		if s.player.Weapons.Get(slot) == nil {
			return fmt.Errorf("%w: %s", ErrSlotEmpty, slot)
		}

		p := s.player.Clone()
		p.Weapons.Get(slot).Attachments.Set(m, nil)
		s.player = p
		return nil
	})
}

/* Kill streaks */

func (s *Store) IncrementKillStreak() error {
	return s.update(func(c *change) error {
		p := s.player.Clone()
		p.KillStreak++
		s.player = p

		c.emit(Event{Kind: EventKillStreakChanged, Previous: p.KillStreak - 1, Current: p.KillStreak})
		for _, ks := range p.AvailableKillStreaks {
			if ks.Cost == p.KillStreak {
				c.emit(Event{Kind: EventKillStreakAvailable, ID: ks.ID, Name: ks.Name, Current: ks.Cost})
			}
		}
		return nil
	})
}

func (s *Store) ResetKillStreak() error {
	return s.update(func(c *change) error {
		prev := s.player.KillStreak
		p := s.player.Clone()
		p.KillStreak = 0
		s.player = p

		c.emit(Event{Kind: EventKillStreakChanged, Previous: prev})
		return nil
	})
}

// ActivateKillStreak spends the streak's cost and appends an active instance.
func (s *Store) ActivateKillStreak(id string) error {
	return s.update(func(c *change) error {
		ks, ok := s.player.availableStreak(id)
		if !ok {
			return fmt.Errorf("%w: %q", ErrKillStreakNotFound, id)
		}
		if s.player.StreakActive(id) {
			return fmt.Errorf("%w: %q", ErrKillStreakActive, id)
		}
		if s.player.KillStreak < ks.Cost {
			return fmt.Errorf("%w: have %d, need %d", ErrInsufficientStreak, s.player.KillStreak, ks.Cost)
		}

		p := s.player.Clone()
		prev := p.KillStreak
		p.KillStreak -= ks.Cost
		ks.Active = true
		p.ActiveKillStreaks = append(p.ActiveKillStreaks, ks)
		s.player = p

		c.emit(Event{Kind: EventKillStreakChanged, Previous: prev, Current: p.KillStreak})
		c.emit(Event{Kind: EventKillStreakActivated, ID: ks.ID, Name: ks.Name, Current: ks.Duration})
		return nil
	})
}

func (s *Store) DeactivateKillStreak(id string) error {
	return s.update(func(c *change) error {
		if !s.player.StreakActive(id) {
			return fmt.Errorf("%w: %q", ErrKillStreakInactive, id)
		}

		p := s.player.Clone()
		kept := p.ActiveKillStreaks[:0]
		var name string
		for _, ks := range p.ActiveKillStreaks {
			if ks.ID == id {
				name = ks.Name
				continue
			}
			kept = append(kept, ks)
		}
		p.ActiveKillStreaks = kept
		s.player = p

		c.emit(Event{Kind: EventKillStreakDeactivated, ID: id, Name: name})
		return nil
	})
}

/* Bots */

func (s *Store) AddBot(b Bot) error {
	return s.update(func(c *change) error {
		if s.botIndex(b.ID) >= 0 {
			return fmt.Errorf("%w: %q", ErrBotExists, b.ID)
		}
		bots := make([]Bot, len(s.bots), len(s.bots)+1)
		copy(bots, s.bots)
		s.bots = append(bots, b.Clone())
		return nil
	})
}

func (s *Store) RemoveBot(id string) error {
	return s.update(func(c *change) error {
		i := s.botIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrBotNotFound, id)
		}
		bots := make([]Bot, 0, len(s.bots)-1)
		bots = append(bots, s.bots[:i]...)
		s.bots = append(bots, s.bots[i+1:]...)
		return nil
	})
}

func (s *Store) UpdateBot(id string, u BotUpdate) error {
	return s.update(func(c *change) error {
		i := s.botIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrBotNotFound, id)
		}
		bots := make([]Bot, len(s.bots))
		copy(bots, s.bots)
		b := bots[i].Clone()
		u.apply(&b)
		bots[i] = b
		s.bots = bots
		return nil
	})
}

/* helpers, called with the lock held */

func (s *Store) botIndex(id string) int {
	for i, b := range s.bots {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) arsenalWeapon(id string) *Weapon {
	for _, w := range s.arsenal {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// unlockInArsenal swaps in a catalog entry with the attachment unlocked.
func (s *Store) unlockInArsenal(weaponID, attachmentID string) {
	arsenal := make([]*Weapon, len(s.arsenal))
	copy(arsenal, s.arsenal)
	for i, w := range arsenal {
		if w.ID == weaponID {
			nw := w.Clone()
			nw.unlockAttachment(attachmentID)
			arsenal[i] = nw
		}
	}
	s.arsenal = arsenal
}

// syncUnlocks carries catalog unlocks onto the player's weapons.
func syncUnlocks(p *Player, arsenal []*Weapon) {
	for _, slot := range Slots {
		w := p.Weapons.Get(slot)
		if w == nil {
			continue
		}
		for _, cw := range arsenal {
			if cw.ID != w.ID {
				continue
			}
			for _, a := range cw.AvailableAttachments {
				if a.Unlocked {
					w.unlockAttachment(a.ID)
				}
			}
		}
	}
}

func cloneArsenal(in []*Weapon) []*Weapon {
	out := make([]*Weapon, len(in))
	for i, w := range in {
		out[i] = w.Clone()
	}
	return out
}
