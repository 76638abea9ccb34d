package game

import "sync"

// EventKind is one of the transitions the store announces.
type EventKind int

const (
	// EventStateChanged follows every applied mutation.
	EventStateChanged EventKind = iota
	EventGameStateChanged
	EventMapChanged
	EventModeChanged
	EventPlayerLevelUp
	EventPrestige
	EventWeaponLevelUp
	EventWeaponEquipped
	EventWeaponSwitched
	EventAttachmentUnlocked
	EventKillStreakChanged
	EventKillStreakAvailable
	EventKillStreakActivated
	EventKillStreakDeactivated
	EventScoreChanged
	EventSettingsChanged
	EventStorageCorrupted
	EventGameReset
)

var eventNames = map[EventKind]string{
	EventStateChanged:          "state_changed",
	EventGameStateChanged:      "game_state_changed",
	EventMapChanged:            "map_changed",
	EventModeChanged:           "mode_changed",
	EventPlayerLevelUp:         "player_level_up",
	EventPrestige:              "prestige",
	EventWeaponLevelUp:         "weapon_level_up",
	EventWeaponEquipped:        "weapon_equipped",
	EventWeaponSwitched:        "weapon_switched",
	EventAttachmentUnlocked:    "attachment_unlocked",
	EventKillStreakChanged:     "kill_streak_changed",
	EventKillStreakAvailable:   "kill_streak_available",
	EventKillStreakActivated:   "kill_streak_activated",
	EventKillStreakDeactivated: "kill_streak_deactivated",
	EventScoreChanged:          "score_changed",
	EventSettingsChanged:       "settings_changed",
	EventStorageCorrupted:      "storage_corrupted",
	EventGameReset:             "game_reset",
}

func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseEventKind returns the kind whose String form is name.
func ParseEventKind(name string) (EventKind, bool) {
	for k, n := range eventNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Event describes a single transition. Previous and Current hold the old and
// new value where one applies (level, streak count, score).
type Event struct {
	Kind     EventKind
	Slot     Slot
	ID       string
	Name     string
	Previous int
	Current  int
	// Purge is set on EventGameReset when persisted state should be wiped.
	Purge bool
}

// EventHandler receives events synchronously on the mutating goroutine.
type EventHandler func(Event)

type eventBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventKind]map[int]EventHandler
	all      map[int]EventHandler
}

func newEventBus() *eventBus {
	return &eventBus{
		handlers: map[EventKind]map[int]EventHandler{},
		all:      map[int]EventHandler{},
	}
}

func (b *eventBus) subscribe(kind EventKind, h EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.handlers[kind] == nil {
		b.handlers[kind] = map[int]EventHandler{}
	}
	b.handlers[kind][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[kind], id)
	}
}

func (b *eventBus) subscribeAll(h EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.all[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.all, id)
	}
}

func (b *eventBus) emit(events []Event) {
	for _, ev := range events {
		b.mu.RLock()
		hs := make([]EventHandler, 0, len(b.handlers[ev.Kind])+len(b.all))
		for _, h := range b.handlers[ev.Kind] {
			hs = append(hs, h)
		}
		for _, h := range b.all {
			hs = append(hs, h)
		}
		b.mu.RUnlock()

		for _, h := range hs {
			h(ev)
		}
	}
}
