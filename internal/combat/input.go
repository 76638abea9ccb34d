package combat

import (
	"sync"

	"github.com/pixil98/go-fps/internal/game"
)

// InputKind is a discrete input edge.
type InputKind int

const (
	TriggerDown InputKind = iota
	TriggerUp
	Reload
	SwitchWeapon
	ThrowGrenade
	ActivateKillStreak
	TogglePause
)

var inputNames = map[InputKind]string{
	TriggerDown:        "trigger_down",
	TriggerUp:          "trigger_up",
	Reload:             "reload",
	SwitchWeapon:       "switch_weapon",
	ThrowGrenade:       "throw_grenade",
	ActivateKillStreak: "activate_kill_streak",
	TogglePause:        "toggle_pause",
}

func (k InputKind) String() string {
	if n, ok := inputNames[k]; ok {
		return n
	}
	return "unknown"
}

// InputEvent is one input edge. Slot is only read for SwitchWeapon.
type InputEvent struct {
	Kind InputKind
	Slot game.Slot
}

// InputQueue buffers input edges from any goroutine until the engine drains
// them at the start of a tick.
type InputQueue struct {
	mu     sync.Mutex
	events []InputEvent
}

func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

func (q *InputQueue) Push(e InputEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

// Drain returns the queued events in arrival order and empties the queue.
func (q *InputQueue) Drain() []InputEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.events
	q.events = nil
	return out
}

func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
