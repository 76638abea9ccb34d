package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-fps/internal/combat"
	"github.com/pixil98/go-fps/internal/game"
)

// action is what a key press asks the frontend to do.
type action int

const (
	actionNone action = iota
	actionInput
	actionTrigger
	actionStart
	actionHit
	actionHeadshot
	actionQuit
)

var slotKeys = map[rune]game.Slot{
	'1': game.SlotPrimary,
	'2': game.SlotSecondary,
	'3': game.SlotMelee,
}

// translate maps a key press to an action. For actionInput the returned
// event is ready to push onto the engine's input queue.
func translate(key tcell.Key, r rune) (action, combat.InputEvent) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, combat.InputEvent{}
	case tcell.KeyEnter:
		return actionStart, combat.InputEvent{}
	case tcell.KeyRune:
	default:
		return actionNone, combat.InputEvent{}
	}

	if slot, ok := slotKeys[r]; ok {
		return actionInput, combat.InputEvent{Kind: combat.SwitchWeapon, Slot: slot}
	}

	switch r {
	case ' ':
		return actionTrigger, combat.InputEvent{}
	case 'r':
		return actionInput, combat.InputEvent{Kind: combat.Reload}
	case 'g':
		return actionInput, combat.InputEvent{Kind: combat.ThrowGrenade}
	case '4':
		return actionInput, combat.InputEvent{Kind: combat.ActivateKillStreak}
	case 'p':
		return actionInput, combat.InputEvent{Kind: combat.TogglePause}
	case 'h':
		return actionHit, combat.InputEvent{}
	case 'H':
		return actionHeadshot, combat.InputEvent{}
	case 'q':
		return actionQuit, combat.InputEvent{}
	}
	return actionNone, combat.InputEvent{}
}
