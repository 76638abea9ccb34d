package terminal

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-fps/internal/combat"
	"github.com/pixil98/go-fps/internal/display"
	"github.com/pixil98/go-fps/internal/game"
)

const barWidth = 20

// hudState is everything the HUD draws, captured once per frame.
type hudState struct {
	phase       game.Phase
	mapType     game.MapType
	mode        game.GameMode
	score       int
	player      *game.Player
	bots        []game.Bot
	projectiles int
	reload      combat.ReloadStage
	trigger     bool
	corrupted   bool
}

// bar renders cur/total as a fixed width gauge.
func bar(cur, total float64) string {
	filled := 0
	if total > 0 {
		filled = int(cur / total * barWidth)
	}
	filled = min(max(filled, 0), barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func hudLines(h hudState) []string {
	p := h.player
	lines := []string{
		fmt.Sprintf("%s  |  %s  |  %s  |  score %d",
			strings.ToUpper(string(h.phase)), display.Capitalize(string(h.mapType)), strings.ToUpper(string(h.mode)), h.score),
		fmt.Sprintf("HP %s %3.0f/%.0f  armor %.0f", bar(p.Health, p.MaxHealth), p.Health, p.MaxHealth, p.Armor),
		fmt.Sprintf("LVL %d  P%d  XP %s %d/%d", p.Level, p.Prestige, bar(float64(p.XP), float64(p.XPToNextLevel)), p.XP, p.XPToNextLevel),
	}

	if w := p.ActiveWeapon(); w != nil {
		line := fmt.Sprintf("%-9s %-14s %s", p.ActiveWeaponSlot, w.Name, ammo(w))
		if h.reload != combat.ReloadIdle {
			line += "  RELOADING (" + h.reload.String() + ")"
		} else if w.CurrentAmmo == 0 && !w.Unlimited() {
			line += "  EMPTY"
		}
		if h.trigger {
			line += "  FIRING"
		}
		lines = append(lines, line)
	} else {
		lines = append(lines, fmt.Sprintf("%-9s (empty)", p.ActiveWeaponSlot))
	}

	streak := fmt.Sprintf("STREAK %d", p.KillStreak)
	for _, ks := range p.AvailableKillStreaks {
		switch {
		case p.StreakActive(ks.ID):
			streak += "  *" + ks.Name + "*"
		case ks.Cost <= p.KillStreak:
			streak += "  " + ks.Name + " ready"
		}
	}
	lines = append(lines, streak)

	allies, enemies := 0, 0
	for _, b := range h.bots {
		if b.Health <= 0 {
			continue
		}
		if b.Team == game.TeamAllies {
			allies++
		} else {
			enemies++
		}
	}
	lines = append(lines, fmt.Sprintf("allies %d  enemies %d  projectiles %d", allies, enemies, h.projectiles))

	switch h.phase {
	case game.PhaseMenu:
		lines = append(lines, "", "Press Enter to start a match on "+string(h.mapType)+".")
	case game.PhasePaused:
		lines = append(lines, "", "Paused. Press p to resume.")
	}
	if h.corrupted {
		lines = append(lines, "", "Saved progress could not be read and was reset.")
	}

	lines = append(lines, "", "space fire  r reload  1-3 weapon  g grenade  4 streak  h/H hit  p pause  q quit")
	return lines
}

func ammo(w *game.Weapon) string {
	if w.Unlimited() {
		return "∞"
	}
	return fmt.Sprintf("%d/%d", w.CurrentAmmo, w.ReserveAmmo)
}
